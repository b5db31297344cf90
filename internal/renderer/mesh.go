package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is CPU-side triangle geometry. Positions and Normals are flat xyz
// triplets; Indices are optional (non-indexed meshes draw Positions in order).
// GPU buffers are owned by the renderer that draws the mesh.
type Mesh struct {
	Name      string
	Positions []float32
	Normals   []float32
	Indices   []uint32
	Color     mgl32.Vec3

	// Bounding sphere in mesh space, for frustum culling
	BoundsCenter mgl32.Vec3
	BoundsRadius float32
}

// NewMesh builds a mesh and fills in missing normals and bounds.
func NewMesh(name string, positions, normals []float32, indices []uint32) *Mesh {
	m := &Mesh{
		Name:      name,
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		Color:     mgl32.Vec3{0.8, 0.8, 0.8},
	}
	if len(m.Normals) != len(m.Positions) {
		m.Normals = RecalculateNormals(m.Positions, m.triangleIndices())
	}
	m.CalculateBoundingSphere()
	return m
}

// VertexCount is the number of xyz positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

func (m *Mesh) triangleIndices() []uint32 {
	if len(m.Indices) > 0 {
		return m.Indices
	}
	idx := make([]uint32, m.VertexCount())
	for i := range idx {
		idx[i] = uint32(i)
	}
	return idx
}

// CalculateBoundingSphere uses the AABB centre and the farthest vertex from it.
func (m *Mesh) CalculateBoundingSphere() {
	n := m.VertexCount()
	if n == 0 {
		m.BoundsCenter, m.BoundsRadius = mgl32.Vec3{}, 0
		return
	}
	min := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			v := m.Positions[i*3+j]
			if v < min[j] {
				min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	center := min.Add(max).Mul(0.5)
	var radius float32
	for i := 0; i < n; i++ {
		p := mgl32.Vec3{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
		if d := p.Sub(center).Len(); d > radius {
			radius = d
		}
	}
	m.BoundsCenter, m.BoundsRadius = center, radius
}

// RecalculateNormals returns smooth per-vertex normals by accumulating face
// normals. Degenerate triangles and out of range indices are skipped.
func RecalculateNormals(positions []float32, indices []uint32) []float32 {
	normals := make([]float32, len(positions))
	if len(positions) == 0 || len(indices) == 0 {
		return normals
	}
	count := uint32(len(positions) / 3)

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= count || i1 >= count || i2 >= count {
			continue
		}
		v0 := mgl32.Vec3{positions[i0*3], positions[i0*3+1], positions[i0*3+2]}
		v1 := mgl32.Vec3{positions[i1*3], positions[i1*3+1], positions[i1*3+2]}
		v2 := mgl32.Vec3{positions[i2*3], positions[i2*3+1], positions[i2*3+2]}

		face := v1.Sub(v0).Cross(v2.Sub(v0))
		if face.Len() == 0 {
			continue
		}
		face = face.Normalize()
		for _, idx := range [3]uint32{i0, i1, i2} {
			normals[idx*3] += face[0]
			normals[idx*3+1] += face[1]
			normals[idx*3+2] += face[2]
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		n := mgl32.Vec3{normals[i], normals[i+1], normals[i+2]}
		if n.Len() == 0 {
			// Unreferenced vertex, point it up
			normals[i+1] = 1
			continue
		}
		n = n.Normalize()
		normals[i], normals[i+1], normals[i+2] = n[0], n[1], n[2]
	}
	return normals
}
