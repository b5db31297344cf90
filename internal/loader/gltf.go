package loader

import (
	"fmt"
	"io"
	"io/fs"

	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// DecodeGLTF decodes a .gltf or .glb stream. Relative buffer URIs resolve
// against fsys; with a nil fsys only embedded buffers are supported.
func DecodeGLTF(r io.Reader, fsys fs.FS, name string) (*renderer.Node, error) {
	var dec *gltf.Decoder
	if fsys != nil {
		dec = gltf.NewDecoderFS(r, fsys)
	} else {
		dec = gltf.NewDecoder(r)
	}
	doc := new(gltf.Document)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf %q: %w", name, err)
	}
	return BuildNode(doc, name)
}

// BuildNode converts the default scene of doc into a node tree under a single
// root named name. Documents without a default scene use every parentless node.
func BuildNode(doc *gltf.Document, name string) (*renderer.Node, error) {
	meshes := make([][]*renderer.Mesh, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := buildPrimitive(doc, gm.Name, pi, prim)
			if err != nil {
				logger.Log.Warn("Skipping glTF primitive",
					zap.Int("mesh", mi), zap.Int("primitive", pi), zap.Error(err))
				continue
			}
			meshes[mi] = append(meshes[mi], m)
		}
	}

	nodes := make([]*renderer.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		nodeName := gn.Name
		if nodeName == "" {
			nodeName = fmt.Sprintf("node_%d", i)
		}
		n := renderer.NewNode(nodeName)
		applyTransform(n, gn)
		if gn.Mesh != nil && *gn.Mesh < len(meshes) {
			n.Meshes = meshes[*gn.Mesh]
		}
		nodes[i] = n
	}

	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < 0 || c >= len(nodes) || hasParent[c] {
				continue
			}
			hasParent[c] = true
			nodes[i].Add(nodes[c])
		}
	}

	var roots []int
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		roots = doc.Scenes[*doc.Scene].Nodes
	} else {
		for i := range nodes {
			if !hasParent[i] {
				roots = append(roots, i)
			}
		}
	}

	root := renderer.NewNode(name)
	for _, idx := range roots {
		if idx >= 0 && idx < len(nodes) {
			root.Add(nodes[idx])
		}
	}
	if root.ChildCount() == 0 {
		return nil, fmt.Errorf("gltf %q: no nodes in scene", name)
	}
	return root, nil
}

func applyTransform(n *renderer.Node, gn *gltf.Node) {
	if m := gn.MatrixOrDefault(); m != identityMatrix {
		var mat mgl32.Mat4
		for i, v := range m {
			mat[i] = float32(v)
		}
		n.Position = mat.Col(3).Vec3()
		sx := mat.Col(0).Vec3().Len()
		sy := mat.Col(1).Vec3().Len()
		sz := mat.Col(2).Vec3().Len()
		n.Scale = mgl32.Vec3{sx, sy, sz}
		if sx != 0 && sy != 0 && sz != 0 {
			rot := mgl32.Mat4FromCols(
				mat.Col(0).Mul(1/sx),
				mat.Col(1).Mul(1/sy),
				mat.Col(2).Mul(1/sz),
				mgl32.Vec4{0, 0, 0, 1},
			)
			n.Rotation = mgl32.Mat4ToQuat(rot).Normalize()
		}
		return
	}

	t := gn.TranslationOrDefault()
	n.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	s := gn.ScaleOrDefault()
	n.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	r := gn.RotationOrDefault() // x, y, z, w
	n.Rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
}

func buildPrimitive(doc *gltf.Document, meshName string, idx int, prim *gltf.Primitive) (*renderer.Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("unsupported primitive mode %v", prim.Mode)
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok || posIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if ni, ok := prim.Attributes[gltf.NORMAL]; ok && ni < len(doc.Accessors) {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[ni], nil)
		if err != nil {
			logger.Log.Debug("Ignoring glTF normals", zap.Error(err))
			normals = nil
		}
	}

	var indices []uint32
	if prim.Indices != nil && *prim.Indices < len(doc.Accessors) {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	flatPos := make([]float32, 0, len(positions)*3)
	for _, p := range positions {
		flatPos = append(flatPos, p[0], p[1], p[2])
	}
	var flatNorm []float32
	if len(normals) == len(positions) {
		flatNorm = make([]float32, 0, len(normals)*3)
		for _, nrm := range normals {
			flatNorm = append(flatNorm, nrm[0], nrm[1], nrm[2])
		}
	}

	name := fmt.Sprintf("%s_p%d", meshName, idx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", idx)
	}
	mesh := renderer.NewMesh(name, flatPos, flatNorm, indices)

	if prim.Material != nil && *prim.Material < len(doc.Materials) {
		if pbr := doc.Materials[*prim.Material].PBRMetallicRoughness; pbr != nil {
			c := pbr.BaseColorFactorOrDefault()
			mesh.Color = mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
		}
	}
	return mesh, nil
}
