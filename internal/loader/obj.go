package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/renderer"

	"go.uber.org/zap"
)

// FaceVertex references one corner of an OBJ face. Indices are zero based;
// -1 marks an absent normal.
type FaceVertex struct {
	VertexIdx int32
	NormalIdx int32
}

// DecodeOBJ parses a Wavefront OBJ stream into a node holding one mesh.
// Texture coordinates and materials are ignored.
func DecodeOBJ(r io.Reader, name string) (*renderer.Node, error) {
	var (
		positions [][3]float32
		normals   [][3]float32
		corners   []FaceVertex
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.Fields(line)
		switch parts[0] {
		case "v":
			v, err := parseVertex(parts)
			if err != nil {
				return nil, fmt.Errorf("obj %q line %d: %w", name, lineNo, err)
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseVertex(parts)
			if err != nil {
				return nil, fmt.Errorf("obj %q line %d: %w", name, lineNo, err)
			}
			normals = append(normals, v)
		case "f":
			face, err := parseFace(parts, len(positions), len(normals))
			if err != nil {
				return nil, fmt.Errorf("obj %q line %d: %w", name, lineNo, err)
			}
			corners = append(corners, face...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj %q: %w", name, err)
	}
	if len(corners) == 0 {
		return nil, fmt.Errorf("obj %q: no faces", name)
	}

	// One output vertex per distinct position/normal pair.
	index := make(map[FaceVertex]uint32)
	var (
		outPos  []float32
		outNorm []float32
		indices []uint32
	)
	withNormals := true
	for _, c := range corners {
		if c.NormalIdx < 0 {
			withNormals = false
		}
		if i, ok := index[c]; ok {
			indices = append(indices, i)
			continue
		}
		i := uint32(len(outPos) / 3)
		index[c] = i
		p := positions[c.VertexIdx]
		outPos = append(outPos, p[0], p[1], p[2])
		if c.NormalIdx >= 0 {
			n := normals[c.NormalIdx]
			outNorm = append(outNorm, n[0], n[1], n[2])
		} else {
			outNorm = append(outNorm, 0, 0, 0)
		}
		indices = append(indices, i)
	}
	if !withNormals {
		outNorm = nil
	}

	node := renderer.NewNode(name)
	node.Meshes = []*renderer.Mesh{renderer.NewMesh(name, outPos, outNorm, indices)}
	logger.Log.Debug("Parsed OBJ",
		zap.String("name", name),
		zap.Int("vertices", len(outPos)/3),
		zap.Int("triangles", len(indices)/3))
	return node, nil
}

func parseVertex(parts []string) ([3]float32, error) {
	var v [3]float32
	if len(parts) < 4 {
		return v, fmt.Errorf("expected 3 components, got %d", len(parts)-1)
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(parts[i+1], 32)
		if err != nil {
			return v, fmt.Errorf("invalid component %q: %w", parts[i+1], err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// resolveIndex turns a 1-based or negative (relative) OBJ index into a
// zero-based one.
func resolveIndex(s string, count int) (int32, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	switch {
	case i > 0 && int(i) <= count:
		return int32(i - 1), nil
	case i < 0 && int(-i) <= count:
		return int32(count + int(i)), nil
	}
	return 0, fmt.Errorf("index %d out of range (%d elements)", i, count)
}

// parseFace returns the face as triangles; quads and larger polygons are
// fanned from the first corner.
func parseFace(parts []string, vertexCount, normalCount int) ([]FaceVertex, error) {
	var face []FaceVertex
	for _, part := range parts[1:] {
		vals := strings.Split(part, "/")

		vi, err := resolveIndex(vals[0], vertexCount)
		if err != nil {
			return nil, err
		}
		fv := FaceVertex{VertexIdx: vi, NormalIdx: -1}
		if len(vals) > 2 && vals[2] != "" {
			ni, err := resolveIndex(vals[2], normalCount)
			if err != nil {
				return nil, err
			}
			fv.NormalIdx = ni
		}
		face = append(face, fv)
	}

	if len(face) < 3 {
		return nil, fmt.Errorf("face with %d vertices", len(face))
	}
	if len(face) > 4 {
		logger.Log.Debug("Fan triangulating polygon", zap.Int("vertexCount", len(face)))
	}
	tris := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		tris = append(tris, face[0], face[i], face[i+1])
	}
	return tris, nil
}
