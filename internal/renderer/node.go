package renderer

import (
	"Gopher3DSky/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Node is an element of the scene graph. A node may carry meshes or a sky
// payload and any number of children. A node has at most one parent.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Visible  bool

	Meshes []*Mesh
	Sky    *Sky

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
	}
}

func (n *Node) SetPosition(x, y, z float32) {
	n.Position = mgl32.Vec3{x, y, z}
}

// SetScalar sets a uniform scale.
func (n *Node) SetScalar(s float32) {
	n.Scale = mgl32.Vec3{s, s, s}
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the direct children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Add attaches child under n, detaching it from any previous parent first.
// Adding an existing child is a no-op, and a node can never be added beneath
// itself or one of its descendants.
func (n *Node) Add(child *Node) {
	if child == nil || child.parent == n {
		return
	}
	for a := n; a != nil; a = a.parent {
		if a == child {
			logger.Log.Warn("Refusing to create a scene graph cycle",
				zap.String("parent", n.Name),
				zap.String("child", child.Name))
			return
		}
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n and reports whether it was a direct child.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Traverse visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// LocalMatrix is translation * rotation * scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(n.Rotation.Mat4()).Mul4(s)
}

// WorldMatrix composes the local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul4(n.LocalMatrix())
}

// Scene is the root of everything the renderer draws.
type Scene struct {
	Root       *Node
	Background mgl32.Vec3
}

func NewScene() *Scene {
	return &Scene{
		Root: NewNode("scene"),
		// 0xcccccc
		Background: mgl32.Vec3{0.8, 0.8, 0.8},
	}
}

func (s *Scene) Add(n *Node) {
	s.Root.Add(n)
}

func (s *Scene) Remove(n *Node) bool {
	return s.Root.Remove(n)
}

// Count returns how many times target is reachable from the root.
func (s *Scene) Count(target *Node) int {
	count := 0
	s.Root.Traverse(func(n *Node) bool {
		if n == target {
			count++
		}
		return true
	})
	return count
}
