package renderer

import "github.com/go-gl/mathgl/mgl32"

// Sky uniform names understood by the sky shader.
const (
	UniformTurbidity       = "turbidity"
	UniformRayleigh        = "rayleigh"
	UniformMieCoefficient  = "mieCoefficient"
	UniformMieDirectionalG = "mieDirectionalG"
	UniformSunPosition     = "sunPosition"
	UniformUp              = "up"
)

// Sky is an analytic daylight dome. It has no geometry of its own beyond a
// unit cube; its look is entirely defined by Uniforms.
type Sky struct {
	Uniforms *Uniforms
}

func NewSky() *Sky {
	u := NewUniforms()
	u.SetFloat(UniformTurbidity, 2)
	u.SetFloat(UniformRayleigh, 1)
	u.SetFloat(UniformMieCoefficient, 0.005)
	u.SetFloat(UniformMieDirectionalG, 0.8)
	u.SetVec3(UniformSunPosition, mgl32.Vec3{})
	u.SetVec3(UniformUp, mgl32.Vec3{0, 1, 0})
	return &Sky{Uniforms: u}
}

// NewSkyNode wraps sky in a scene node scaled to scale.
func NewSkyNode(sky *Sky, scale float32) *Node {
	n := NewNode("sky")
	n.Sky = sky
	n.SetScalar(scale)
	return n
}
