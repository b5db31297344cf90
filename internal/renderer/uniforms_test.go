package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestUniformsSetAndGet(t *testing.T) {
	u := NewUniforms()
	u.SetFloat("turbidity", 4)
	u.SetVec3("sunPosition", mgl32.Vec3{0, 1, 0})

	assert.Equal(t, float32(4), u.Float("turbidity"))
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, u.Vec3("sunPosition"))
	assert.Equal(t, []string{"sunPosition", "turbidity"}, u.Names())
	assert.True(t, u.Has("turbidity"))
	assert.False(t, u.Has("fog"))
}

func TestUniformsKindMismatchPanics(t *testing.T) {
	u := NewUniforms()
	u.SetFloat("rayleigh", 1)

	assert.Panics(t, func() { u.SetVec3("rayleigh", mgl32.Vec3{}) })
	assert.Panics(t, func() { u.Vec3("rayleigh") })
	assert.Panics(t, func() { u.Float("missing") })
}

func TestUniformsSnapshotIsCopy(t *testing.T) {
	u := NewUniforms()
	u.SetFloat("rayleigh", 1)

	snap := u.Snapshot()
	u.SetFloat("rayleigh", 2)

	assert.Equal(t, float32(1), snap["rayleigh"].Float)
}

func TestNewSkyDeclaresShaderInputs(t *testing.T) {
	sky := NewSky()

	for _, name := range []string{
		UniformTurbidity, UniformRayleigh, UniformMieCoefficient,
		UniformMieDirectionalG, UniformSunPosition, UniformUp,
	} {
		assert.True(t, sky.Uniforms.Has(name), name)
	}
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, sky.Uniforms.Vec3(UniformUp))

	n := NewSkyNode(sky, 450000)
	assert.Same(t, sky, n.Sky)
	assert.Equal(t, mgl32.Vec3{450000, 450000, 450000}, n.Scale)
}
