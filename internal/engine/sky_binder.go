package engine

import (
	"Gopher3DSky/internal/atmosphere"
	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/params"
	"Gopher3DSky/internal/renderer"

	"go.uber.org/zap"
)

// scatteringUniforms maps each scattering parameter to the sky uniform it feeds.
var scatteringUniforms = [...]struct{ param, uniform string }{
	{params.Turbidity, renderer.UniformTurbidity},
	{params.Rayleigh, renderer.UniformRayleigh},
	{params.MieCoefficient, renderer.UniformMieCoefficient},
	{params.MieDirectionalG, renderer.UniformMieDirectionalG},
}

// SkyBinder pushes the sky parameters into the sky uniforms and the
// renderer's exposure.
type SkyBinder struct {
	ctx     *Context
	store   *params.Store
	applies int
}

func NewSkyBinder(ctx *Context, store *params.Store) *SkyBinder {
	return &SkyBinder{ctx: ctx, store: store}
}

// Bind re-applies the whole set whenever any sky parameter changes.
func (b *SkyBinder) Bind() {
	for _, name := range []string{
		params.Turbidity, params.Rayleigh, params.MieCoefficient, params.MieDirectionalG,
		params.Elevation, params.Azimuth, params.Exposure,
	} {
		b.store.OnChange(name, func(string, float64) { b.Apply() })
	}
}

// Apply is idempotent: the same store contents always produce the same
// uniforms and exposure.
func (b *SkyBinder) Apply() {
	u := b.ctx.Sky.Uniforms
	for _, s := range scatteringUniforms {
		u.SetFloat(s.uniform, float32(b.value(s.param)))
	}

	sun := atmosphere.SunDirection(b.value(params.Elevation), b.value(params.Azimuth))
	u.SetVec3(renderer.UniformSunPosition, sun)

	b.ctx.Renderer.SetToneMappingExposure(float32(b.value(params.Exposure)))

	b.applies++
	logger.Log.Debug("Sky parameters applied",
		zap.Int("applies", b.applies),
		zap.Float64("elevation", b.value(params.Elevation)),
		zap.Float64("azimuth", b.value(params.Azimuth)))
}

// Applies reports how many times Apply has run.
func (b *SkyBinder) Applies() int {
	return b.applies
}

func (b *SkyBinder) value(name string) float64 {
	return b.store.Parameter(name).Clamp(b.store.Get(name))
}
