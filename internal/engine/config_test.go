package engine

import (
	"os"
	"path/filepath"
	"testing"

	"Gopher3DSky/internal/params"
	"Gopher3DSky/internal/renderer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultAssetURL, cfg.Asset.URL)
	assert.Equal(t, float32(-75), cfg.Asset.OffsetY)
	assert.Equal(t, float32(450000), cfg.Sky.Scale)
	assert.Equal(t, [3]float32{0.8, 0.8, 0.8}, cfg.Window.Background)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	p := writeFile(t, "skyscene.toml", `
[window]
width = 800
title = "sunset"

[camera]
position = [100.0, 50.0, 0.0]

[controls]
max_distance = 900.0

[asset]
url = "models/girl.glb"

[sky.params]
elevation = 2
turbidity = 4.5

[log]
debug = true
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, "sunset", cfg.Window.Title)
	assert.Equal(t, [3]float32{100, 50, 0}, cfg.Camera.Position)
	assert.Equal(t, float32(40), cfg.Camera.Fov)
	assert.Equal(t, 900.0, cfg.Controls.MaxDistance)
	assert.Equal(t, 50.0, cfg.Controls.MinDistance)
	assert.Equal(t, "models/girl.glb", cfg.Asset.URL)
	assert.Equal(t, map[string]float64{"elevation": 2, "turbidity": 4.5}, cfg.Sky.Params)
	assert.True(t, cfg.Log.Debug)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	p := writeFile(t, "skyscene.toml", "[window]\nwidht = 10\n")
	_, err := LoadConfig(p)
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	p := writeFile(t, "skyscene.toml", "[camera]\nnear = 10.0\nfar = 5.0\n")
	_, err := LoadConfig(p)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero width":     func(c *Config) { c.Window.Width = 0 },
		"fov":            func(c *Config) { c.Camera.Fov = 180 },
		"distance order": func(c *Config) { c.Controls.MinDistance = 600 },
		"damping":        func(c *Config) { c.Controls.DampingFactor = 2 },
		"sky scale":      func(c *Config) { c.Sky.Scale = 0 },
		"asset url":      func(c *Config) { c.Asset.URL = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestApplyParamsClamps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sky.Params = map[string]float64{params.Elevation: 120, params.Rayleigh: 1.5}
	store := params.NewDefault()
	require.NoError(t, cfg.ApplyParams(store))
	assert.Equal(t, 90.0, store.Get(params.Elevation))
	assert.Equal(t, 1.5, store.Get(params.Rayleigh))
}

func TestApplyParamsUnknownName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sky.Params = map[string]float64{"brightness": 1}
	store := params.NewDefault()
	assert.ErrorIs(t, cfg.ApplyParams(store), ErrInvalidConfig)
	assert.Equal(t, 10.0, store.Get(params.Turbidity))
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 1, luminance([3]float32{1, 1, 1}), 1e-6)
	assert.Equal(t, float32(0), luminance([3]float32{}))
	assert.InDelta(t, 0.8, luminance(DefaultConfig().Window.Background), 1e-6)
	assert.Less(t, luminance([3]float32{0, 0, 1}), float32(0.5))
}

func TestRenderConfigConfigure(t *testing.T) {
	rend := renderer.NewOpenGLRenderer(640, 480)
	rc := RenderConfig{ToneMapping: "none", FrustumCulling: false}
	require.NoError(t, rc.Configure(rend))
	assert.Equal(t, renderer.NoToneMapping, rend.ToneMapping)
	assert.False(t, rend.FrustumCulling)

	require.NoError(t, DefaultConfig().Render.Configure(rend))
	assert.Equal(t, renderer.ACESFilmicToneMapping, rend.ToneMapping)
	assert.True(t, rend.FrustumCulling)

	assert.ErrorIs(t, RenderConfig{ToneMapping: "filmic"}.Configure(rend), ErrInvalidConfig)
}

func TestValidateToneMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.ToneMapping = "reinhard"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
