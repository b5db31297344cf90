package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"Gopher3DSky/internal/params"
	"Gopher3DSky/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk application configuration. Missing keys keep their
// DefaultConfig values.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Controls ControlsConfig `toml:"controls"`
	Asset    AssetConfig    `toml:"asset"`
	Render   RenderConfig   `toml:"render"`
	Sky      SkyConfig      `toml:"sky"`
	Log      LogConfig      `toml:"log"`
}

type WindowConfig struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Title      string     `toml:"title"`
	Background [3]float32 `toml:"background"`
}

type AssetConfig struct {
	URL     string  `toml:"url"`
	OffsetY float32 `toml:"offset_y"`
}

type RenderConfig struct {
	// "aces" or "none"
	ToneMapping    string `toml:"tone_mapping"`
	FrustumCulling bool   `toml:"frustum_culling"`
}

// Configure applies the render options to rend.
func (c RenderConfig) Configure(rend *renderer.OpenGLRenderer) error {
	tm, err := renderer.ParseToneMapping(c.ToneMapping)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	rend.ToneMapping = tm
	rend.FrustumCulling = c.FrustumCulling
	return nil
}

type SkyConfig struct {
	Scale float32 `toml:"scale"`
	// Initial parameter values, applied through the store and so clamped.
	Params map[string]float64 `toml:"params"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:      1024,
			Height:     768,
			Title:      "Gopher3D Sky",
			Background: [3]float32{0.8, 0.8, 0.8},
		},
		Camera:   DefaultCameraConfig(),
		Controls: DefaultControlsConfig(),
		Asset: AssetConfig{
			URL:     DefaultAssetURL,
			OffsetY: DefaultAssetOffsetY,
		},
		Render: RenderConfig{
			ToneMapping:    renderer.ACESFilmicToneMapping.String(),
			FrustumCulling: true,
		},
		Sky: SkyConfig{Scale: 450000},
	}
}

// LoadConfig reads a TOML config file over the defaults. Unknown keys are
// rejected so typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("%w: camera fov %v", ErrInvalidConfig, c.Camera.Fov)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera near %v far %v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Controls.MinDistance < 0 || c.Controls.MaxDistance < c.Controls.MinDistance:
		return fmt.Errorf("%w: controls distance [%v, %v]", ErrInvalidConfig, c.Controls.MinDistance, c.Controls.MaxDistance)
	case c.Controls.DampingFactor < 0 || c.Controls.DampingFactor > 1:
		return fmt.Errorf("%w: damping factor %v", ErrInvalidConfig, c.Controls.DampingFactor)
	case c.Sky.Scale <= 0:
		return fmt.Errorf("%w: sky scale %v", ErrInvalidConfig, c.Sky.Scale)
	case c.Asset.URL == "":
		return fmt.Errorf("%w: empty asset url", ErrInvalidConfig)
	}
	if _, err := renderer.ParseToneMapping(c.Render.ToneMapping); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// BackgroundColor returns the window background as a vector.
func (c Config) BackgroundColor() mgl32.Vec3 {
	return mgl32.Vec3(c.Window.Background)
}

// luminance is the Rec. 709 relative luminance of a linear RGB colour.
func luminance(c [3]float32) float32 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}

// ApplyParams sets every configured initial parameter value on store, in
// name order. Names the store does not declare are an error.
func (c Config) ApplyParams(store *params.Store) error {
	names := make([]string, 0, len(c.Sky.Params))
	for name := range c.Sky.Params {
		if !store.Has(name) {
			return fmt.Errorf("%w: unknown sky parameter %q", ErrInvalidConfig, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		store.Set(name, c.Sky.Params[name])
	}
	return nil
}
