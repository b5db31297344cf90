package renderer

import "fmt"

type ToneMapping int

const (
	NoToneMapping ToneMapping = iota
	ACESFilmicToneMapping
)

func (t ToneMapping) String() string {
	switch t {
	case NoToneMapping:
		return "none"
	case ACESFilmicToneMapping:
		return "aces"
	}
	return fmt.Sprintf("ToneMapping(%d)", int(t))
}

// ParseToneMapping accepts the names returned by String.
func ParseToneMapping(name string) (ToneMapping, error) {
	switch name {
	case "none":
		return NoToneMapping, nil
	case "aces":
		return ACESFilmicToneMapping, nil
	}
	return NoToneMapping, fmt.Errorf("unknown tone mapping %q", name)
}

// Render is the contract a rendering backend offers to the scene core.
type Render interface {
	// SetToneMappingExposure sets the global exposure applied before tone mapping.
	SetToneMappingExposure(exposure float32)
	ToneMappingExposure() float32
	// Render draws one frame of scene as seen by camera.
	Render(scene *Scene, camera *Camera)
	Resize(width, height int)
	Cleanup()
}
