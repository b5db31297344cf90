package engine

import (
	"Gopher3DSky/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Context owns everything a frame touches. All fields are used from the host
// thread only.
type Context struct {
	Scene    *renderer.Scene
	Renderer renderer.Render
	Sky      *renderer.Sky
	Camera   *renderer.Camera
}

// NewContext builds a scene holding a sky dome of the given scale and a
// camera with the default perspective. The rig configures the camera later.
func NewContext(rend renderer.Render, skyScale float32, background mgl32.Vec3) *Context {
	scene := renderer.NewScene()
	scene.Background = background

	sky := renderer.NewSky()
	scene.Add(renderer.NewSkyNode(sky, skyScale))

	return &Context{
		Scene:    scene,
		Renderer: rend,
		Sky:      sky,
		Camera:   renderer.NewPerspectiveCamera(40, 1, 1, 1000),
	}
}
