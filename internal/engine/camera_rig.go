package engine

import (
	"math"

	"Gopher3DSky/internal/logger"
	"Gopher3DSky/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type CameraConfig struct {
	Fov      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position [3]float32 `toml:"position"`
	Target   [3]float32 `toml:"target"`
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Fov:      40,
		Near:     1,
		Far:      1000,
		Position: [3]float32{400, 200, 0},
	}
}

// ControlsConfig configures the orbit controls. Angles are radians.
type ControlsConfig struct {
	Damping            bool    `toml:"damping"`
	DampingFactor      float64 `toml:"damping_factor"`
	ScreenSpacePanning bool    `toml:"screen_space_panning"`
	MinDistance        float64 `toml:"min_distance"`
	MaxDistance        float64 `toml:"max_distance"`
	MinPolarAngle      float64 `toml:"min_polar_angle"`
	MaxPolarAngle      float64 `toml:"max_polar_angle"`
	RotateSpeed        float64 `toml:"rotate_speed"`
	PanSpeed           float64 `toml:"pan_speed"`
	ZoomSpeed          float64 `toml:"zoom_speed"`
}

func DefaultControlsConfig() ControlsConfig {
	return ControlsConfig{
		Damping:            true,
		DampingFactor:      0.05,
		ScreenSpacePanning: true,
		MinDistance:        50,
		MaxDistance:        500,
		MinPolarAngle:      0,
		MaxPolarAngle:      math.Pi,
		RotateSpeed:        1,
		PanSpeed:           1,
		ZoomSpeed:          1,
	}
}

// CameraRig owns the orbit controls driving the context camera.
type CameraRig struct {
	ctx      *Context
	controls *renderer.OrbitControls
}

// NewCameraRig poses ctx.Camera from cam and attaches orbit controls
// configured from ctl.
func NewCameraRig(ctx *Context, cam CameraConfig, ctl ControlsConfig) *CameraRig {
	camera := ctx.Camera
	if camera == nil {
		camera = renderer.NewPerspectiveCamera(cam.Fov, 1, cam.Near, cam.Far)
		ctx.Camera = camera
	}
	camera.SetFov(cam.Fov)
	camera.SetNear(cam.Near)
	camera.SetFar(cam.Far)
	camera.SetPosition(cam.Position[0], cam.Position[1], cam.Position[2])

	oc := renderer.NewOrbitControls(camera)
	oc.Target = mgl32.Vec3(cam.Target)
	oc.EnableDamping = ctl.Damping
	oc.DampingFactor = ctl.DampingFactor
	oc.ScreenSpacePanning = ctl.ScreenSpacePanning
	oc.MinDistance = ctl.MinDistance
	oc.MaxDistance = ctl.MaxDistance
	oc.SetPolarRange(ctl.MinPolarAngle, ctl.MaxPolarAngle)
	oc.RotateSpeed = ctl.RotateSpeed
	oc.PanSpeed = ctl.PanSpeed
	oc.ZoomSpeed = ctl.ZoomSpeed
	camera.LookAt(oc.Target)

	logger.Log.Debug("Camera rig ready",
		zap.Float64("distance", oc.Distance()),
		zap.Float64("minDistance", oc.MinDistance),
		zap.Float64("maxDistance", oc.MaxDistance))

	return &CameraRig{ctx: ctx, controls: oc}
}

// Update integrates pending orbit input and damping once. Damping is applied
// per call, not per second, so delta is unused.
func (r *CameraRig) Update(float64) {
	r.controls.Update()
}

func (r *CameraRig) Controls() *renderer.OrbitControls {
	return r.controls
}

// Resize follows the drawable size; zero sizes (minimised window) are ignored.
func (r *CameraRig) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.ctx.Camera.SetAspectRatio(float32(width) / float32(height))
}
