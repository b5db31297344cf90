package renderer

import (
	"math"

	"Gopher3DSky/internal/atmosphere"
	"Gopher3DSky/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// polarEpsilon keeps the camera off the poles where LookAt loses its up vector.
const polarEpsilon = 1e-6

// OrbitControls orbits a camera around Target. Input methods only accumulate
// deltas; Update integrates them into the camera pose and must run once per
// frame when damping is enabled.
type OrbitControls struct {
	Camera *Camera
	Target mgl32.Vec3

	Enabled            bool
	EnableRotate       bool
	EnablePan          bool
	EnableZoom         bool
	EnableDamping      bool
	DampingFactor      float64
	ScreenSpacePanning bool

	MinDistance float64
	MaxDistance float64

	// Angles in radians. Polar is measured from +Y, in [0, π].
	MinPolarAngle   float64
	MaxPolarAngle   float64
	MinAzimuthAngle float64
	MaxAzimuthAngle float64

	RotateSpeed float64
	PanSpeed    float64
	ZoomSpeed   float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64
	panOffset  mgl32.Vec3
}

func NewOrbitControls(camera *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:          camera,
		Enabled:         true,
		EnableRotate:    true,
		EnablePan:       true,
		EnableZoom:      true,
		DampingFactor:   0.05,
		MinDistance:     0,
		MaxDistance:     math.Inf(1),
		MinPolarAngle:   0,
		MaxPolarAngle:   math.Pi,
		MinAzimuthAngle: math.Inf(-1),
		MaxAzimuthAngle: math.Inf(1),
		RotateSpeed:     1,
		PanSpeed:        1,
		ZoomSpeed:       1,
		scale:           1,
	}
}

// SetPolarRange sets the vertical rotation limits in radians. Values outside
// [0, π] are clamped into it; π means no restriction.
func (oc *OrbitControls) SetPolarRange(min, max float64) {
	cmin := mgl64.Clamp(min, 0, math.Pi)
	cmax := mgl64.Clamp(max, 0, math.Pi)
	if cmin != min || cmax != max {
		logger.Log.Warn("Polar angle range clamped to [0, pi]",
			zap.Float64("min", min),
			zap.Float64("max", max))
	}
	if cmin > cmax {
		cmin, cmax = cmax, cmin
	}
	oc.MinPolarAngle, oc.MaxPolarAngle = cmin, cmax
}

func (oc *OrbitControls) RotateLeft(angle float64) {
	oc.deltaTheta -= angle
}

func (oc *OrbitControls) RotateUp(angle float64) {
	oc.deltaPhi -= angle
}

// Rotate converts a pointer drag in pixels into an orbit, a full viewport
// height of drag being one turn.
func (oc *OrbitControls) Rotate(dx, dy, viewportHeight float64) {
	if !oc.Enabled || !oc.EnableRotate || viewportHeight <= 0 {
		return
	}
	oc.RotateLeft(2 * math.Pi * dx / viewportHeight * oc.RotateSpeed)
	oc.RotateUp(2 * math.Pi * dy / viewportHeight * oc.RotateSpeed)
}

// Pan converts a pointer drag in pixels into a target translation so that the
// point under the cursor follows it.
func (oc *OrbitControls) Pan(dx, dy, viewportHeight float64) {
	if !oc.Enabled || !oc.EnablePan || viewportHeight <= 0 {
		return
	}
	offset := oc.Camera.Position.Sub(oc.Target)
	targetDistance := float64(offset.Len()) * math.Tan(float64(mgl32.DegToRad(oc.Camera.Fov))/2)

	left := float32(2 * dx * targetDistance / viewportHeight * oc.PanSpeed)
	up := float32(2 * dy * targetDistance / viewportHeight * oc.PanSpeed)

	oc.panOffset = oc.panOffset.Sub(oc.Camera.Right.Mul(left))

	var upAxis mgl32.Vec3
	if oc.ScreenSpacePanning {
		upAxis = oc.Camera.Up
	} else {
		// Move along the ground plane
		upAxis = oc.Camera.WorldUp.Cross(oc.Camera.Right)
	}
	oc.panOffset = oc.panOffset.Add(upAxis.Mul(up))
}

// Dolly scales the orbit radius on the next Update. factor < 1 moves closer.
func (oc *OrbitControls) Dolly(factor float64) {
	if !oc.Enabled || !oc.EnableZoom || factor <= 0 {
		return
	}
	oc.scale *= factor
}

// Zoom maps a wheel delta to a dolly step. Positive deltas zoom in.
func (oc *OrbitControls) Zoom(wheelDelta float64) {
	step := math.Pow(0.95, oc.ZoomSpeed)
	switch {
	case wheelDelta > 0:
		oc.Dolly(step)
	case wheelDelta < 0:
		oc.Dolly(1 / step)
	}
}

// Distance is the current camera to target distance.
func (oc *OrbitControls) Distance() float64 {
	return float64(oc.Camera.Position.Sub(oc.Target).Len())
}

// Update integrates pending input into the camera and reports whether any
// input was applied.
func (oc *OrbitControls) Update() bool {
	off := oc.Camera.Position.Sub(oc.Target)
	radius, phi, theta := atmosphere.ToSpherical(mgl64.Vec3{float64(off[0]), float64(off[1]), float64(off[2])})

	step := 1.0
	if oc.EnableDamping {
		step = oc.DampingFactor
	}
	dTheta, dPhi := oc.deltaTheta*step, oc.deltaPhi*step
	pan := oc.panOffset.Mul(float32(step))
	changed := math.Abs(dTheta) > 1e-9 || math.Abs(dPhi) > 1e-9 || oc.scale != 1 || pan.Len() > 1e-9

	theta += dTheta
	phi += dPhi

	if !math.IsInf(oc.MinAzimuthAngle, 0) || !math.IsInf(oc.MaxAzimuthAngle, 0) {
		theta = mgl64.Clamp(theta, oc.MinAzimuthAngle, oc.MaxAzimuthAngle)
	}
	phi = mgl64.Clamp(phi, oc.MinPolarAngle, oc.MaxPolarAngle)
	phi = mgl64.Clamp(phi, polarEpsilon, math.Pi-polarEpsilon)

	radius = mgl64.Clamp(radius*oc.scale, oc.MinDistance, oc.MaxDistance)

	oc.Target = oc.Target.Add(pan)

	p := atmosphere.FromSpherical(radius, phi, theta)
	oc.Camera.Position = oc.Target.Add(mgl32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])})
	oc.Camera.LookAt(oc.Target)

	if oc.EnableDamping {
		keep := 1 - oc.DampingFactor
		oc.deltaTheta *= keep
		oc.deltaPhi *= keep
		oc.panOffset = oc.panOffset.Mul(float32(keep))
	} else {
		oc.deltaTheta, oc.deltaPhi = 0, 0
		oc.panOffset = mgl32.Vec3{}
	}
	oc.scale = 1

	return changed
}
