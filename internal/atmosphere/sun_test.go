package atmosphere

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-6

func TestSunDirectionIsUnit(t *testing.T) {
	for elevation := 0.0; elevation <= 90; elevation += 7.5 {
		for azimuth := -180.0; azimuth <= 180; azimuth += 15 {
			d := SunDirection(elevation, azimuth)
			assert.InDelta(t, 1.0, float64(d.Len()), eps, "elevation=%v azimuth=%v", elevation, azimuth)
		}
	}
}

func TestSunDirectionZenith(t *testing.T) {
	d := SunDirection(90, 0)

	assert.InDelta(t, 0, float64(d.X()), eps)
	assert.InDelta(t, 1, float64(d.Y()), eps)
	assert.InDelta(t, 0, float64(d.Z()), eps)
}

func TestSunDirectionHorizonForward(t *testing.T) {
	d := SunDirection(0, 0)

	assert.InDelta(t, 0, float64(d.X()), eps)
	assert.InDelta(t, 0, float64(d.Y()), eps)
	assert.InDelta(t, 1, float64(d.Z()), eps)
}

func TestSunDirectionAzimuthQuarterTurn(t *testing.T) {
	d := SunDirection(0, 90)
	assert.InDelta(t, 1, float64(d.X()), eps)
	assert.InDelta(t, 0, float64(d.Z()), eps)

	// Default sky: low sun behind the -Z axis
	d = SunDirection(5, 180)
	assert.Less(t, float64(d.Z()), 0.0)
	assert.InDelta(t, math.Sin(mgl64.DegToRad(5)), float64(d.Y()), eps)
}

func TestSunDirectionDeterministic(t *testing.T) {
	assert.Equal(t, SunDirection(33.3, -71.2), SunDirection(33.3, -71.2))
}

func TestSphericalRoundTrip(t *testing.T) {
	v := mgl64.Vec3{3, 4, -5}
	r, phi, theta := ToSpherical(v)
	back := FromSpherical(r, phi, theta)

	assert.True(t, v.ApproxEqualThreshold(back, 1e-9), "got %v", back)
}

func TestToSphericalZero(t *testing.T) {
	r, phi, theta := ToSpherical(mgl64.Vec3{})
	assert.Zero(t, r)
	assert.Zero(t, phi)
	assert.Zero(t, theta)
}
