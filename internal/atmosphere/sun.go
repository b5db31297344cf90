// Package atmosphere holds the math shared by the sky model: turning the sun's
// elevation and azimuth into the direction the sky shader expects.
package atmosphere

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// SunDirection converts an elevation above the horizon and an azimuth, both in
// degrees, into a unit vector. Y is up and azimuth 0 faces +Z.
//
//	phi   = radians(90 - elevation)  polar angle from +Y
//	theta = radians(azimuth)         around +Y, from +Z towards +X
func SunDirection(elevation, azimuth float64) mgl32.Vec3 {
	phi := mgl64.DegToRad(90 - elevation)
	theta := mgl64.DegToRad(azimuth)
	d := FromSpherical(1, phi, theta)
	return mgl32.Vec3{float32(d[0]), float32(d[1]), float32(d[2])}
}

// FromSpherical returns the Cartesian point at radius r, polar angle phi
// (from +Y) and azimuthal angle theta (around +Y, from +Z).
func FromSpherical(r, phi, theta float64) mgl64.Vec3 {
	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		r * sinPhi * math.Sin(theta),
		r * math.Cos(phi),
		r * sinPhi * math.Cos(theta),
	}
}

// ToSpherical is the inverse of FromSpherical. The zero vector maps to (0, 0, 0).
func ToSpherical(v mgl64.Vec3) (r, phi, theta float64) {
	r = v.Len()
	if r == 0 {
		return 0, 0, 0
	}
	theta = math.Atan2(v[0], v[2])
	phi = math.Acos(mgl64.Clamp(v[1]/r, -1, 1))
	return r, phi, theta
}
