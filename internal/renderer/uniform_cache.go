package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformCache caches uniform locations of one program to avoid repeated
// gl.GetUniformLocation calls.
type UniformCache struct {
	locations map[string]int32
	program   uint32
}

func NewUniformCache(program uint32) *UniformCache {
	return &UniformCache{
		locations: make(map[string]int32),
		program:   program,
	}
}

// GetLocation returns the cached location, fetching it on first use. Missing
// uniforms are cached as -1 as well.
func (uc *UniformCache) GetLocation(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}

	loc := gl.GetUniformLocation(uc.program, gl.Str(name+"\x00"))
	uc.locations[name] = loc
	return loc
}

func (uc *UniformCache) SetFloat(name string, value float32) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.Uniform1f(loc, value)
	}
}

func (uc *UniformCache) SetVec3(name string, v mgl32.Vec3) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.Uniform3f(loc, v.X(), v.Y(), v.Z())
	}
}

func (uc *UniformCache) SetMat4(name string, m mgl32.Mat4) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// Upload writes every value of u into the currently bound program.
func (uc *UniformCache) Upload(u *Uniforms) {
	for name, v := range u.values {
		switch v.Kind {
		case UniformFloat:
			uc.SetFloat(name, v.Float)
		case UniformVec3:
			uc.SetVec3(name, v.Vec3)
		}
	}
}

// Clear drops cached locations. Call when the program is relinked.
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
}
