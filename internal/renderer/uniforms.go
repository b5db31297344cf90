package renderer

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type UniformKind int

const (
	UniformFloat UniformKind = iota
	UniformVec3
)

// Uniform is one named shader input.
type Uniform struct {
	Kind  UniformKind
	Float float32
	Vec3  mgl32.Vec3
}

// Uniforms is a CPU-side, name indexed set of shader inputs. Renderers upload it
// when they draw the object that owns it.
type Uniforms struct {
	values map[string]*Uniform
}

func NewUniforms() *Uniforms {
	return &Uniforms{values: make(map[string]*Uniform)}
}

func (u *Uniforms) get(name string, kind UniformKind) *Uniform {
	v, ok := u.values[name]
	if !ok {
		panic(fmt.Sprintf("renderer: unknown uniform %q", name))
	}
	if v.Kind != kind {
		panic(fmt.Sprintf("renderer: uniform %q has kind %d, not %d", name, v.Kind, kind))
	}
	return v
}

func (u *Uniforms) set(name string, kind UniformKind) *Uniform {
	v, ok := u.values[name]
	if !ok {
		v = &Uniform{Kind: kind}
		u.values[name] = v
	} else if v.Kind != kind {
		panic(fmt.Sprintf("renderer: uniform %q has kind %d, not %d", name, v.Kind, kind))
	}
	return v
}

// SetFloat declares name on first use. Changing the kind of a declared uniform
// panics.
func (u *Uniforms) SetFloat(name string, value float32) {
	u.set(name, UniformFloat).Float = value
}

func (u *Uniforms) SetVec3(name string, value mgl32.Vec3) {
	u.set(name, UniformVec3).Vec3 = value
}

// Float panics if name is not a declared float uniform.
func (u *Uniforms) Float(name string) float32 {
	return u.get(name, UniformFloat).Float
}

// Vec3 panics if name is not a declared vec3 uniform.
func (u *Uniforms) Vec3(name string) mgl32.Vec3 {
	return u.get(name, UniformVec3).Vec3
}

func (u *Uniforms) Has(name string) bool {
	_, ok := u.values[name]
	return ok
}

// Names returns the declared uniform names, sorted.
func (u *Uniforms) Names() []string {
	names := make([]string, 0, len(u.values))
	for name := range u.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies every uniform value.
func (u *Uniforms) Snapshot() map[string]Uniform {
	out := make(map[string]Uniform, len(u.values))
	for name, v := range u.values {
		out[name] = *v
	}
	return out
}
