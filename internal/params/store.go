package params

import (
	"fmt"
	"math"

	"Gopher3DSky/internal/logger"

	"go.uber.org/zap"
)

// Parameter is one tunable scalar with its declared bounds and editing step.
type Parameter struct {
	Value float64
	Min   float64
	Max   float64
	Step  float64
}

// Clamp returns v limited to [Min, Max]. NaN maps to Min.
func (p Parameter) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

// ChangeHandler is invoked synchronously after a Set, with the stored value.
type ChangeHandler func(name string, value float64)

// Definition declares a parameter for New. Order of definitions is the order
// reported by Names.
type Definition struct {
	Name string
	Parameter
}

// Store holds the current value of each tunable parameter. It is not safe for
// concurrent use: all access happens on the host thread.
type Store struct {
	params   map[string]*Parameter
	order    []string
	handlers map[string][]ChangeHandler
}

// New builds a store from defs. Initial values are clamped to their bounds.
// Duplicate or empty names, and inverted bounds, panic.
func New(defs []Definition) *Store {
	s := &Store{
		params:   make(map[string]*Parameter, len(defs)),
		order:    make([]string, 0, len(defs)),
		handlers: make(map[string][]ChangeHandler),
	}
	for _, d := range defs {
		if d.Name == "" {
			panic("params: empty parameter name")
		}
		if _, dup := s.params[d.Name]; dup {
			panic(fmt.Sprintf("params: duplicate parameter %q", d.Name))
		}
		if d.Min > d.Max {
			panic(fmt.Sprintf("params: parameter %q has min %v > max %v", d.Name, d.Min, d.Max))
		}
		p := d.Parameter
		p.Value = p.Clamp(p.Value)
		s.params[d.Name] = &p
		s.order = append(s.order, d.Name)
	}
	return s
}

func (s *Store) lookup(name string) *Parameter {
	p, ok := s.params[name]
	if !ok {
		panic(fmt.Sprintf("params: unknown parameter %q", name))
	}
	return p
}

// Get returns the current value of name.
func (s *Store) Get(name string) float64 {
	return s.lookup(name).Value
}

// Parameter returns a copy of the full declaration of name.
func (s *Store) Parameter(name string) Parameter {
	return *s.lookup(name)
}

// Has reports whether name is a declared parameter.
func (s *Store) Has(name string) bool {
	_, ok := s.params[name]
	return ok
}

// Names returns the declared parameter names in declaration order.
func (s *Store) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Set clamps value to the bounds of name, stores it and then runs every handler
// registered for name. Handlers run even if the stored value did not change.
func (s *Store) Set(name string, value float64) {
	p := s.lookup(name)
	clamped := p.Clamp(value)
	if clamped != value {
		logger.Log.Debug("Parameter clamped",
			zap.String("name", name),
			zap.Float64("requested", value),
			zap.Float64("stored", clamped))
	}
	p.Value = clamped

	for _, h := range s.handlers[name] {
		h(name, clamped)
	}
}

// OnChange registers h to run after every Set of name.
func (s *Store) OnChange(name string, h ChangeHandler) {
	s.lookup(name)
	s.handlers[name] = append(s.handlers[name], h)
}
