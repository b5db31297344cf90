package params

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault(t *testing.T) {
	s := NewDefault()

	assert.Equal(t, []string{Turbidity, Rayleigh, MieCoefficient, MieDirectionalG, Elevation, Azimuth, Exposure}, s.Names())
	assert.Equal(t, 10.0, s.Get(Turbidity))
	assert.Equal(t, 3.0, s.Get(Rayleigh))
	assert.Equal(t, 0.005, s.Get(MieCoefficient))
	assert.Equal(t, 0.7, s.Get(MieDirectionalG))
	assert.Equal(t, 5.0, s.Get(Elevation))
	assert.Equal(t, 180.0, s.Get(Azimuth))
	assert.Equal(t, 0.5, s.Get(Exposure))
}

func TestDefaultsWithinBounds(t *testing.T) {
	for _, d := range SkyDefinitions() {
		assert.GreaterOrEqual(t, d.Value, d.Min, d.Name)
		assert.LessOrEqual(t, d.Value, d.Max, d.Name)
		assert.Greater(t, d.Step, 0.0, d.Name)
	}
}

func TestSetClamps(t *testing.T) {
	tests := []struct {
		name  string
		param string
		in    float64
		want  float64
	}{
		{"below min", Turbidity, -3, 0},
		{"above max", Turbidity, 25, 20},
		{"inside", Turbidity, 7.5, 7.5},
		{"on max", Elevation, 90, 90},
		{"negative azimuth", Azimuth, -500, -180},
		{"nan", Exposure, math.NaN(), 0},
		{"positive infinity", MieCoefficient, math.Inf(1), 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDefault()
			s.Set(tt.param, tt.in)
			assert.Equal(t, tt.want, s.Get(tt.param))
		})
	}
}

func TestOnChangeFiresOncePerSet(t *testing.T) {
	s := NewDefault()
	var calls []float64
	s.OnChange(Exposure, func(name string, v float64) {
		assert.Equal(t, Exposure, name)
		calls = append(calls, v)
	})

	s.Set(Exposure, 2)
	require.Len(t, calls, 1)
	assert.Equal(t, 1.0, calls[0])

	// Same value still notifies
	s.Set(Exposure, 1)
	assert.Len(t, calls, 2)

	// Other parameters do not notify
	s.Set(Turbidity, 1)
	assert.Len(t, calls, 2)
}

func TestOnChangeOrder(t *testing.T) {
	s := NewDefault()
	var order []int
	s.OnChange(Azimuth, func(string, float64) { order = append(order, 1) })
	s.OnChange(Azimuth, func(string, float64) { order = append(order, 2) })

	s.Set(Azimuth, 0)

	assert.Equal(t, []int{1, 2}, order)
}

func TestHandlerSeesStoredValue(t *testing.T) {
	s := NewDefault()
	s.OnChange(Elevation, func(name string, v float64) {
		assert.Equal(t, v, s.Get(name))
	})
	s.Set(Elevation, 120)
}

func TestUnknownParameterPanics(t *testing.T) {
	s := NewDefault()

	assert.Panics(t, func() { s.Get("fog") })
	assert.Panics(t, func() { s.Set("fog", 1) })
	assert.Panics(t, func() { s.OnChange("fog", func(string, float64) {}) })
	assert.Panics(t, func() { s.Parameter("fog") })
	assert.False(t, s.Has("fog"))
	assert.True(t, s.Has(Rayleigh))
}

func TestNewRejectsBadDefinitions(t *testing.T) {
	assert.Panics(t, func() {
		New([]Definition{{Name: "a"}, {Name: "a"}})
	})
	assert.Panics(t, func() {
		New([]Definition{{Name: "", Parameter: Parameter{Max: 1}}})
	})
	assert.Panics(t, func() {
		New([]Definition{{Name: "b", Parameter: Parameter{Min: 2, Max: 1}}})
	})
}

func TestNewClampsInitialValue(t *testing.T) {
	s := New([]Definition{{Name: "x", Parameter: Parameter{Value: 9, Min: 0, Max: 1}}})
	assert.Equal(t, 1.0, s.Get("x"))
}

func TestNamesIsACopy(t *testing.T) {
	s := NewDefault()
	names := s.Names()
	names[0] = "changed"
	assert.Equal(t, Turbidity, s.Names()[0])
}
