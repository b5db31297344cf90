package params

// Sky parameter names. These are also the shader uniform names for the four
// scattering terms.
const (
	Turbidity       = "turbidity"
	Rayleigh        = "rayleigh"
	MieCoefficient  = "mieCoefficient"
	MieDirectionalG = "mieDirectionalG"
	Elevation       = "elevation"
	Azimuth         = "azimuth"
	Exposure        = "exposure"
)

// SkyDefinitions returns the declared sky parameters with their default values.
func SkyDefinitions() []Definition {
	return []Definition{
		{Name: Turbidity, Parameter: Parameter{Value: 10, Min: 0, Max: 20, Step: 0.1}},
		{Name: Rayleigh, Parameter: Parameter{Value: 3, Min: 0, Max: 4, Step: 0.001}},
		{Name: MieCoefficient, Parameter: Parameter{Value: 0.005, Min: 0, Max: 0.1, Step: 0.001}},
		{Name: MieDirectionalG, Parameter: Parameter{Value: 0.7, Min: 0, Max: 1, Step: 0.001}},
		{Name: Elevation, Parameter: Parameter{Value: 5, Min: 0, Max: 90, Step: 0.1}},
		{Name: Azimuth, Parameter: Parameter{Value: 180, Min: -180, Max: 180, Step: 0.1}},
		{Name: Exposure, Parameter: Parameter{Value: 0.5, Min: 0, Max: 1, Step: 0.0001}},
	}
}

// NewDefault returns a store holding the sky parameters at their defaults.
func NewDefault() *Store {
	return New(SkyDefinitions())
}
