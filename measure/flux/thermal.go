package flux

import (
	"errors"
	"math"
)

// Errors returned when validating thermal properties and sensor input.
var (
	ErrConductivity        = errors.New("flux: thermal conductivity must be positive")
	ErrSedimentHeatCap     = errors.New("flux: sediment heat capacity must be positive")
	ErrWaterHeatCap        = errors.New("flux: water heat capacity must be positive")
	ErrDiffusivityMismatch = errors.New("flux: supplied diffusivity inconsistent with conductivity/heat capacity")
	ErrDispersivity        = errors.New("flux: dispersivity must not be negative")
)

// diffusivityRelTol bounds the accepted relative deviation between a
// supplied diffusivity and the derived lambda/Cs value. Published
// values are rounded to two or three significant digits, so the bound
// is loose enough for that but catches unit mistakes.
const diffusivityRelTol = 1e-3

// ThermalProperties hold the sediment and water parameters shared by
// all inversion formulas of one analysis run. Construct once, validate,
// then treat as immutable.
type ThermalProperties struct {
	Conductivity    float64 // lambda, W/(m*K)
	SedimentHeatCap float64 // Cs, J/(m^3*K)
	WaterHeatCap    float64 // Cw, J/(m^3*K)

	// Diffusivity is alpha in m^2/s. Leave zero to derive lambda/Cs.
	// A supplied value must agree with the derived one; silent
	// divergence between the two is not allowed.
	Diffusivity float64

	// Dispersivity is the Keery beta parameter in 1/m. Leave zero to
	// derive sqrt(omega/(2*alpha)) at inversion time.
	Dispersivity float64
}

// Validate checks all invariants. It must pass before the properties
// are used in any inversion.
func (p *ThermalProperties) Validate() error {
	if p.Conductivity <= 0 || math.IsNaN(p.Conductivity) {
		return ErrConductivity
	}

	if p.SedimentHeatCap <= 0 || math.IsNaN(p.SedimentHeatCap) {
		return ErrSedimentHeatCap
	}

	if p.WaterHeatCap <= 0 || math.IsNaN(p.WaterHeatCap) {
		return ErrWaterHeatCap
	}

	if p.Dispersivity < 0 || math.IsNaN(p.Dispersivity) {
		return ErrDispersivity
	}

	if p.Diffusivity != 0 {
		derived := p.Conductivity / p.SedimentHeatCap
		if math.IsNaN(p.Diffusivity) || math.Abs(p.Diffusivity-derived)/derived > diffusivityRelTol {
			return ErrDiffusivityMismatch
		}
	}

	return nil
}

// Alpha returns the thermal diffusivity in m^2/s, preferring a supplied
// value over the derived lambda/Cs.
func (p *ThermalProperties) Alpha() float64 {
	if p.Diffusivity > 0 {
		return p.Diffusivity
	}

	return p.Conductivity / p.SedimentHeatCap
}

// beta returns the Keery dispersivity parameter in 1/m, deriving
// sqrt(omega/(2*alpha)) when none was supplied.
func (p *ThermalProperties) beta(omega float64) float64 {
	if p.Dispersivity > 0 {
		return p.Dispersivity
	}

	return math.Sqrt(omega / (2 * p.Alpha()))
}
