package signal

import (
	"errors"
	"math"
)

// Errors returned by the streambed forward model.
var (
	ErrInvalidAmplitude   = errors.New("signal: surface amplitude must be positive")
	ErrInvalidDiffusivity = errors.New("signal: thermal diffusivity must be positive")
	ErrInvalidConductor   = errors.New("signal: thermal conductivity and water heat capacity must be positive")
	ErrInvalidOmega       = errors.New("signal: angular frequency must be positive")
	ErrInvalidDepth       = errors.New("signal: depth must be >= 0")
)

// StreambedModel is the linearized Stallman forward model for the
// diurnal temperature wave under a saturated streambed.
//
// For a prescribed downward pore-water velocity v, the surface wave
// A0·cos(ωt) arrives at depth z attenuated and delayed:
//
//	A(z) = A0 · exp(−v·z/α)
//	θ(z) = √(ω·z²/(4α)) + v·Cw·z/(2λ)
//
// The first phase term is the purely conductive lag, present with zero
// flow; the second is the advective contribution of the moving water.
// These are the relations the corrected Hatch methods invert exactly,
// which makes the model the reference for round-trip validation.
type StreambedModel struct {
	SurfaceAmplitude float64 // A0, degC
	SurfaceMean      float64 // degC
	Velocity         float64 // v, m/s, positive = downward infiltration
	Diffusivity      float64 // alpha, m^2/s
	Conductivity     float64 // lambda, W/(m*K)
	WaterHeatCap     float64 // Cw, J/(m^3*K)
	Omega            float64 // rad/s
}

// Validate checks that the model parameters are physically usable.
func (m *StreambedModel) Validate() error {
	if m.SurfaceAmplitude <= 0 {
		return ErrInvalidAmplitude
	}

	if m.Diffusivity <= 0 {
		return ErrInvalidDiffusivity
	}

	if m.Conductivity <= 0 || m.WaterHeatCap <= 0 {
		return ErrInvalidConductor
	}

	if m.Omega <= 0 {
		return ErrInvalidOmega
	}

	return nil
}

// AmplitudeAt returns the wave amplitude at depth z in meters.
func (m *StreambedModel) AmplitudeAt(z float64) float64 {
	return m.SurfaceAmplitude * math.Exp(-m.Velocity*z/m.Diffusivity)
}

// PhaseLagAt returns the total phase lag at depth z in radians,
// conductive plus advective.
func (m *StreambedModel) PhaseLagAt(z float64) float64 {
	conductive := math.Sqrt(m.Omega * z * z / (4 * m.Diffusivity))
	advective := m.Velocity * m.WaterHeatCap * z / (2 * m.Conductivity)

	return conductive + advective
}

// SeriesAt generates the temperature series a sensor at depth z records,
// sampled at sampleRate for the given number of samples.
func (m *StreambedModel) SeriesAt(z, sampleRate float64, samples int) ([]float64, error) {
	err := m.Validate()
	if err != nil {
		return nil, err
	}

	if z < 0 {
		return nil, ErrInvalidDepth
	}

	gen := NewGenerator(sampleRate)

	return gen.SineAt(m.Omega/(2*math.Pi), m.AmplitudeAt(z), m.PhaseLagAt(z), m.SurfaceMean, samples)
}
