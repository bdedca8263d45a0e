package flux

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vflux/dsp/harmonic"
)

// Errors returned when differencing a sensor pair.
var (
	ErrAmplitudeNotPositive = errors.New("flux: amplitude must be positive")
	ErrDepthOrder           = errors.New("flux: sensors must be ordered shallow to deep with distinct depths")
)

// phaseNoiseTol is the advective-lag tolerance in radians below which a
// negative advective component is attributed to measurement noise
// rather than flow reversal.
const phaseNoiseTol = 0.02

// Sensor pairs one buried logger's depth below the streambed with its
// uniformly sampled temperature series.
type Sensor struct {
	Depth float64 // m, positive downward
	Temps []float64
}

// PairDifference holds the sufficient statistics one (shallow, deep)
// sensor pair contributes to every inversion method.
type PairDifference struct {
	DeltaZ      float64 // depth separation, m
	LogAmpRatio float64 // dA = ln(A_shallow/A_deep)

	PhaseLagTotal      float64 // unwrapped deep-minus-shallow lag, rad
	PhaseLagConductive float64 // sqrt(w*dz^2/(4*alpha)), rad
	PhaseLagAdvective  float64 // total minus conductive, rad

	// LowConfidence marks an advective lag more negative than the noise
	// tolerance: either upward flow or a phase unwrapping artifact.
	LowConfidence bool
}

// ConductivePhaseLag returns the phase delay of pure thermal diffusion
// over a depth separation deltaZ, in radians. It is present with zero
// flow and must be subtracted from the measured lag before any
// phase-to-velocity conversion.
func ConductivePhaseLag(deltaZ, alpha, omega float64) float64 {
	return math.Sqrt(omega * deltaZ * deltaZ / (4 * alpha))
}

// UnwrapPhaseLag resolves the 2*pi ambiguity of a measured phase
// difference.
//
// Phase is only measurable modulo 2*pi, so a deep sensor lagging by
// slightly more than a full cycle looks like a small lead. The hint —
// normally the theoretical conductive lag — selects the physically
// plausible branch: the returned value is raw shifted by the whole
// number of turns that brings it nearest the hint.
func UnwrapPhaseLag(raw, hint float64) float64 {
	turns := math.Round((hint - raw) / (2 * math.Pi))

	return raw + 2*math.Pi*turns
}

// Difference computes the pair statistics for two sensors' harmonic
// features at the given depths.
//
// The shallow sensor must be strictly above the deep one. The measured
// phase difference is unwrapped against the conductive lag before the
// conductive/advective split.
func Difference(shallow, deep harmonic.Features, depthShallow, depthDeep float64, alpha, omega float64) (PairDifference, error) {
	deltaZ := depthDeep - depthShallow
	if deltaZ <= 0 {
		return PairDifference{}, fmt.Errorf("%w: shallow %g m, deep %g m", ErrDepthOrder, depthShallow, depthDeep)
	}

	if shallow.Amplitude <= 0 || deep.Amplitude <= 0 {
		return PairDifference{}, fmt.Errorf("%w: shallow %g, deep %g", ErrAmplitudeNotPositive, shallow.Amplitude, deep.Amplitude)
	}

	conductive := ConductivePhaseLag(deltaZ, alpha, omega)

	raw := harmonic.WrapPhase(deep.Phase - shallow.Phase)
	total := UnwrapPhaseLag(raw, conductive)
	advective := total - conductive

	return PairDifference{
		DeltaZ:             deltaZ,
		LogAmpRatio:        math.Log(shallow.Amplitude / deep.Amplitude),
		PhaseLagTotal:      total,
		PhaseLagConductive: conductive,
		PhaseLagAdvective:  advective,
		LowConfidence:      advective < -phaseNoiseTol,
	}, nil
}
