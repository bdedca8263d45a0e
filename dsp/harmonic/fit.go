package harmonic

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// DiurnalPeriod is the fundamental period of the daily temperature
	// cycle in seconds.
	DiurnalPeriod = 86400.0

	// minPeriods is the minimum series duration, in fundamental periods,
	// required for a stable harmonic fit.
	minPeriods = 1.5
)

// Errors returned by harmonic estimators.
var (
	ErrInsufficientData  = errors.New("harmonic: series covers less than 1.5 fundamental periods")
	ErrInvalidSampleRate = errors.New("harmonic: sample rate must be positive")
	ErrInvalidFrequency  = errors.New("harmonic: frequency must be positive and below Nyquist")
)

// Features describe the dominant oscillation of one sensor series.
type Features struct {
	Amplitude float64 // peak amplitude, signal units
	Phase     float64 // phase lag in radians, wrapped to [-pi, pi)
	Mean      float64 // mean signal level
	Omega     float64 // angular frequency, rad/s
}

// Config holds harmonic extraction parameters.
type Config struct {
	SampleRate float64 // samples per second
	Period     float64 // fundamental period in seconds; 0 selects the diurnal period
}

func normalizeConfig(cfg Config) Config {
	if cfg.Period <= 0 {
		cfg.Period = DiurnalPeriod
	}

	return cfg
}

// Analyze extracts the fundamental oscillation from a uniformly sampled
// series using least-squares regression.
func Analyze(samples []float64, cfg Config) (Features, error) {
	cfg = normalizeConfig(cfg)
	return Fit(samples, cfg.SampleRate, 1/cfg.Period)
}

// Fit estimates amplitude, phase and mean of the component at freqHz by
// least-squares regression of a·cos(ωt)+b·sin(ωt)+c over the series.
//
// The returned phase is the lag θ of Mean + A·cos(ωt − θ), computed as
// atan2(b, a). The series must be uniformly sampled and span at least
// 1.5 periods of the target frequency.
func Fit(samples []float64, sampleRate, freqHz float64) (Features, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Features{}, ErrInvalidSampleRate
	}

	if freqHz <= 0 || freqHz >= sampleRate/2 || math.IsNaN(freqHz) {
		return Features{}, ErrInvalidFrequency
	}

	duration := float64(len(samples)) / sampleRate
	if duration < minPeriods/freqHz {
		return Features{}, ErrInsufficientData
	}

	omega := 2 * math.Pi * freqHz

	n := len(samples)
	X := mat.NewDense(n, 3, nil)

	for i := range n {
		t := float64(i) / sampleRate
		X.Set(i, 0, math.Cos(omega*t))
		X.Set(i, 1, math.Sin(omega*t))
		X.Set(i, 2, 1)
	}

	y := mat.NewVecDense(n, samples)

	var qr mat.QR
	qr.Factorize(X)

	coef := mat.NewVecDense(3, nil)

	err := qr.SolveVecTo(coef, false, y)
	if err != nil {
		return Features{}, fmt.Errorf("harmonic: least-squares solve failed: %w", err)
	}

	a := coef.AtVec(0)
	b := coef.AtVec(1)

	return Features{
		Amplitude: math.Hypot(a, b),
		Phase:     WrapPhase(math.Atan2(b, a)),
		Mean:      coef.AtVec(2),
		Omega:     omega,
	}, nil
}

// WrapPhase wraps an angle in radians to the principal range [-pi, pi).
func WrapPhase(phi float64) float64 {
	phi = math.Mod(phi+math.Pi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}

	return phi - math.Pi
}
