package harmonic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Goertzel evaluates the single DFT bin at a target frequency without
// computing a full FFT.
//
// The analyzer is stateful and accumulates information from each
// processed sample; Features() evaluates the component based on all
// samples processed since the last Reset().
//
// Phase is exact when the processed block spans a whole number of
// cycles of the target frequency. For partial cycles spectral leakage
// biases both amplitude and phase; prefer [Fit] in that case.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	cosW, sinW float64
	s0, s1     float64
	count      int
}

// NewGoertzel creates a Goertzel analyzer for the target frequency.
//
// frequency must be between 0 and sampleRate/2.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("harmonic: goertzel sample rate must be > 0: %v", sampleRate)
	}

	if frequency <= 0 || frequency > sampleRate/2 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("harmonic: goertzel frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	g := &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
	}
	g.updateCoeff()

	return g, nil
}

func (g *Goertzel) updateCoeff() {
	w := 2 * math.Pi * g.frequency / g.sampleRate
	g.cosW = math.Cos(w)
	g.sinW = math.Sin(w)
	g.coeff = 2 * g.cosW
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
	g.count = 0
}

// ProcessSample updates the internal state with a single input sample.
func (g *Goertzel) ProcessSample(input float64) {
	s := input + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.count++
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.count += len(input)
}

// Power returns the squared magnitude of the frequency component,
// equivalent to |X[k]|^2 from a DFT of the processed block length.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the frequency component.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Features evaluates amplitude and phase of the processed block.
//
// Amplitude is scaled to peak signal units (2|X|/N). Phase follows the
// package convention: the lag θ of A·cos(ωt − θ) with t = 0 at the
// first processed sample. The mean level is not estimated here; remove
// it before processing (see [AnalyzeBin]) to avoid DC leakage.
func (g *Goertzel) Features() Features {
	if g.count == 0 {
		return Features{Omega: 2 * math.Pi * g.frequency}
	}

	// The recurrence yields X' = sum x_n·e^{jw(N-1-n)}; undo the
	// e^{jw(N-1)} rotation to refer the phase to the first sample.
	re := g.s0 - g.s1*g.cosW
	im := g.s1 * g.sinW

	w := 2 * math.Pi * g.frequency / g.sampleRate
	n := float64(g.count)

	return Features{
		Amplitude: 2 * math.Hypot(re, im) / n,
		Phase:     WrapPhase(w*(n-1) - math.Atan2(im, re)),
		Omega:     2 * math.Pi * g.frequency,
	}
}

// AnalyzeBin extracts the component at frequency from a series in one
// shot. The series mean is removed before processing and reported in
// the returned Features.
func AnalyzeBin(samples []float64, frequency, sampleRate float64) (Features, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return Features{}, err
	}

	if duration := float64(len(samples)) / sampleRate; duration < minPeriods/frequency {
		return Features{}, ErrInsufficientData
	}

	mean := stat.Mean(samples, nil)

	detrended := make([]float64, len(samples))
	for i, v := range samples {
		detrended[i] = v - mean
	}

	g.ProcessBlock(detrended)

	f := g.Features()
	f.Mean = mean

	return f, nil
}
