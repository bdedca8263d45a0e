package harmonic

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"
)

// ErrSeriesTooShort is returned when a spectrum is requested for fewer
// than two samples.
var ErrSeriesTooShort = errors.New("harmonic: series must contain at least two samples")

// Periodogram returns the one-sided amplitude spectrum of the series.
//
// The series mean is removed before transforming so the diurnal peak is
// not masked by DC. The series is zero-padded to the next power of two;
// amplitudes are normalized to peak signal units (2|X|/N with N the
// original series length). freqs[i] is the frequency of bin i in Hz.
func Periodogram(samples []float64, sampleRate float64) (freqs, amps []float64, err error) {
	if sampleRate <= 0 {
		return nil, nil, ErrInvalidSampleRate
	}

	n := len(samples)
	if n < 2 {
		return nil, nil, ErrSeriesTooShort
	}

	mean := stat.Mean(samples, nil)

	fftSize := nextPowerOf2(n)
	in := make([]complex128, fftSize)

	for i, v := range samples {
		in[i] = complex(v-mean, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("harmonic: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)

	err = plan.Forward(out, in)
	if err != nil {
		return nil, nil, fmt.Errorf("harmonic: forward FFT failed: %w", err)
	}

	binCount := fftSize/2 + 1
	re := make([]float64, binCount)
	im := make([]float64, binCount)

	for i := range binCount {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	amps = make([]float64, binCount)
	vecmath.Magnitude(amps, re, im)

	scale := 2 / float64(n)
	freqs = make([]float64, binCount)

	for i := range binCount {
		freqs[i] = float64(i) * sampleRate / float64(fftSize)
		amps[i] *= scale
	}

	return freqs, amps, nil
}

// DominantFrequency returns the frequency of the strongest non-DC
// spectral peak, in Hz.
//
// Use it to confirm that the diurnal cycle dominates a deployment
// before fitting at the fixed fundamental.
func DominantFrequency(samples []float64, sampleRate float64) (float64, error) {
	freqs, amps, err := Periodogram(samples, sampleRate)
	if err != nil {
		return 0, err
	}

	bestBin := 1
	bestVal := -1.0

	for i := 1; i < len(amps); i++ {
		if amps[i] > bestVal {
			bestVal = amps[i]
			bestBin = i
		}
	}

	return freqs[bestBin], nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
