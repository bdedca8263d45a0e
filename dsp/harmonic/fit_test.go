package harmonic

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-vflux/internal/testutil"
)

const (
	diurnalFreq = 1.0 / DiurnalPeriod
	sampleRate  = 1.0 / 900 // 15-minute logger interval
)

// threeDays spans three full diurnal cycles at the 15-minute interval.
const threeDays = 3 * 96

func diurnalCosine(amplitude, phase, mean float64, samples int) []float64 {
	out := make([]float64, samples)
	omega := 2 * math.Pi * diurnalFreq
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = mean + amplitude*math.Cos(omega*t-phase)
	}
	return out
}

func TestFitPureSinusoid(t *testing.T) {
	series := diurnalCosine(2.0, 0.4828, 19.0, threeDays)

	f, err := Fit(series, sampleRate, diurnalFreq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNearlyEqual(t, f.Amplitude, 2.0, 1e-9)
	testutil.RequireNearlyEqual(t, f.Phase, 0.4828, 1e-9)
	testutil.RequireNearlyEqual(t, f.Mean, 19.0, 1e-9)
	testutil.RequireNearlyEqual(t, f.Omega, 2*math.Pi/DiurnalPeriod, 1e-15)
}

func TestFitNegativePhaseWrapped(t *testing.T) {
	series := diurnalCosine(1.5, -2.0, 10.0, threeDays)

	f, err := Fit(series, sampleRate, diurnalFreq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNearlyEqual(t, f.Phase, -2.0, 1e-9)
}

func TestFitNoisySinusoid(t *testing.T) {
	series := diurnalCosine(3.0, 0.3, 20.0, threeDays)
	noise := deterministicNoise(1, 0.3, threeDays)
	for i := range series {
		series[i] += noise[i]
	}

	f, err := Fit(series, sampleRate, diurnalFreq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireRelativeError(t, f.Amplitude, 3.0, 0.02)
	testutil.RequireNearlyEqual(t, f.Phase, 0.3, 0.02)
	testutil.RequireNearlyEqual(t, f.Mean, 20.0, 0.05)
}

func TestFitInsufficientData(t *testing.T) {
	series := diurnalCosine(2.0, 0, 19.0, 96) // one day, below 1.5 periods

	_, err := Fit(series, sampleRate, diurnalFreq)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestFitInvalidInputs(t *testing.T) {
	series := diurnalCosine(2.0, 0, 19.0, threeDays)

	if _, err := Fit(series, 0, diurnalFreq); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("expected ErrInvalidSampleRate, got %v", err)
	}

	if _, err := Fit(series, sampleRate, 0); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}

	// At or above Nyquist.
	if _, err := Fit(series, sampleRate, sampleRate/2); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestAnalyzeDefaultsToDiurnalPeriod(t *testing.T) {
	series := diurnalCosine(2.5, 1.0, 15.0, threeDays)

	f, err := Analyze(series, Config{SampleRate: sampleRate})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNearlyEqual(t, f.Amplitude, 2.5, 1e-9)
	testutil.RequireNearlyEqual(t, f.Phase, 1.0, 1e-9)
}

func TestFitMatchesGoertzelOnPureSinusoid(t *testing.T) {
	series := diurnalCosine(2.0, 0.7, 18.0, threeDays)

	fitted, err := Fit(series, sampleRate, diurnalFreq)
	if err != nil {
		t.Fatalf("fit error: %v", err)
	}

	binned, err := AnalyzeBin(series, diurnalFreq, sampleRate)
	if err != nil {
		t.Fatalf("goertzel error: %v", err)
	}

	testutil.RequireNearlyEqual(t, fitted.Amplitude, binned.Amplitude, 1e-9)
	testutil.RequireNearlyEqual(t, fitted.Phase, binned.Phase, 1e-9)
	testutil.RequireNearlyEqual(t, fitted.Mean, binned.Mean, 1e-9)
}

func TestWrapPhase(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{-math.Pi, -math.Pi},
		{math.Pi, -math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{2 * math.Pi, 0},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}

	for _, tc := range cases {
		got := WrapPhase(tc.in)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("WrapPhase(%v): got %v, want %v", tc.in, got, tc.want)
		}
	}
}
