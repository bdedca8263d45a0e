package flux

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-vflux/dsp/harmonic"
	"github.com/cwbudde/algo-vflux/internal/testutil"
)

const testOmega = 2 * math.Pi / 86400

func TestDifferenceBasicStatistics(t *testing.T) {
	shallow := harmonic.Features{Amplitude: 3.0, Phase: 0}
	deep := harmonic.Features{Amplitude: 2.0, Phase: 0.4828}

	d, err := Difference(shallow, deep, 0.10, 0.20, 8e-7, testOmega)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNearlyEqual(t, d.DeltaZ, 0.10, 1e-15)
	testutil.RequireNearlyEqual(t, d.LogAmpRatio, math.Log(1.5), 1e-12)
	testutil.RequireNearlyEqual(t, d.PhaseLagTotal, 0.4828, 1e-12)
	testutil.RequireNearlyEqual(t, d.PhaseLagConductive, ConductivePhaseLag(0.10, 8e-7, testOmega), 1e-12)
	testutil.RequireNearlyEqual(t, d.PhaseLagAdvective, d.PhaseLagTotal-d.PhaseLagConductive, 1e-15)

	if d.LowConfidence {
		t.Fatal("positive advective lag must not be flagged low-confidence")
	}
}

func TestDifferenceDepthOrder(t *testing.T) {
	f := harmonic.Features{Amplitude: 1}

	if _, err := Difference(f, f, 0.2, 0.1, 8e-7, testOmega); !errors.Is(err, ErrDepthOrder) {
		t.Fatalf("expected ErrDepthOrder, got %v", err)
	}

	if _, err := Difference(f, f, 0.2, 0.2, 8e-7, testOmega); !errors.Is(err, ErrDepthOrder) {
		t.Fatalf("expected ErrDepthOrder for equal depths, got %v", err)
	}
}

func TestDifferenceAmplitudeDomain(t *testing.T) {
	good := harmonic.Features{Amplitude: 1}
	bad := harmonic.Features{Amplitude: 0}

	if _, err := Difference(bad, good, 0.1, 0.2, 8e-7, testOmega); !errors.Is(err, ErrAmplitudeNotPositive) {
		t.Fatalf("expected ErrAmplitudeNotPositive, got %v", err)
	}

	if _, err := Difference(good, bad, 0.1, 0.2, 8e-7, testOmega); !errors.Is(err, ErrAmplitudeNotPositive) {
		t.Fatalf("expected ErrAmplitudeNotPositive, got %v", err)
	}
}

func TestConductivePhaseLagZeroFlowInvariant(t *testing.T) {
	// With zero flow the total lag is purely conductive; the advective
	// remainder must vanish.
	cond := ConductivePhaseLag(0.10, 8e-7, testOmega)

	shallow := harmonic.Features{Amplitude: 2.0, Phase: 0.1}
	deep := harmonic.Features{Amplitude: 2.0, Phase: harmonic.WrapPhase(0.1 + cond)}

	d, err := Difference(shallow, deep, 0.10, 0.20, 8e-7, testOmega)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNearlyEqual(t, d.PhaseLagTotal, cond, 1e-12)
	testutil.RequireNearlyEqual(t, d.PhaseLagAdvective, 0, 1e-12)
}

func TestUnwrapPhaseLag(t *testing.T) {
	cases := []struct {
		name      string
		raw, hint float64
		want      float64
	}{
		{"already plausible", 0.48, 0.477, 0.48},
		{"negative raw below small lag", -0.1, 0.05, -0.1},
		{"full turn hidden by wrapping", 3.8137 - 2*math.Pi, 3.8137, 3.8137},
		{"two turns", 0.5 - 4*math.Pi, 0.6, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UnwrapPhaseLag(tc.raw, tc.hint)
			testutil.RequireNearlyEqual(t, got, tc.want, 1e-12)
		})
	}
}

func TestDifferenceUnwrapsDeepLag(t *testing.T) {
	// 80 cm separation: the conductive lag alone exceeds pi, so the
	// wrapped measurement looks like a lead and must be unwrapped.
	deltaZ := 0.8
	cond := ConductivePhaseLag(deltaZ, 8e-7, testOmega)
	if cond <= math.Pi {
		t.Fatalf("test setup: conductive lag %v must exceed pi", cond)
	}

	shallow := harmonic.Features{Amplitude: 3.0, Phase: 0}
	deep := harmonic.Features{Amplitude: 0.5, Phase: harmonic.WrapPhase(cond)}

	d, err := Difference(shallow, deep, 0.1, 0.1+deltaZ, 8e-7, testOmega)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.RequireNearlyEqual(t, d.PhaseLagTotal, cond, 1e-12)
	testutil.RequireNearlyEqual(t, d.PhaseLagAdvective, 0, 1e-12)
}

func TestDifferenceLowConfidenceFlag(t *testing.T) {
	// Deep sensor leading well beyond the noise tolerance: either
	// upward flow or an unwrapping artifact, so flag it.
	cond := ConductivePhaseLag(0.02, 8e-7, testOmega) // ~0.095 rad

	shallow := harmonic.Features{Amplitude: 2.0, Phase: 0.5}
	deep := harmonic.Features{Amplitude: 1.9, Phase: 0.5 + cond - 0.06}

	d, err := Difference(shallow, deep, 0.10, 0.12, 8e-7, testOmega)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !d.LowConfidence {
		t.Fatalf("advective lag %v below -%v must be flagged", d.PhaseLagAdvective, 0.02)
	}
}
