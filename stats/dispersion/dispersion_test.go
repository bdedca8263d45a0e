package dispersion

import (
	"math"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.Mean != 0 || s.StdDev != 0 || s.CV != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestSummarizeSingleValue(t *testing.T) {
	s := Summarize([]float64{4.2})
	if s.Count != 1 {
		t.Fatalf("count mismatch: got %d", s.Count)
	}
	if math.Abs(s.Mean-4.2) > 1e-12 {
		t.Fatalf("mean mismatch: got %v", s.Mean)
	}
	if s.StdDev != 0 || s.CV != 0 {
		t.Fatalf("expected zero spread for single value, got %+v", s)
	}
}

func TestSummarizeKnownValues(t *testing.T) {
	s := Summarize([]float64{4, 5, 6})
	if s.Count != 3 {
		t.Fatalf("count mismatch: got %d", s.Count)
	}
	if math.Abs(s.Mean-5) > 1e-12 {
		t.Fatalf("mean mismatch: got %v", s.Mean)
	}
	if math.Abs(s.StdDev-1) > 1e-12 {
		t.Fatalf("stddev mismatch: got %v", s.StdDev)
	}
	if math.Abs(s.CV-0.2) > 1e-12 {
		t.Fatalf("cv mismatch: got %v", s.CV)
	}
}

func TestSummarizeNegativeMeanCV(t *testing.T) {
	s := Summarize([]float64{-4, -5, -6})
	if math.Abs(s.CV-0.2) > 1e-12 {
		t.Fatalf("cv must use |mean|: got %v", s.CV)
	}
}
