// Package dispersion provides summary statistics for comparing flux
// estimates across inversion methods.
package dispersion

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the spread of a set of estimates.
//
// CV is the coefficient of variation StdDev/|Mean|; it is zero when the
// mean is zero or fewer than two values were summarized.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	CV     float64
}

// Summarize computes mean, standard deviation and coefficient of
// variation for the given values. An empty input yields a zero Summary;
// a single value yields its mean with zero spread.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		Count: n,
		Mean:  stat.Mean(values, nil),
	}

	if n < 2 {
		return s
	}

	s.StdDev = stat.StdDev(values, nil)
	if s.Mean != 0 && !math.IsNaN(s.StdDev) {
		s.CV = s.StdDev / math.Abs(s.Mean)
	}

	return s
}
