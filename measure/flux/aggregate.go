package flux

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vflux/dsp/harmonic"
	"github.com/cwbudde/algo-vflux/stats/dispersion"
)

// Errors returned by the aggregator.
var (
	ErrTooFewSensors  = errors.New("flux: at least two sensors are required")
	ErrInvalidPeriod  = errors.New("flux: fundamental period must be positive")
	ErrNoMethods      = errors.New("flux: method selection is empty")
	ErrDuplicateDepth = errors.New("flux: sensor depths must be strictly increasing")
)

// Config holds the aggregation parameters for one analysis run.
type Config struct {
	Props      ThermalProperties
	SampleRate float64 // samples per second
	Period     float64 // fundamental period in seconds; 0 selects the diurnal period
	Methods    []Method // nil selects all five methods
	AllPairs   bool     // false: adjacent pairs only
}

// PairKey identifies a sensor pair by profile indices, shallow first.
type PairKey struct {
	Shallow, Deep int
}

// String renders the pair as "shallow->deep".
func (k PairKey) String() string {
	return fmt.Sprintf("%d->%d", k.Shallow, k.Deep)
}

// PairResult collects everything derived from one sensor pair.
//
// When Err is set the pair could not be differenced (domain violation
// or a failed sensor fit) and Estimates is empty; other pairs are
// unaffected.
type PairResult struct {
	Key        PairKey
	Difference PairDifference
	Estimates  []Estimate

	// Stats summarizes MMDay over the valid estimates only.
	Stats dispersion.Summary

	// Undefined counts estimates excluded from Stats because their
	// method was undefined for this input.
	Undefined int

	// LowConfidence counts estimates flagged by the pair's
	// negative-advective-lag warning.
	LowConfidence int

	Err error
}

// Table is the full result of one analysis run.
type Table struct {
	// Features holds per-sensor harmonic features, indexed like the
	// input profile. Entries with a non-nil SensorErrs slot are zero.
	Features   []harmonic.Features
	SensorErrs []error

	Pairs []PairResult
}

// Analyzer runs the extraction, differencing and inversion pipeline
// over a sensor profile.
type Analyzer struct {
	cfg   Config
	omega float64
}

// NewAnalyzer validates the configuration and creates an analyzer.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	err := cfg.Props.Validate()
	if err != nil {
		return nil, err
	}

	if cfg.Period == 0 {
		cfg.Period = harmonic.DiurnalPeriod
	}

	if cfg.Period < 0 {
		return nil, ErrInvalidPeriod
	}

	if cfg.Methods != nil && len(cfg.Methods) == 0 {
		return nil, ErrNoMethods
	}

	return &Analyzer{
		cfg:   cfg,
		omega: 2 * math.Pi / cfg.Period,
	}, nil
}

// Run analyzes a sensor profile ordered shallow to deep.
//
// Failures are local: a sensor whose harmonic fit fails poisons only
// the pairs it participates in, and a pair-level domain violation only
// that pair. Run returns an error solely for structural problems with
// the profile itself.
func (a *Analyzer) Run(sensors []Sensor) (*Table, error) {
	if len(sensors) < 2 {
		return nil, ErrTooFewSensors
	}

	for i := 1; i < len(sensors); i++ {
		if sensors[i].Depth <= sensors[i-1].Depth {
			return nil, fmt.Errorf("%w: depth[%d]=%g, depth[%d]=%g",
				ErrDuplicateDepth, i-1, sensors[i-1].Depth, i, sensors[i].Depth)
		}
	}

	table := &Table{
		Features:   make([]harmonic.Features, len(sensors)),
		SensorErrs: make([]error, len(sensors)),
	}

	cfg := harmonic.Config{SampleRate: a.cfg.SampleRate, Period: a.cfg.Period}

	for i, s := range sensors {
		f, err := harmonic.Analyze(s.Temps, cfg)
		if err != nil {
			table.SensorErrs[i] = fmt.Errorf("flux: sensor %d at %g m: %w", i, s.Depth, err)
			continue
		}

		table.Features[i] = f
	}

	for _, key := range a.pairKeys(len(sensors)) {
		table.Pairs = append(table.Pairs, a.analyzePair(key, sensors, table))
	}

	return table, nil
}

func (a *Analyzer) pairKeys(n int) []PairKey {
	var keys []PairKey

	if a.cfg.AllPairs {
		for i := range n {
			for j := i + 1; j < n; j++ {
				keys = append(keys, PairKey{Shallow: i, Deep: j})
			}
		}

		return keys
	}

	for i := range n - 1 {
		keys = append(keys, PairKey{Shallow: i, Deep: i + 1})
	}

	return keys
}

func (a *Analyzer) analyzePair(key PairKey, sensors []Sensor, table *Table) PairResult {
	res := PairResult{Key: key}

	if err := table.SensorErrs[key.Shallow]; err != nil {
		res.Err = err
		return res
	}

	if err := table.SensorErrs[key.Deep]; err != nil {
		res.Err = err
		return res
	}

	d, err := Difference(
		table.Features[key.Shallow], table.Features[key.Deep],
		sensors[key.Shallow].Depth, sensors[key.Deep].Depth,
		a.cfg.Props.Alpha(), a.omega,
	)
	if err != nil {
		res.Err = fmt.Errorf("flux: pair %s: %w", key, err)
		return res
	}

	res.Difference = d
	res.Estimates = InvertAll(a.cfg.Methods, d, &a.cfg.Props, a.omega)

	validMM := make([]float64, 0, len(res.Estimates))
	for _, e := range res.Estimates {
		if e.Valid {
			validMM = append(validMM, e.MMDay)
		} else {
			res.Undefined++
		}

		if e.LowConfidence {
			res.LowConfidence++
		}
	}

	res.Stats = dispersion.Summarize(validMM)

	return res
}
