package flux

import (
	"fmt"
	"math"
)

// MMPerDay converts a velocity in m/s to mm/day for reporting.
const MMPerDay = 8.64e7

// Method identifies one of the published flux inversion formulas. The
// set is closed: every method maps a PairDifference plus thermal
// properties to a velocity estimate, so they aggregate uniformly.
type Method int

// The five supported inversion methods.
const (
	HatchAmplitude Method = iota
	HatchPhase
	Keery
	McCallum
	Luce
)

var methodNames = map[Method]string{
	HatchAmplitude: "hatch-amplitude",
	HatchPhase:     "hatch-phase",
	Keery:          "keery",
	McCallum:       "mccallum",
	Luce:           "luce",
}

// String returns the canonical method name.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}

	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod resolves a canonical method name.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("flux: unknown method %q", name)
}

// AllMethods returns the full method set in canonical order.
func AllMethods() []Method {
	return []Method{HatchAmplitude, HatchPhase, Keery, McCallum, Luce}
}

// Estimate is the tagged outcome of one (method, pair) inversion.
//
// Valid=false means the method's mathematical precondition failed for
// this input; Velocity is NaN then and Reason names the cause. An
// undefined estimate is data, not an error: aggregation reports it
// rather than substituting another method's answer.
type Estimate struct {
	Method   Method
	Velocity float64 // m/s, positive = downward infiltration
	MMDay    float64 // Velocity in mm/day
	Valid    bool
	Reason   string

	// Radicand is the McCallum square-root argument, recorded so a
	// negative value is diagnosable from the result table.
	Radicand float64

	// LowConfidence propagates the pair's negative-advective-lag
	// warning into every phase-consuming estimate.
	LowConfidence bool
}

// Invert applies one inversion method to a differenced sensor pair.
// props must have been validated.
func Invert(m Method, d PairDifference, props *ThermalProperties, omega float64) Estimate {
	switch m {
	case HatchAmplitude:
		return invertHatchAmplitude(d, props)
	case HatchPhase:
		return invertHatchPhase(d, props)
	case Keery:
		return invertKeery(d, props, omega)
	case McCallum:
		return invertMcCallum(d, props, omega)
	case Luce:
		return invertLuce(d, omega)
	default:
		return undefined(m, fmt.Sprintf("unknown method %d", int(m)))
	}
}

// InvertAll applies the given methods (all five when methods is nil) to
// one differenced pair.
func InvertAll(methods []Method, d PairDifference, props *ThermalProperties, omega float64) []Estimate {
	if methods == nil {
		methods = AllMethods()
	}

	out := make([]Estimate, len(methods))
	for i, m := range methods {
		out[i] = Invert(m, d, props, omega)
	}

	return out
}

func valid(m Method, v float64) Estimate {
	return Estimate{
		Method:   m,
		Velocity: v,
		MMDay:    v * MMPerDay,
		Valid:    true,
	}
}

func undefined(m Method, reason string) Estimate {
	return Estimate{
		Method:   m,
		Velocity: math.NaN(),
		MMDay:    math.NaN(),
		Reason:   reason,
	}
}

// invertHatchAmplitude implements Hatch et al. (2006), amplitude ratio:
//
//	v = (alpha/dz) * dA
//
// Pure amplitude method, defined for any finite dA; negative dA (deep
// amplitude exceeding shallow) yields a negative, upward velocity.
func invertHatchAmplitude(d PairDifference, props *ThermalProperties) Estimate {
	return valid(HatchAmplitude, props.Alpha()/d.DeltaZ*d.LogAmpRatio)
}

// invertHatchPhase implements Hatch et al. (2006), phase lag, with the
// conductive component removed before conversion:
//
//	v = (dPhi_adv/dz) * 2*lambda/Cw
//
// A negative advective lag beyond noise tolerance flags the estimate
// low-confidence (flow reversal or unwrapping error) but still reports
// the signed velocity.
func invertHatchPhase(d PairDifference, props *ThermalProperties) Estimate {
	e := valid(HatchPhase, d.PhaseLagAdvective/d.DeltaZ*2*props.Conductivity/props.WaterHeatCap)
	e.LowConfidence = d.LowConfidence

	return e
}

// invertKeery implements Keery et al. (2007) with the same
// conductive/advective separation applied:
//
//	v = (2*alpha/dz) * [dA + beta*dz - dPhi_adv/(beta*dz)]
//
// The exact published coefficients (their eqs. 5-18) remain unvalidated
// against the paper; treat results as indicative.
func invertKeery(d PairDifference, props *ThermalProperties, omega float64) Estimate {
	betaDz := props.beta(omega) * d.DeltaZ
	if betaDz < 1e-12 {
		return undefined(Keery, "dispersivity term beta*dz is zero")
	}

	v := 2 * props.Alpha() / d.DeltaZ * (d.LogAmpRatio + betaDz - d.PhaseLagAdvective/betaDz)

	e := valid(Keery, v)
	e.LowConfidence = d.LowConfidence

	return e
}

// invertMcCallum implements McCallum et al. (2012), combined
// amplitude-and-phase:
//
//	v = (alpha/dz) * [dA + sqrt(dA^2 + w*dz^2/(4*alpha) - dPhi^2)]
//
// The radicand is frequently negative for realistic low-flow inputs;
// the method is then undefined for that input and the estimate carries
// the radicand for diagnosis. It never substitutes another method's
// result.
func invertMcCallum(d PairDifference, props *ThermalProperties, omega float64) Estimate {
	alpha := props.Alpha()
	radicand := d.LogAmpRatio*d.LogAmpRatio +
		omega*d.DeltaZ*d.DeltaZ/(4*alpha) -
		d.PhaseLagTotal*d.PhaseLagTotal

	// Rounding in the conductive/total cancellation can leave a tiny
	// negative residue at zero flow; clamp it so only genuinely
	// negative radicands mark the method undefined.
	if radicand < 0 && radicand > -1e-12 {
		radicand = 0
	}

	if radicand < 0 {
		e := undefined(McCallum, "negative radicand")
		e.Radicand = radicand
		e.LowConfidence = d.LowConfidence

		return e
	}

	v := alpha / d.DeltaZ * (d.LogAmpRatio + math.Sqrt(radicand))

	e := valid(McCallum, v)
	e.Radicand = radicand
	e.LowConfidence = d.LowConfidence

	return e
}

// invertLuce implements Luce et al. (2013), the empirical
// amplitude-only relation:
//
//	v = w*dz / (2*ln(Ar))
//
// with ln(Ar) = dA. Undefined when the amplitudes are equal. The sign
// convention follows the source literature's definition of Ar and has
// not been independently re-verified.
func invertLuce(d PairDifference, omega float64) Estimate {
	if math.Abs(d.LogAmpRatio) < 1e-12 {
		return undefined(Luce, "zero amplitude attenuation")
	}

	return valid(Luce, omega*d.DeltaZ/(2*d.LogAmpRatio))
}
