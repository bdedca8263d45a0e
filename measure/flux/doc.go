// Package flux estimates vertical water exchange between a stream and
// its underlying aquifer from paired streambed temperature records.
//
// A diurnal temperature wave propagating down through saturated
// sediment is attenuated and delayed; downward-moving pore water
// steepens the attenuation and adds an advective delay on top of the
// conductive one. Given the harmonic features of two sensors at known
// depths, the package computes the two sufficient statistics
//
//	dA   = ln(A_shallow/A_deep)
//	dPhi = phase_deep − phase_shallow   (unwrapped)
//
// and inverts them to a vertical Darcy velocity with five published
// closed-form methods: Hatch amplitude, Hatch phase, Keery, McCallum
// and Luce. Positive velocity means downward infiltration.
//
// Every phase-based method separates the measured lag into its
// conductive part sqrt(w*dz^2/(4*alpha)), present with zero flow, and
// the advective remainder before converting phase to velocity. A method
// whose mathematical precondition fails for an input (negative radicand,
// zero denominator) reports an Estimate with Valid=false and diagnostic
// fields; it never falls back to another method's answer.
//
// The [Analyzer] runs the full pipeline over a sensor profile: harmonic
// extraction per sensor, differencing per pair, all selected methods per
// pair, and cross-method dispersion statistics over the valid estimates.
package flux
