// Package harmonic extracts the dominant periodic oscillation from a
// uniformly sampled temperature series.
//
// Streambed heat-tracing works on the diurnal temperature wave: each
// buried sensor records the daily cycle attenuated and delayed by its
// depth. This package recovers the amplitude, phase and mean level of
// that wave per sensor, which downstream flux inversion consumes.
//
// Two estimators are provided and must agree on a clean sinusoid:
//
//   - [Fit] performs least-squares sinusoidal regression
//     a·cos(ωt)+b·sin(ωt)+c at a fixed target frequency.
//   - [Goertzel] evaluates the single DFT bin at the target frequency,
//     which is cheaper for long series and doubles as an independent
//     cross-check.
//
// [Periodogram] and [DominantFrequency] inspect the full spectrum to
// confirm that the diurnal peak actually dominates before fitting.
//
// Phase convention: Features.Phase is the lag θ in
//
//	T(t) = Mean + Amplitude·cos(ωt − θ)
//
// so a deeper sensor, whose wave arrives later, carries the larger
// phase (modulo 2π).
package harmonic
