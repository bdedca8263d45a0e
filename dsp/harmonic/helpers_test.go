package harmonic

import "math/rand"

// deterministicNoise generates seeded white noise in [-amplitude, amplitude].
func deterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
