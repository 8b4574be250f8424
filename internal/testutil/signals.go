// Package testutil provides deterministic test signals and tolerance checks
// shared by the convolution tests.
package testutil

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-fastconv/dsp/core"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// from a PCG source seeded with seed.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(seed, 0))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DecayingNoise generates noise with an exponential envelope that falls by
// 60 dB over length samples, a rough stand-in for a room impulse response.
func DecayingNoise(seed uint64, length int) []float64 {
	out := DeterministicNoise(seed, 1, length)
	if length == 0 {
		return out
	}
	rate := math.Log(1000) / float64(length)
	for i := range out {
		out[i] *= math.Exp(-rate * float64(i))
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// As converts a float64 test signal to sample type F.
func As[F core.Float](src []float64) []F {
	out := make([]F, len(src))
	core.Narrow(out, src)
	return out
}
