package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ema/dsp/core"
)

// Constant generates n copies of value.
func Constant[T core.Signed](value T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Step generates zeros followed by value from index at onwards.
func Step[T core.Signed](value T, at, n int) []T {
	out := make([]T, n)
	for i := max(at, 0); i < n; i++ {
		out[i] = value
	}
	return out
}

// Impulse generates a single sample of value at the given position.
func Impulse[T core.Signed](value T, length, pos int) []T {
	out := make([]T, length)
	if pos >= 0 && pos < length {
		out[pos] = value
	}
	return out
}

// QuantizedSine generates offset + round(amplitude·sin(2πft)), the way an ADC
// would report a biased sine.
func QuantizedSine[T core.Signed](freqHz, sampleRate float64, amplitude, offset T, length int) []T {
	out := make([]T, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = offset + T(math.Round(float64(amplitude)*math.Sin(step*float64(i))))
	}
	return out
}

// DeterministicNoise generates uniform integer noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise[T core.Signed](seed int64, amplitude T, length int) []T {
	out := make([]T, length)
	rng := rand.New(rand.NewSource(seed))
	span := 2*int64(amplitude) + 1
	for i := range out {
		out[i] = T(rng.Int63n(span) - int64(amplitude))
	}
	return out
}
