package ema

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-ema/dsp/core"
)

// Alpha returns the smoothing factor α = 2^-shift.
func Alpha(shift uint) float64 {
	return math.Ldexp(1, -int(shift))
}

// Pole returns the pole location 1 - 2^-shift of the transfer function.
func Pole(shift uint) float64 {
	return 1 - Alpha(shift)
}

// Response computes the complex frequency response
// H(e^jw) = α / (1 - (1-α)e^-jw) at freqHz for the given sample rate.
// It describes the ideal filter; the fixed-point implementation matches it up
// to output quantization.
func Response(shift uint, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	a := Alpha(shift)
	den := 1 - complex(1-a, 0)*cmplx.Exp(complex(0, -w))

	return complex(a, 0) / den
}

// MagnitudeDB returns 20*log10(|H(f)|).
func MagnitudeDB(shift uint, freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(Response(shift, freqHz, sampleRate)))
}

// CutoffHz returns the -3 dB frequency of the ideal filter. For small shifts
// the magnitude never falls to -3 dB below Nyquist; Nyquist is returned then.
func CutoffHz(shift uint, sampleRate float64) float64 {
	a := Alpha(shift)
	arg := 1 - a*a/(2*(1-a))

	if shift == 0 || arg < -1 {
		return sampleRate / 2
	}

	return sampleRate / (2 * math.Pi) * math.Acos(core.Clamp(arg, -1, 1))
}

// TimeConstant returns the number of samples for the step error to decay
// by a factor of e.
func TimeConstant(shift uint) float64 {
	if shift == 0 {
		return 0
	}

	return -1 / math.Log1p(-Alpha(shift))
}

// SettlingSamples returns an upper bound on the number of calls a zero-state
// filter needs before its output equals a constant input amplitude exactly.
//
// The prediction error e shrinks to at most e(1-α)+1 per call, so from
// e0 = |amplitude|·2^(2K) it drops below the rounding threshold
// D = 2^(2K-1) - 2^K + 1 within ceil(ln(e0/D) / -ln(1-α)) calls.
func SettlingSamples(shift uint, amplitude int64) int {
	if amplitude == 0 || shift == 0 {
		return 0
	}

	mag := math.Abs(float64(amplitude))
	e0 := math.Ldexp(mag, 2*int(shift))
	d := math.Ldexp(1, 2*int(shift)-1) - math.Ldexp(1, int(shift)) + 1

	n := math.Ceil(math.Log(e0/d) / -math.Log1p(-Alpha(shift)))

	return max(1, int(n))
}

// RequiredBits returns M+1+2K, the minimum sample type width for inputs of
// inputBits magnitude bits.
func RequiredBits(shift, inputBits uint) uint {
	return inputBits + 1 + 2*shift
}

// MaxInputBits returns the widest input magnitude, in bits, that T can
// filter with the given shift. It returns 0 when the shift leaves no room.
func MaxInputBits[T core.Signed](shift uint) uint {
	width := core.BitWidth[T]()
	if RequiredBits(shift, 0) >= width {
		return 0
	}

	return width - RequiredBits(shift, 0)
}
