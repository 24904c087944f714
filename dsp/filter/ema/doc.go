// Package ema provides a fixed-point single-pole IIR low-pass filter, also
// known as an exponential moving average, for integer sample streams.
//
// The filter implements the difference equation
//
//	y[n] = α·x[n] + (1-α)·y[n-1],  α = 2^-K
//
// using only shifts and additions. Choosing a power-of-two pole location turns
// the multiply of a generic IIR section into a single arithmetic right shift,
// so no division or floating point is needed anywhere in the sample path.
//
// The state is kept with 2K fractional bits: the accumulator holds the output
// scaled by 2^(2K). Each call
//
//  1. scales the input by 2^(2K),
//  2. adds (scaled - accumulator) >> K to the accumulator,
//  3. returns (accumulator + 2^(2K-1)) >> 2K, i.e. the state rounded to the
//     nearest integer.
//
// # Choosing K and the sample type
//
// K sets the cutoff: larger K smooths harder and settles slower (see
// [CutoffHz], [TimeConstant] and [SettlingSamples]). The sample type T must be
// at least M+1+2K bits wide, where M is the bit width of the largest input
// magnitude; a 10-bit ADC filtered with K=5 needs 10+1+10 = 21 bits, so int32.
//
// Overflow is a caller precondition. Filter does not check it: a sample type
// that is too narrow produces silently wrapped output. Use [WithInputBits] to
// validate the width once at construction, and build with the emadebug tag to
// enable per-sample wrap assertions while developing.
//
// # Concurrency
//
// A Filter is not safe for concurrent use. Confine each instance to a single
// goroutine (one per sample stream) or guard it externally. Filter never
// blocks, allocates, or performs I/O.
package ema
