//go:build emadebug

package ema

import "fmt"

const debugChecks = true

// checkUpdate panics when scaling the input or forming the prediction error
// wrapped around the sample type.
func (f *Filter[T]) checkUpdate(input, scaled, difference T) {
	if scaled>>f.scaleShift != input {
		panic(fmt.Sprintf("ema: input %d overflows when scaled by 2^%d", input, f.scaleShift))
	}

	// scaled - accumulator wrapped iff the operands have different signs and
	// the result's sign differs from scaled.
	if (scaled < 0) != (f.accumulator < 0) && (difference < 0) != (scaled < 0) {
		panic(fmt.Sprintf("ema: prediction error overflows for input %d (state %d)", input, f.accumulator))
	}
}
