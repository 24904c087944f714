package ema

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Inputs stay within 20 magnitude bits and K within 12, so int64 always
// satisfies the M+1+2K width rule.
const (
	propMaxShift = 12
	propMaxInput = 1 << 20
)

func filterProperties() *gopter.Properties {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200

	properties := gopter.NewProperties(params)

	properties.Property("identical input sequences give identical outputs", prop.ForAll(
		func(shift uint, in []int64) string {
			a := MustNew[int64](shift)
			b := MustNew[int64](shift)
			for i, x := range in {
				if ya, yb := a.Filter(x), b.Filter(x); ya != yb {
					return fmt.Sprintf("sample %d: %d vs %d", i, ya, yb)
				}
			}
			return ""
		},
		gen.UIntRange(1, propMaxShift),
		gen.SliceOf(gen.Int64Range(-propMaxInput, propMaxInput)),
	))

	properties.Property("constant input settles exactly without overshoot", prop.ForAll(
		func(shift uint, x int64) string {
			f := MustNew[int64](shift)
			bound := SettlingSamples(shift, x)

			var prev int64
			for i := range bound + 16 {
				y := f.Filter(x)
				if x >= 0 && (y < prev || y > x) {
					return fmt.Sprintf("sample %d: %d after %d, target %d", i, y, prev, x)
				}
				if x < 0 && (y > prev || y < x) {
					return fmt.Sprintf("sample %d: %d after %d, target %d", i, y, prev, x)
				}
				if i >= bound-1 && y != x {
					return fmt.Sprintf("sample %d: %d not settled at %d (bound %d)", i, y, x, bound)
				}
				prev = y
			}
			return ""
		},
		gen.UIntRange(1, propMaxShift),
		gen.Int64Range(-propMaxInput, propMaxInput),
	))

	properties.Property("scaled error decays by 1-2^-K per call", prop.ForAll(
		func(shift uint, in []int64) string {
			f := MustNew[int64](shift)
			one := int64(1) << shift
			for i, x := range in {
				scaled := x << (2 * shift)
				before := scaled - f.State()
				f.Filter(x)
				after := scaled - f.State()

				// after = before - floor(before/2^K), so
				// 0 <= after·2^K - before·(2^K-1) <= 2^K-1.
				slack := after*one - before*(one-1)
				if slack < 0 || slack > one-1 {
					return fmt.Sprintf("sample %d: error %d -> %d (slack %d)", i, before, after, slack)
				}
			}
			return ""
		},
		gen.UIntRange(1, propMaxShift),
		gen.SliceOf(gen.Int64Range(-propMaxInput, propMaxInput)),
	))

	properties.Property("settled state holds a constant input", prop.ForAll(
		func(shift uint, x int64) bool {
			f := MustNew[int64](shift)
			f.ResetTo(x)
			for range 32 {
				if f.Filter(x) != x {
					return false
				}
			}
			return f.Output() == x
		},
		gen.UIntRange(1, propMaxShift),
		gen.Int64Range(-propMaxInput, propMaxInput),
	))

	return properties
}

func TestFilterProperties(t *testing.T) {
	filterProperties().TestingRun(t)
}
