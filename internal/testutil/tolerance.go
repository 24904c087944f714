package testutil

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-ema/dsp/core"
)

// RequireSliceEqual fails t unless got and want are identical.
func RequireSliceEqual[T comparable](t *testing.T, got, want []T) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// RequireMonotonic fails t if data ever moves against dir (+1 for
// non-decreasing, -1 for non-increasing).
func RequireMonotonic[T core.Signed](t *testing.T, data []T, dir int) {
	t.Helper()
	for i := 1; i < len(data); i++ {
		if (dir > 0 && data[i] < data[i-1]) || (dir < 0 && data[i] > data[i-1]) {
			t.Fatalf("index %d: %v after %v breaks monotonicity", i, data[i], data[i-1])
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two integer slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff[T core.Signed](a, b []T) (int64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	var maxDiff int64
	for i := range a {
		d := int64(a[i]) - int64(b[i])
		if d < 0 {
			d = -d
		}
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
