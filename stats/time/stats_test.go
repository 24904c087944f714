package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ema/dsp/filter/ema"
	"github.com/cwbudde/algo-ema/internal/testutil"
)

func TestCalculateEmpty(t *testing.T) {
	s := Calculate[int32](nil)
	if s != (Stats{}) {
		t.Fatalf("Calculate(nil) = %#v, want zero", s)
	}
}

func TestCalculateBasic(t *testing.T) {
	s := Calculate([]int16{3, -1, 4, -1, 5})

	if s.Length != 5 {
		t.Fatalf("Length = %d, want 5", s.Length)
	}
	if s.Mean != 2 {
		t.Fatalf("Mean = %v, want 2", s.Mean)
	}
	if s.Max != 5 || s.MaxPos != 4 {
		t.Fatalf("Max = %d@%d, want 5@4", s.Max, s.MaxPos)
	}
	if s.Min != -1 || s.MinPos != 1 {
		t.Fatalf("Min = %d@%d, want -1@1", s.Min, s.MinPos)
	}
	if s.Peak != 5 || s.Range != 6 {
		t.Fatalf("Peak = %d Range = %d, want 5 and 6", s.Peak, s.Range)
	}
	// Differences: 4, 5, 5, 6.
	if s.Jitter != 5 {
		t.Fatalf("Jitter = %v, want 5", s.Jitter)
	}
	// Population variance of {3,-1,4,-1,5} around 2: (1+9+4+9+9)/5.
	if math.Abs(s.Variance-6.4) > 1e-12 {
		t.Fatalf("Variance = %v, want 6.4", s.Variance)
	}
	if math.Abs(s.RMS-math.Sqrt(52.0/5)) > 1e-12 {
		t.Fatalf("RMS = %v", s.RMS)
	}
}

func TestNegativePeak(t *testing.T) {
	s := Calculate([]int32{10, -40, 7})
	if s.Peak != 40 {
		t.Fatalf("Peak = %d, want 40", s.Peak)
	}
}

func TestFullScaleInt64(t *testing.T) {
	tests := []struct {
		name      string
		in        []int64
		peak, rng uint64
	}{
		{name: "min_and_zero", in: []int64{math.MinInt64, 0}, peak: 1 << 63, rng: 1 << 63},
		{name: "min_and_max", in: []int64{math.MaxInt64, math.MinInt64}, peak: 1 << 63, rng: math.MaxUint64},
		{name: "max_only", in: []int64{math.MaxInt64}, peak: math.MaxInt64, rng: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Calculate(tt.in)
			if s.Peak != tt.peak || s.Range != tt.rng {
				t.Fatalf("Peak = %d Range = %d, want %d and %d", s.Peak, s.Range, tt.peak, tt.rng)
			}
		})
	}
}

func TestStreamingMatchesCalculate(t *testing.T) {
	sig := testutil.DeterministicNoise[int32](11, 300, 1000)

	want := Calculate(sig)

	s := NewStreamingStats[int32]()
	for i := 0; i < len(sig); i += 77 {
		s.Update(sig[i:min(i+77, len(sig))])
	}

	if got := s.Result(); got != want {
		t.Fatalf("streaming = %#v\nwant %#v", got, want)
	}

	s.Reset()
	if s.Result().Length != 0 {
		t.Fatal("Reset did not clear state")
	}
}

func TestNoiseReductionFromSmoothing(t *testing.T) {
	raw := testutil.DeterministicNoise[int32](5, 64, 4096)
	for i := range raw {
		raw[i] += 512
	}

	smoothed := append([]int32(nil), raw...)
	f := ema.MustNew[int32](4)
	f.ResetTo(512)
	f.ProcessInPlace(smoothed)

	in, out := Calculate(raw), Calculate(smoothed)
	if nr := NoiseReductionDB(in, out); nr < 10 {
		t.Fatalf("noise reduction = %.2f dB, want >= 10", nr)
	}

	if math.Abs(out.Mean-512) > 4 {
		t.Fatalf("smoothed mean = %v, want about 512", out.Mean)
	}
}

func TestNoiseReductionNoJitter(t *testing.T) {
	flat := Calculate(testutil.Constant[int16](3, 10))
	if NoiseReductionDB(flat, flat) != 0 {
		t.Fatal("expected 0 dB for jitter-free input")
	}
}
