// Package time computes time-domain statistics over integer sample streams,
// such as the raw and smoothed outputs of a fixed-point filter.
package time

import (
	"math"

	"github.com/cwbudde/algo-ema/dsp/core"
)

// Stats holds time-domain statistics of an integer signal.
type Stats struct {
	Length   int
	Mean     float64
	RMS      float64
	Max      int64
	MaxPos   int
	Min      int64
	MinPos   int
	Peak     uint64 // max(|max|, |min|)
	Range    uint64 // max - min
	Variance float64
	StdDev   float64
	// Jitter is the mean absolute difference between consecutive samples.
	// It tracks sample-to-sample noise independently of slow trends.
	Jitter float64
}

// Calculate computes all statistics in a single pass.
func Calculate[T core.Signed](signal []T) Stats {
	var s StreamingStats[T]
	s.Update(signal)
	return s.Result()
}

// NoiseReductionDB returns how much sample-to-sample jitter dropped from in
// to out, in dB. Positive values mean out is smoother. Returns +Inf when out
// has no jitter and in does, and 0 when neither has any.
func NoiseReductionDB(in, out Stats) float64 {
	if in.Jitter == 0 {
		return 0
	}

	return -core.LinearToDB(out.Jitter / in.Jitter)
}

// StreamingStats accumulates statistics incrementally across blocks of
// samples. Results are identical to [Calculate] over the concatenated blocks.
type StreamingStats[T core.Signed] struct {
	n         int
	mean      float64
	m2        float64
	sumSq     float64
	sumJitter float64
	maxVal    int64
	maxPos    int
	minVal    int64
	minPos    int
	last      int64
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats[T core.Signed]() *StreamingStats[T] {
	return &StreamingStats[T]{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats[T]) Update(samples []T) {
	for _, v := range samples {
		x := int64(v)
		s.n++

		// Welford update.
		xf := float64(x)
		delta := xf - s.mean
		s.mean += delta / float64(s.n)
		s.m2 += delta * (xf - s.mean)

		s.sumSq += xf * xf

		if s.n == 1 {
			s.maxVal, s.maxPos = x, 0
			s.minVal, s.minPos = x, 0
		} else {
			if x > s.maxVal {
				s.maxVal, s.maxPos = x, s.n-1
			}

			if x < s.minVal {
				s.minVal, s.minPos = x, s.n-1
			}

			s.sumJitter += math.Abs(xf - float64(s.last))
		}

		s.last = x
	}
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats[T]) Result() Stats {
	if s.n == 0 {
		return Stats{}
	}

	nf := float64(s.n)
	variance := s.m2 / nf

	peak := max(magnitude(s.maxVal), magnitude(s.minVal))

	var jitter float64
	if s.n > 1 {
		jitter = s.sumJitter / float64(s.n-1)
	}

	return Stats{
		Length:   s.n,
		Mean:     s.mean,
		RMS:      math.Sqrt(s.sumSq / nf),
		Max:      s.maxVal,
		MaxPos:   s.maxPos,
		Min:      s.minVal,
		MinPos:   s.minPos,
		Peak:     peak,
		Range:    uint64(s.maxVal) - uint64(s.minVal),
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Jitter:   jitter,
	}
}

// magnitude returns |v|, which for math.MinInt64 only fits unsigned.
func magnitude(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}

	return uint64(v)
}

// Reset clears all accumulated data, allowing the StreamingStats to be reused.
func (s *StreamingStats[T]) Reset() {
	*s = StreamingStats[T]{}
}
