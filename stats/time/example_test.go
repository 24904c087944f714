package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-ema/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]int32{510, 514, 509, 515})
	fmt.Printf("mean=%.1f range=%d jitter=%.2f\n", s.Mean, s.Range, s.Jitter)

	// Output:
	// mean=512.0 range=6 jitter=5.00
}

func ExampleStreamingStats() {
	s := timestats.NewStreamingStats[int16]()
	s.Update([]int16{1, -1})
	s.Update([]int16{1, -1})
	m := s.Result()
	fmt.Printf("len=%d mean=%.1f peak=%d\n", m.Length, m.Mean, m.Peak)

	// Output:
	// len=4 mean=0.0 peak=1
}
