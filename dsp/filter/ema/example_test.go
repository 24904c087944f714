package ema_test

import (
	"fmt"

	"github.com/cwbudde/algo-ema/dsp/filter/ema"
)

func ExampleNew() {
	// 10-bit ADC readings, K = 4: 10 + 1 + 8 = 19 bits, so int32.
	f, err := ema.New[int32](4, ema.WithInputBits(10))
	if err != nil {
		panic(err)
	}

	for range 5 {
		fmt.Print(f.Filter(100), " ")
	}
	fmt.Println()

	// Output:
	// 6 12 18 23 28
}

func ExampleFilter_ResetTo() {
	f := ema.MustNew[int32](5)

	// Start settled at the first reading instead of ramping up from zero.
	f.ResetTo(512)
	fmt.Println(f.Filter(512), f.Filter(520), f.Filter(520))

	// Output:
	// 512 512 512
}

func ExampleCutoffHz() {
	const sampleRate = 1000.0

	for _, k := range []uint{2, 4, 6} {
		fmt.Printf("K=%d fc=%.3f Hz settle=%d\n", k, ema.CutoffHz(k, sampleRate), ema.SettlingSamples(k, 1023))
	}

	// Output:
	// K=2 fc=46.105 Hz settle=29
	// K=4 fc=10.275 Hz settle=121
	// K=6 fc=2.506 Hz settle=487
}
