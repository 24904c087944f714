// Command emactl inspects and runs fixed-point EMA filters.
//
// Usage:
//
//	emactl info [flags] [K ...]
//	emactl filter [flags] [file]
//	emactl response [flags]
//
// Every flag can also be set through an EMA_ environment variable, for
// example EMA_SHIFT=5 or EMA_SAMPLE_RATE=2000.
//
// Examples:
//
//	emactl info --type int16 --input-bits 7
//	emactl filter --shift 4 --type int32 --stats samples.txt
//	seq 0 100 | emactl filter --shift 3 --reset-to-first
//	emactl response --shift 6 --type int64 --fft-size 8192
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(nil).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "emactl: %v\n", err)
		os.Exit(1)
	}
}
