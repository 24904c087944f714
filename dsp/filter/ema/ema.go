package ema

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ema/dsp/core"
)

var (
	// ErrInvalidShift is returned when K is zero or leaves no room in the
	// sample type for even a one-bit input.
	ErrInvalidShift = errors.New("ema: invalid shift")
	// ErrTypeTooNarrow is returned by [WithInputBits] validation when the
	// sample type cannot hold M+1+2K bits.
	ErrTypeTooNarrow = errors.New("ema: sample type too narrow")
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	inputBits uint
}

// WithInputBits declares the bit width M of the largest input magnitude
// (10 for a 10-bit ADC). New then verifies that the sample type holds
// M+1+2K bits. The check runs once; Filter itself stays unchecked.
func WithInputBits(m uint) Option {
	return func(cfg *config) error {
		if m == 0 {
			return fmt.Errorf("ema: input bits must be > 0")
		}

		cfg.inputBits = m

		return nil
	}
}

// Filter is a fixed-point exponential moving average over samples of type T.
//
// The zero value is not usable; construct with [New] or [MustNew].
type Filter[T core.Signed] struct {
	shift       uint
	scaleShift  uint
	half        T
	accumulator T
}

// New creates a filter with pole location α = 2^-shift and zero state.
func New[T core.Signed](shift uint, opts ...Option) (*Filter[T], error) {
	width := core.BitWidth[T]()
	if shift == 0 || RequiredBits(shift, 1) > width {
		return nil, fmt.Errorf("%w: %d for %d-bit samples", ErrInvalidShift, shift, width)
	}

	var cfg config
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.inputBits > 0 {
		if need := RequiredBits(shift, cfg.inputBits); need > width {
			return nil, fmt.Errorf("%w: %d-bit input with shift %d needs %d bits, have %d",
				ErrTypeTooNarrow, cfg.inputBits, shift, need, width)
		}
	}

	return &Filter[T]{
		shift:      shift,
		scaleShift: 2 * shift,
		half:       T(1) << (2*shift - 1),
	}, nil
}

// MustNew is like [New] but panics on configuration errors. It suits
// package-level filters owned by a sampling loop.
func MustNew[T core.Signed](shift uint, opts ...Option) *Filter[T] {
	f, err := New[T](shift, opts...)
	if err != nil {
		panic(err)
	}

	return f
}

// Filter consumes one raw sample and returns the new smoothed sample.
//
// input<<2K plus the current state must fit in T; see the package
// documentation for the width rule.
func (f *Filter[T]) Filter(input T) T {
	scaled := input << f.scaleShift
	difference := scaled - f.accumulator

	if debugChecks {
		f.checkUpdate(input, scaled, difference)
	}

	f.accumulator += difference >> f.shift

	return (f.accumulator + f.half) >> f.scaleShift
}

// ProcessInPlace filters buf sample by sample, replacing each raw value
// with its smoothed value.
func (f *Filter[T]) ProcessInPlace(buf []T) {
	for i, x := range buf {
		buf[i] = f.Filter(x)
	}
}

// Process filters src into dst and returns the number of samples written,
// which is the shorter of the two lengths.
func (f *Filter[T]) Process(dst, src []T) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = f.Filter(src[i])
	}

	return n
}

// Output returns the current smoothed value without consuming a sample.
func (f *Filter[T]) Output() T {
	return (f.accumulator + f.half) >> f.scaleShift
}

// Reset returns the filter to its freshly constructed zero state.
func (f *Filter[T]) Reset() {
	f.accumulator = 0
}

// ResetTo puts the filter in the settled state for a constant input of
// value, so the next outputs start at value instead of ramping up from zero.
func (f *Filter[T]) ResetTo(value T) {
	f.accumulator = value << f.scaleShift
}

// State returns the raw accumulator, scaled by 2^(2K).
func (f *Filter[T]) State() T {
	return f.accumulator
}

// SetState restores an accumulator previously returned by [Filter.State].
func (f *Filter[T]) SetState(accumulator T) {
	f.accumulator = accumulator
}

// Shift returns K.
func (f *Filter[T]) Shift() uint {
	return f.shift
}

// MaxInputBits returns the widest input magnitude the filter accepts
// without overflowing its sample type.
func (f *Filter[T]) MaxInputBits() uint {
	return MaxInputBits[T](f.shift)
}

// Alpha returns the smoothing factor 2^-K.
func (f *Filter[T]) Alpha() float64 {
	return Alpha(f.shift)
}
