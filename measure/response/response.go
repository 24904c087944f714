package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ema/dsp/core"
)

const (
	defaultFFTSize   = 4096
	defaultAmplitude = 1 << 10
	minFFTSize       = 16

	// Adjacent bins closer than this are treated as flat when interpolating.
	flatEps = 1e-12
)

// Errors returned by Measure.
var (
	ErrNilSampler        = errors.New("response: sampler is nil")
	ErrInvalidFFTSize    = errors.New("response: FFT size must be a power of two >= 16")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidAmplitude  = errors.New("response: impulse amplitude must be positive and fit the sample type")
)

// InputWidther is implemented by samplers that know the widest input
// magnitude, in bits, they accept without overflowing. Measure uses it to
// pick and check the impulse amplitude.
type InputWidther interface {
	MaxInputBits() uint
}

// Sampler is a stateful integer filter that can be returned to zero state.
type Sampler[T core.Signed] interface {
	Filter(input T) T
	Reset()
}

// Option mutates measurement configuration.
type Option func(*config) error

type config struct {
	fftSize    int
	sampleRate float64
	amplitude  int64
}

func defaultConfig() config {
	return config{
		fftSize:    defaultFFTSize,
		sampleRate: core.DefaultProcessorConfig().SampleRate,
	}
}

// amplitudeFor returns the largest power of two within inputBits magnitude bits.
func amplitudeFor(inputBits uint) int64 {
	if inputBits == 0 {
		return 1
	}

	return int64(1) << min(inputBits-1, 62)
}

// resolveAmplitude picks the impulse height when none was set and checks it
// against the sampler's input width and the range of T.
func resolveAmplitude[T core.Signed](f Sampler[T], amplitude int64) (int64, error) {
	_, hi := core.MinMax[T]()

	if w, ok := f.(InputWidther); ok {
		bits := w.MaxInputBits()
		if amplitude == 0 {
			amplitude = amplitudeFor(bits)
		}

		if core.BitsFor(amplitude) > bits {
			return 0, fmt.Errorf("%w: %d needs %d bits, sampler accepts %d",
				ErrInvalidAmplitude, amplitude, core.BitsFor(amplitude), bits)
		}
	}

	if amplitude == 0 {
		amplitude = min(defaultAmplitude, hi)
	}

	if amplitude > hi {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrInvalidAmplitude, amplitude, hi)
	}

	return amplitude, nil
}

// WithFFTSize sets the impulse response length and FFT size.
func WithFFTSize(n int) Option {
	return func(cfg *config) error {
		if n < minFFTSize || n&(n-1) != 0 {
			return fmt.Errorf("%w: %d", ErrInvalidFFTSize, n)
		}

		cfg.fftSize = n

		return nil
	}
}

// WithSampleRate sets the sample rate used to label bins in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
		}

		cfg.sampleRate = sampleRate

		return nil
	}
}

// WithAmplitude sets the height of the test impulse. Larger impulses keep
// output quantization small relative to the response, but must still satisfy
// the filter's input width limit. Without it, Measure uses the largest power
// of two an InputWidther sampler accepts, or 1024 for other samplers.
func WithAmplitude(amplitude int64) Option {
	return func(cfg *config) error {
		if amplitude <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidAmplitude, amplitude)
		}

		cfg.amplitude = amplitude

		return nil
	}
}

// Result holds a measured magnitude response over bins 0..FFTSize/2.
//
//nolint:revive
type Result struct {
	FFTSize     int
	SampleRate  float64
	Amplitude   int64
	Impulse     []float64 // normalized impulse response
	Frequencies []float64 // bin centre frequencies in Hz
	Magnitude   []float64 // linear magnitude per bin
	MagnitudeDB []float64
	DCGain_dB   float64
	// CutoffHz is the first frequency where the response falls 3 dB below DC,
	// linearly interpolated between bins. Zero if it never does.
	CutoffHz float64
}

// Measure captures the impulse response of f and returns its spectrum.
// f is reset before and after the measurement.
func Measure[T core.Signed](f Sampler[T], opts ...Option) (Result, error) {
	if f == nil {
		return Result{}, ErrNilSampler
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return Result{}, err
		}
	}

	amplitude, err := resolveAmplitude(f, cfg.amplitude)
	if err != nil {
		return Result{}, err
	}

	n := cfg.fftSize
	scale := 1 / float64(amplitude)

	impulse := make([]float64, n)
	in := make([]complex128, n)
	silent := true

	f.Reset()

	for i := range impulse {
		var x T
		if i == 0 {
			x = T(amplitude)
		}

		impulse[i] = float64(f.Filter(x)) * scale
		in[i] = complex(impulse[i], 0)
		silent = silent && impulse[i] == 0
	}

	f.Reset()

	// A wrapped impulse leaves nothing to measure.
	if silent {
		return Result{}, fmt.Errorf("%w: impulse of %d produced no output", ErrInvalidAmplitude, amplitude)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Result{}, fmt.Errorf("response: fft plan: %w", err)
	}

	spectrum := make([]complex128, n)
	if err := plan.Forward(spectrum, in); err != nil {
		return Result{}, fmt.Errorf("response: forward fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(spectrum[k])
		im[k] = imag(spectrum[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	res := Result{
		FFTSize:     n,
		SampleRate:  cfg.sampleRate,
		Amplitude:   amplitude,
		Impulse:     impulse,
		Frequencies: make([]float64, bins),
		Magnitude:   mag,
		MagnitudeDB: make([]float64, bins),
	}

	binHz := cfg.sampleRate / float64(n)
	for k := range bins {
		res.Frequencies[k] = float64(k) * binHz
		res.MagnitudeDB[k] = core.LinearToDB(mag[k])
	}

	res.DCGain_dB = res.MagnitudeDB[0]
	res.CutoffHz = cutoff(res.Frequencies, res.MagnitudeDB)

	return res, nil
}

// cutoff finds the first -3 dB crossing relative to the DC bin.
func cutoff(freqs, db []float64) float64 {
	target := db[0] - 10*math.Log10(2)

	for k := 1; k < len(db); k++ {
		if db[k] >= target {
			continue
		}

		d0, d1 := db[k-1], db[k]
		if math.IsInf(d1, -1) || core.NearlyEqual(d0, d1, flatEps) {
			return freqs[k]
		}

		return freqs[k-1] + (target-d0)/(d1-d0)*(freqs[k]-freqs[k-1])
	}

	return 0
}

// Deviation summarizes how far a measurement strays from a reference.
type Deviation struct {
	MaxDB  float64
	MeanDB float64
	MaxHz  float64 // frequency of the largest deviation
	Bins   int
}

// Compare evaluates |measured - reference| in dB for every bin up to maxHz.
func Compare(res Result, reference func(freqHz float64) float64, maxHz float64) Deviation {
	var dev Deviation
	sum := 0.0

	for k, hz := range res.Frequencies {
		if hz > maxHz {
			break
		}

		d := math.Abs(res.MagnitudeDB[k] - reference(hz))
		if d > dev.MaxDB {
			dev.MaxDB = d
			dev.MaxHz = hz
		}

		sum += d
		dev.Bins++
	}

	if dev.Bins > 0 {
		dev.MeanDB = sum / float64(dev.Bins)
	}

	return dev
}
