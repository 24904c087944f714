package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ema/dsp/core"
	"github.com/cwbudde/algo-ema/dsp/filter/ema"
	"github.com/cwbudde/algo-ema/measure/response"
)

const defaultFFTSize = 4096

func (a *app) responseCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "response",
		Short: "Measure the fixed-point magnitude response against the ideal EMA",
		Args:  cobra.NoArgs,
		RunE:  a.responseFunc,
	}

	flags := c.Flags()
	addShiftFlag(flags)
	addTypeFlags(flags, 0, "(0 uses the widest the type and shift allow)")
	flags.Int(FFTSizeKey, defaultFFTSize, "Impulse response length and FFT size (power of two)")
	flags.Int64(AmplitudeKey, 0, "Test impulse height (0 picks the largest the type allows)")
	return c
}

func (a *app) responseFunc(c *cobra.Command, _ []string) error {
	v, err := newViper(c.Flags())
	if err != nil {
		return err
	}

	cfg, err := parseTypeConfig(v)
	if err != nil {
		return err
	}

	shift := v.GetUint(ShiftKey)
	amplitude := v.GetInt64(AmplitudeKey)

	opts := []response.Option{
		response.WithFFTSize(v.GetInt(FFTSizeKey)),
		response.WithSampleRate(cfg.Processor.SampleRate),
	}
	if amplitude != 0 {
		opts = append(opts, response.WithAmplitude(amplitude))
	}

	a.log.Debug("measuring response",
		zap.Uint("shift", shift),
		zap.String("type", cfg.Type),
		zap.Int64("amplitude", amplitude),
	)

	var res response.Result
	switch cfg.Type {
	case "int16":
		res, err = measure[int16](shift, cfg.InputBits, opts)
	case "int64":
		res, err = measure[int64](shift, cfg.InputBits, opts)
	default:
		res, err = measure[int32](shift, cfg.InputBits, opts)
	}
	if err != nil {
		return err
	}

	ideal := func(hz float64) float64 {
		return ema.MagnitudeDB(shift, hz, res.SampleRate)
	}
	dev := response.Compare(res, ideal, res.SampleRate/2)

	a.log.Info("measured response",
		zap.Int64("amplitude", res.Amplitude),
		zap.Float64("cutoffHz", res.CutoffHz),
		zap.Float64("maxDeviationDB", dev.MaxDB),
	)

	return printResponse(c.OutOrStdout(), shift, res, dev, ideal)
}

func measure[T core.Signed](shift, inputBits uint, opts []response.Option) (response.Result, error) {
	var filterOpts []ema.Option
	if inputBits > 0 {
		filterOpts = append(filterOpts, ema.WithInputBits(inputBits))
	}

	f, err := ema.New[T](shift, filterOpts...)
	if err != nil {
		return response.Result{}, err
	}
	return response.Measure[T](f, opts...)
}

func printResponse(w io.Writer, shift uint, res response.Result, dev response.Deviation, ideal func(float64) float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Freq [Hz]\tMeasured [dB]\tIdeal [dB]\tError [dB]\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	// Octave-spaced bins from the first non-DC bin up to Nyquist.
	for k := 1; k < len(res.Frequencies); k *= 2 {
		hz := res.Frequencies[k]
		want := ideal(hz)
		if _, err := fmt.Fprintf(tw, "%.4f\t%.4f\t%.4f\t%+.4f\n", hz, res.MagnitudeDB[k], want, res.MagnitudeDB[k]-want); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\ncutoff: measured %.4f Hz, ideal %.4f Hz\nmax deviation: %.4f dB at %.4f Hz (amplitude %d)\n",
		res.CutoffHz, ema.CutoffHz(shift, res.SampleRate), dev.MaxDB, dev.MaxHz, res.Amplitude)
	return err
}
