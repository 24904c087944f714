package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ema/dsp/core"
	"github.com/cwbudde/algo-ema/dsp/filter/ema"
)

const (
	defaultInfoInputBits = 10
	defaultMaxShift      = 8
)

func (a *app) infoCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "info [K ...]",
		Short: "Print cutoff, settling time and width requirements per shift",
		Long: "Prints, for each shift K (default 1.." + strconv.Itoa(defaultMaxShift) + "), the smoothing\n" +
			"factor, -3 dB cutoff, time constant, settling time for a full-scale\n" +
			"step and whether the sample type satisfies the M+1+2K width rule.",
		RunE: a.infoFunc,
	}
	addTypeFlags(c.Flags(), defaultInfoInputBits, "used for the settling and width columns")
	return c
}

func (a *app) infoFunc(c *cobra.Command, args []string) error {
	v, err := newViper(c.Flags())
	if err != nil {
		return err
	}

	cfg, err := parseTypeConfig(v)
	if err != nil {
		return err
	}

	shifts, err := parseShifts(args)
	if err != nil {
		return err
	}

	width, err := typeWidth(cfg.Type)
	if err != nil {
		return err
	}

	a.log.Debug("printing shift table",
		zap.String("type", cfg.Type),
		zap.Uint("inputBits", cfg.InputBits),
		zap.Float64("sampleRate", cfg.Processor.SampleRate),
		zap.Int("rows", len(shifts)),
	)

	return printInfo(c.OutOrStdout(), shifts, cfg, width)
}

func parseShifts(args []string) ([]uint, error) {
	if len(args) == 0 {
		shifts := make([]uint, defaultMaxShift)
		for i := range shifts {
			shifts[i] = uint(i + 1)
		}
		return shifts, nil
	}

	shifts := make([]uint, 0, len(args))
	for _, arg := range args {
		k, err := strconv.ParseUint(arg, 10, 8)
		if err != nil || k == 0 {
			return nil, fmt.Errorf("invalid shift %q: must be an integer in [1, 255]", arg)
		}
		shifts = append(shifts, uint(k))
	}
	return shifts, nil
}

func typeWidth(typ string) (uint, error) {
	switch typ {
	case "int16":
		return core.BitWidth[int16](), nil
	case "int32":
		return core.BitWidth[int32](), nil
	case "int64":
		return core.BitWidth[int64](), nil
	default:
		return 0, fmt.Errorf("unknown sample type %q", typ)
	}
}

func printInfo(w io.Writer, shifts []uint, cfg typeConfig, width uint) error {
	fullScale := int64(1)<<cfg.InputBits - 1
	if cfg.InputBits == 0 {
		fullScale = 1
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "K\tAlpha\tCutoff [Hz]\tTau [samples]\tSettle [samples]\tNeed [bits]\tMax input [bits]\tFits %s\n", cfg.Type); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, k := range shifts {
		need := ema.RequiredBits(k, cfg.InputBits)
		fits := "yes"
		if need > width {
			fits = "no"
		}

		if _, err := fmt.Fprintf(tw, "%d\t%.6g\t%.4f\t%.2f\t%d\t%d\t%d\t%s\n",
			k,
			ema.Alpha(k),
			ema.CutoffHz(k, cfg.Processor.SampleRate),
			ema.TimeConstant(k),
			ema.SettlingSamples(k, fullScale),
			need,
			maxInputBits(cfg.Type, k),
			fits,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

func maxInputBits(typ string, shift uint) uint {
	switch typ {
	case "int16":
		return ema.MaxInputBits[int16](shift)
	case "int64":
		return ema.MaxInputBits[int64](shift)
	default:
		return ema.MaxInputBits[int32](shift)
	}
}
