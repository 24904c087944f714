package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ema/dsp/core"
	"github.com/cwbudde/algo-ema/dsp/filter/ema"
	timestats "github.com/cwbudde/algo-ema/stats/time"
)

var errOutOfRange = errors.New("sample outside declared input range")

func (a *app) filterCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "filter [file]",
		Short: "Smooth a stream of integers read from a file or stdin",
		Long: "Reads whitespace-separated integers, filters them in order and writes\n" +
			"one smoothed integer per line to stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: a.filterFunc,
	}

	flags := c.Flags()
	addShiftFlag(flags)
	addTypeFlags(flags, 0, "(0 uses the widest the type and shift allow)")
	flags.Int(BlockSizeKey, core.DefaultProcessorConfig().BlockSize, "Samples filtered per block")
	flags.Bool(ResetToFirstKey, false, "Start settled at the first sample instead of at zero")
	flags.Bool(StatsKey, false, "Print input/output statistics to stderr")
	return c
}

type filterConfig struct {
	typeConfig
	Shift        uint
	ResetToFirst bool
	Stats        bool
}

type filterSummary struct {
	In  timestats.Stats
	Out timestats.Stats
}

func (a *app) filterFunc(c *cobra.Command, args []string) error {
	v, err := newViper(c.Flags())
	if err != nil {
		return err
	}

	tc, err := parseTypeConfig(v)
	if err != nil {
		return err
	}

	cfg := filterConfig{
		typeConfig:   tc,
		Shift:        v.GetUint(ShiftKey),
		ResetToFirst: v.GetBool(ResetToFirstKey),
		Stats:        v.GetBool(StatsKey),
	}

	in := c.InOrStdin()
	source := "stdin"
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		in = file
		source = args[0]
	}

	a.log.Debug("filtering stream",
		zap.String("source", source),
		zap.Uint("shift", cfg.Shift),
		zap.String("type", cfg.Type),
		zap.Int("blockSize", cfg.Processor.BlockSize),
	)

	var summary filterSummary
	switch cfg.Type {
	case "int16":
		summary, err = runFilter[int16](in, c.OutOrStdout(), cfg)
	case "int64":
		summary, err = runFilter[int64](in, c.OutOrStdout(), cfg)
	default:
		summary, err = runFilter[int32](in, c.OutOrStdout(), cfg)
	}
	if err != nil {
		return err
	}

	a.log.Info("filtered stream",
		zap.String("source", source),
		zap.Int("samples", summary.In.Length),
		zap.Float64("noiseReductionDB", timestats.NoiseReductionDB(summary.In, summary.Out)),
	)

	if cfg.Stats {
		return printSummary(c.ErrOrStderr(), summary)
	}
	return nil
}

// runFilter streams whitespace-separated integers from r through one filter
// and writes the results to w, one per line.
func runFilter[T core.Signed](r io.Reader, w io.Writer, cfg filterConfig) (filterSummary, error) {
	var opts []ema.Option
	if cfg.InputBits > 0 {
		opts = append(opts, ema.WithInputBits(cfg.InputBits))
	}

	f, err := ema.New[T](cfg.Shift, opts...)
	if err != nil {
		return filterSummary{}, err
	}

	inputBits := cfg.InputBits
	if inputBits == 0 {
		inputBits = f.MaxInputBits()
	}

	var (
		inStats  timestats.StreamingStats[T]
		outStats timestats.StreamingStats[T]
		first    = true
		line     = 0
	)

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	out := bufio.NewWriter(w)
	block := make([]T, 0, cfg.Processor.BlockSize)
	buf := make([]byte, 0, 24)

	flush := func() error {
		inStats.Update(block)
		f.ProcessInPlace(block)
		outStats.Update(block)

		for _, y := range block {
			buf = strconv.AppendInt(buf[:0], int64(y), 10)
			buf = append(buf, '\n')
			if _, err := out.Write(buf); err != nil {
				return err
			}
		}

		block = block[:0]
		return nil
	}

	for scanner.Scan() {
		line++

		x, err := parseSample[T](scanner.Text(), inputBits)
		if err != nil {
			return filterSummary{}, fmt.Errorf("token %d: %w", line, err)
		}

		if first && cfg.ResetToFirst {
			f.ResetTo(x)
		}
		first = false

		block = append(block, x)
		if len(block) == cap(block) {
			if err := flush(); err != nil {
				return filterSummary{}, err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return filterSummary{}, fmt.Errorf("reading input: %w", err)
	}

	if err := flush(); err != nil {
		return filterSummary{}, err
	}

	if err := out.Flush(); err != nil {
		return filterSummary{}, err
	}

	return filterSummary{In: inStats.Result(), Out: outStats.Result()}, nil
}

func parseSample[T core.Signed](tok string, inputBits uint) (T, error) {
	x, err := strconv.ParseInt(tok, 10, int(core.BitWidth[T]()))
	if err != nil {
		return 0, err
	}

	if core.BitsFor(x) > inputBits {
		return 0, fmt.Errorf("%w: %d needs %d bits, limit %d", errOutOfRange, x, core.BitsFor(x), inputBits)
	}

	return T(x), nil
}

func printSummary(w io.Writer, s filterSummary) error {
	_, err := fmt.Fprintf(w,
		"samples=%d in(mean=%.2f std=%.2f jitter=%.2f) out(mean=%.2f std=%.2f jitter=%.2f) noise reduction=%.2f dB\n",
		s.In.Length,
		s.In.Mean, s.In.StdDev, s.In.Jitter,
		s.Out.Mean, s.Out.StdDev, s.Out.Jitter,
		timestats.NoiseReductionDB(s.In, s.Out),
	)
	return err
}
