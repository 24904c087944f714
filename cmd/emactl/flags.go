package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-ema/dsp/core"
)

const (
	VerboseKey      = "verbose"
	ShiftKey        = "shift"
	TypeKey         = "type"
	InputBitsKey    = "input-bits"
	SampleRateKey   = "sample-rate"
	BlockSizeKey    = "block-size"
	ResetToFirstKey = "reset-to-first"
	StatsKey        = "stats"
	FFTSizeKey      = "fft-size"
	AmplitudeKey    = "amplitude"

	envPrefix = "EMA"
)

var sampleTypes = []string{"int16", "int32", "int64"}

func addTypeFlags(flags *pflag.FlagSet, defInputBits uint, inputBitsUsage string) {
	def := core.DefaultProcessorConfig()

	flags.String(TypeKey, "int32", "Sample type: "+strings.Join(sampleTypes, ", "))
	flags.Uint(InputBitsKey, defInputBits, "Magnitude bits of the largest input "+inputBitsUsage)
	flags.Float64(SampleRateKey, def.SampleRate, "Sample rate in Hz used for frequency reporting")
}

func addShiftFlag(flags *pflag.FlagSet) {
	flags.Uint(ShiftKey, 4, "Shift K; the filter pole is at 1-2^-K")
}

// newViper binds flags so that each one can also come from EMA_<NAME>.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	return v, nil
}

// typeConfig holds the settings shared by all subcommands.
type typeConfig struct {
	Type      string
	InputBits uint
	Processor core.ProcessorConfig
}

func parseTypeConfig(v *viper.Viper) (typeConfig, error) {
	typ := strings.ToLower(strings.TrimSpace(v.GetString(TypeKey)))
	if !validType(typ) {
		return typeConfig{}, fmt.Errorf("unknown sample type %q (want one of %s)", typ, strings.Join(sampleTypes, ", "))
	}

	sampleRate := v.GetFloat64(SampleRateKey)
	if sampleRate <= 0 {
		return typeConfig{}, fmt.Errorf("sample rate must be positive: %v", sampleRate)
	}

	return typeConfig{
		Type:      typ,
		InputBits: v.GetUint(InputBitsKey),
		Processor: core.ApplyProcessorOptions(
			core.WithSampleRate(sampleRate),
			core.WithBlockSize(v.GetInt(BlockSizeKey)),
		),
	}, nil
}

func validType(typ string) bool {
	for _, t := range sampleTypes {
		if t == typ {
			return true
		}
	}
	return false
}
