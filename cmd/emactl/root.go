package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state shared by subcommands.
type app struct {
	log *zap.Logger
}

// newRootCommand builds the command tree. A nil logger is replaced by a
// production logger writing to stderr once flags are parsed.
func newRootCommand(log *zap.Logger) *cobra.Command {
	a := &app{log: log}

	root := &cobra.Command{
		Use:           "emactl",
		Short:         "Inspect and run fixed-point exponential moving average filters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			if a.log != nil {
				return nil
			}

			verbose, err := c.Flags().GetBool(VerboseKey)
			if err != nil {
				return err
			}

			a.log, err = newLogger(verbose)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().BoolP(VerboseKey, "v", false, "Enable debug logging")

	root.AddCommand(
		a.infoCommand(),
		a.filterCommand(),
		a.responseCommand(),
	)

	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Encoding = "console"

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}
