package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	"bikeshare/internal/logger"
	"bikeshare/internal/report"
)

// options holds the global flags shared by every subcommand.
type options struct {
	debug      bool   // --debug: enable debug logging
	noColor    bool   // --no-color: plain output even on a terminal
	configPath string // --config/-c: optional YAML config
	statePath  string // --state: JSON file remembering selections and downloads
}

// NewRootCmd builds the `bikeshare` command tree. Running it without a
// subcommand starts the interactive explorer.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "bikeshare",
		Short: "Explore US bikeshare trip data",
		Long: `bikeshare asks for a city and optional month and day filters, then prints
the most common travel times, the most popular stations, trip duration
totals and user demographics for the matching trips.`,
		SilenceUsage: true,

		// PersistentPreRun is a hook that runs before any subcommand.
		// Here, we initialize the logger based on the debug flag.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(opts.debug, opts.noColor || !isTerminal(os.Stderr))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config.yaml", "Path to configuration file (optional)")
	rootCmd.PersistentFlags().StringVar(&opts.statePath, "state", "state.json", "Path to the state file")

	rootCmd.AddCommand(newExploreCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))
	rootCmd.AddCommand(newCitiesCmd(opts))
	rootCmd.AddCommand(newFetchCmd(opts))

	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure.
// Cobra has already printed the error by the time it is returned.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newReport creates a report on the command's output, colored only when
// that output is a terminal and --no-color is not set.
func newReport(cmd *cobra.Command, opts *options) *report.Report {
	out := cmd.OutOrStdout()
	return report.New(out, !opts.noColor && isTerminal(out))
}

// loadConfig reads the config and builds a dataset loader from it.
func loadConfig(opts *options) (config.Config, *dataset.Loader, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	loader, err := dataset.NewLoader(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, loader, nil
}
