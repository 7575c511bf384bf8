package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	"bikeshare/internal/state"
)

func newFetchCmd(opts *options) *cobra.Command {
	var (
		force   bool
		timeout time.Duration
	)

	fetchCmd := &cobra.Command{
		Use:   "fetch [city...]",
		Short: "Download city datasets from their configured URLs",
		Long: `fetch downloads the dataset of every city that has a url in the config
(or only the named cities) into the data directory. Downloads recorded in
the state file are skipped unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			st := state.LoadState(opts.statePath)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			fetcher := &dataset.Fetcher{
				Config: cfg,
				Client: &http.Client{},
				Force:  force,
			}
			results, err := fetcher.Fetch(ctx, args, st)
			if err != nil {
				return err
			}

			state.SaveState(opts.statePath, st)

			failed := 0
			out := cmd.OutOrStdout()
			for _, res := range results {
				switch {
				case res.Err != nil:
					failed++
					fmt.Fprintf(out, "%-15s failed: %v\n", res.City, res.Err)
				case res.Skipped:
					fmt.Fprintf(out, "%-15s up to date (%s)\n", res.City, res.Path)
				default:
					fmt.Fprintf(out, "%-15s %d bytes -> %s\n", res.City, res.Bytes, res.Path)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d downloads failed", failed, len(results))
			}
			return nil
		},
	}

	fetchCmd.Flags().BoolVar(&force, "force", false, "Download even if the dataset is already present")
	fetchCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Overall download timeout")

	return fetchCmd
}
