package cmd

import (
	"github.com/spf13/cobra"

	"bikeshare/internal/explorer"
	"bikeshare/internal/filter"
	"bikeshare/internal/logger"
	"bikeshare/internal/prompt"
	"bikeshare/internal/state"
)

func newExploreCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Interactively choose a city and filters and view statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, opts)
		},
	}
}

func runExplore(cmd *cobra.Command, opts *options) error {
	// Load city configuration and the dataset loader built from it
	cfg, loader, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Load previously saved state (last selection, fetched datasets)
	st := state.LoadState(opts.statePath)

	// Greet returning users with what they looked at last
	if last := st.LastSelection; last != nil {
		logger.Info("[INFO] Last time you explored %s (month: %s, day: %s)\n",
			filter.Title(last.City), filter.Title(last.Month), filter.Title(last.Day))
	}

	// Reports suggest other configured cities when one lacks a column
	rep := newReport(cmd, opts)
	rep.Cities = cfg.CityNames()

	session := &explorer.Session{
		Prompter: prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()),
		Report:   rep,
		Loader:   loader,
		Cities:   cfg.CityNames(),
		PageSize: cfg.PageSize,
		State:    st,
	}
	// Run the prompt loop until the user stops or input ends
	runErr := session.Run()

	// Save whatever was explored even if input broke off
	state.SaveState(opts.statePath, st)
	return runErr
}
