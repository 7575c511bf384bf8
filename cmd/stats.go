package cmd

import (
	"github.com/spf13/cobra"

	"bikeshare/internal/explorer"
	"bikeshare/internal/filter"
)

func newStatsCmd(opts *options) *cobra.Command {
	var (
		sel filter.Selection
		raw int
	)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print statistics for one selection without prompting",
		Example: `  bikeshare stats --city chicago
  bikeshare stats --city "new york city" --month march --day friday --raw 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loader, err := loadConfig(opts)
			if err != nil {
				return err
			}

			sel = sel.Normalize()
			if err := sel.Validate(cfg.CityNames()); err != nil {
				return err
			}

			table, err := loader.Load(sel.City)
			if err != nil {
				return err
			}

			rep := newReport(cmd, opts)
			rep.Cities = cfg.CityNames()
			filtered := explorer.Describe(rep, table, sel)
			if raw > 0 && filtered.Len() > 0 {
				rep.RawRows(filtered.Header, filtered.Trips[:min(raw, filtered.Len())])
			}
			return nil
		},
	}

	statsCmd.Flags().StringVar(&sel.City, "city", "", "City to analyze")
	statsCmd.Flags().StringVar(&sel.Month, "month", filter.All, "Month to filter by (january-june) or all")
	statsCmd.Flags().StringVar(&sel.Day, "day", filter.All, "Day of week to filter by or all")
	statsCmd.Flags().IntVar(&raw, "raw", 0, "Also print the first N matching raw rows")
	_ = statsCmd.MarkFlagRequired("city")

	return statsCmd
}
