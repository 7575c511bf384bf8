package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"bikeshare/internal/filter"
)

func newCitiesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List configured cities and their dataset files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(cfg.Cities))
			for _, c := range cfg.Cities {
				path := cfg.DatasetPath(c)
				status := "missing"
				if _, err := os.Stat(path); err == nil {
					status = "ok"
				}
				rows = append(rows, []string{filter.Title(c.Name), path, status, c.URL})
			}

			newReport(cmd, opts).Table([]string{"City", "Dataset", "Status", "URL"}, rows)
			return nil
		},
	}
}
