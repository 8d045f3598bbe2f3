package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/enterprise-insights/copilot-export/pkg/report"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Export per-team Copilot usage metrics",
	Long: `Paginates the enterprise team list, fetches each team's daily Copilot
usage with a bounded worker pool, and flattens days and language/editor
breakdowns into a single CSV. Teams without usage data appear as
sentinel-filled rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		teams, err := env.svc.ListTeams(ctx)
		if err != nil {
			// A failed team listing produces an empty report, not a crash.
			env.logger.Error().Err(err).Msg("Failed to fetch teams, report will be empty")
			teams = nil
		}

		results := env.svc.FetchAllUsage(ctx, teams)
		rows := report.UsageRows(teams, results)

		path := report.UsageFilename(env.cfg.OutputDir, time.Now())
		if err := report.WriteFile(path, report.UsageHeader, rows); err != nil {
			env.logger.Error().Err(err).Str("file", path).Msg("Failed to write usage report")
			return err
		}

		env.logger.Info().
			Str("file", path).
			Int("teams", len(teams)).
			Int("rows", len(rows)).
			Msg("Usage report written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)
}
