package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/enterprise-insights/copilot-export/pkg/report"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Export the enterprise team roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}

		teams, err := env.svc.ListTeams(cmd.Context())
		if err != nil {
			env.logger.Error().Err(err).Msg("Failed to fetch teams, report will be empty")
			teams = nil
		}

		path := report.TeamsFilename(env.cfg.OutputDir, time.Now())
		if err := report.WriteFile(path, report.TeamsHeader, report.TeamRows(teams)); err != nil {
			env.logger.Error().Err(err).Str("file", path).Msg("Failed to write teams report")
			return err
		}

		env.logger.Info().
			Str("file", path).
			Int("teams", len(teams)).
			Msg("Teams report written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}
