package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/enterprise-insights/copilot-export/pkg/copilot"
	"github.com/enterprise-insights/copilot-export/pkg/report"
)

var seatsCmd = &cobra.Command{
	Use:   "seats",
	Short: "Export Copilot billing-seat membership",
	Long: `Joins enterprise team memberships against the Copilot billing seat
list by user login and writes one CSV row per seated team member.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		teams, err := env.svc.ListTeams(ctx)
		if err != nil {
			env.logger.Error().Err(err).Msg("Failed to fetch teams, report will be empty")
			teams = nil
		}

		seats, err := env.svc.ListSeats(ctx)
		if err != nil {
			env.logger.Error().Err(err).Msg("Failed to fetch billing seats")
			seats = nil
		}

		memberships := make(map[string][]copilot.Membership, len(teams))
		for _, team := range teams {
			members, err := env.svc.TeamMemberships(ctx, team.Slug)
			if err != nil {
				env.logger.Warn().
					Err(err).
					Str("team", team.Slug).
					Msg("Failed to fetch team memberships, recording placeholder")
				continue
			}
			memberships[team.Slug] = members
		}

		rows := report.SeatRows(env.cfg.EnterpriseSlug, teams, memberships, seats)

		path := report.SeatsFilename(env.cfg.OutputDir, time.Now())
		if err := report.WriteFile(path, report.SeatsHeader, rows); err != nil {
			env.logger.Error().Err(err).Str("file", path).Msg("Failed to write seats report")
			return err
		}

		env.logger.Info().
			Str("file", path).
			Int("teams", len(teams)).
			Int("seats", len(seats)).
			Int("rows", len(rows)).
			Msg("Seats report written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seatsCmd)
}
