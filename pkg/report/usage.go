// Package report flattens fetched Copilot data into fixed-order CSV rows
// and writes the report files.
package report

import (
	"strconv"

	"github.com/enterprise-insights/copilot-export/pkg/copilot"
)

// NoData is the sentinel for categorical fields with no source value.
const NoData = "No Data"

// UsageHeader is the fixed column order of the usage report. Rows must
// match it exactly.
var UsageHeader = []string{
	"team_id", "day",
	"total_suggestions_count", "total_acceptances_count",
	"total_lines_suggested", "total_lines_accepted", "total_active_users",
	"total_chat_acceptances", "total_chat_turns", "total_active_chat_users",
	"language", "editor",
	"suggestions_count", "acceptances_count",
	"lines_suggested", "lines_accepted", "active_users",
}

// UsageRows flattens the collected usage results into one row per
// (team, day, breakdown) combination, in the given team order.
//
// Every team yields at least one row: a team without usage data gets a
// single sentinel-filled row, and a day without breakdown entries gets a
// single row with the breakdown columns sentinel-filled. Row count is
// therefore a pure function of team count and breakdown fan-out.
func UsageRows(teams []copilot.Team, results map[int64]copilot.UsageResult) [][]string {
	var rows [][]string

	for _, team := range teams {
		teamID := strconv.FormatInt(team.ID, 10)
		result := results[team.ID]

		if len(result.Days) == 0 {
			rows = append(rows, placeholderUsageRow(teamID))
			continue
		}

		for _, day := range result.Days {
			if len(day.Breakdown) == 0 {
				rows = append(rows, usageRow(teamID, day, copilot.Breakdown{
					Language: NoData,
					Editor:   NoData,
				}))
				continue
			}
			for _, breakdown := range day.Breakdown {
				rows = append(rows, usageRow(teamID, day, breakdown))
			}
		}
	}

	return rows
}

// usageRow renders one flattened row in UsageHeader order.
func usageRow(teamID string, day copilot.UsageDay, breakdown copilot.Breakdown) []string {
	return []string{
		teamID,
		categorical(day.Day),
		strconv.Itoa(day.TotalSuggestions),
		strconv.Itoa(day.TotalAcceptances),
		strconv.Itoa(day.TotalLinesSuggested),
		strconv.Itoa(day.TotalLinesAccepted),
		strconv.Itoa(day.TotalActiveUsers),
		strconv.Itoa(day.TotalChatAcceptances),
		strconv.Itoa(day.TotalChatTurns),
		strconv.Itoa(day.TotalActiveChatUsers),
		categorical(breakdown.Language),
		categorical(breakdown.Editor),
		strconv.Itoa(breakdown.SuggestionsCount),
		strconv.Itoa(breakdown.AcceptancesCount),
		strconv.Itoa(breakdown.LinesSuggested),
		strconv.Itoa(breakdown.LinesAccepted),
		strconv.Itoa(breakdown.ActiveUsers),
	}
}

// placeholderUsageRow is the single row emitted for a team whose usage
// fetch yielded no data: numeric fields zero-filled, categorical fields
// sentinel-filled.
func placeholderUsageRow(teamID string) []string {
	return usageRow(teamID, copilot.UsageDay{Day: NoData}, copilot.Breakdown{
		Language: NoData,
		Editor:   NoData,
	})
}

// categorical substitutes the sentinel for an absent categorical value.
func categorical(value string) string {
	if value == "" {
		return NoData
	}
	return value
}
