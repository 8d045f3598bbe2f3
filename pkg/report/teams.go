package report

import (
	"strconv"

	"github.com/enterprise-insights/copilot-export/pkg/copilot"
)

// TeamsHeader is the fixed column order of the team roster report.
var TeamsHeader = []string{"id", "slug", "name", "description"}

// TeamRows renders the team roster in server order.
func TeamRows(teams []copilot.Team) [][]string {
	rows := make([][]string, 0, len(teams))
	for _, team := range teams {
		rows = append(rows, []string{
			strconv.FormatInt(team.ID, 10),
			team.Slug,
			team.Name,
			team.Description,
		})
	}
	return rows
}
