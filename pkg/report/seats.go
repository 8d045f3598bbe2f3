package report

import (
	"github.com/enterprise-insights/copilot-export/pkg/copilot"
)

// SeatsHeader is the fixed column order of the seat membership report.
var SeatsHeader = []string{
	"enterprise_name", "team_name", "user_name",
	"copilot_activity", "last_active_editor", "status",
}

// SeatRows joins team memberships against the billing seat list by user
// login. One row is emitted per (team, seated user member); a team whose
// membership yields no seated users still emits one sentinel row, so
// every team appears in the report.
func SeatRows(enterprise string, teams []copilot.Team, memberships map[string][]copilot.Membership, seats []copilot.Seat) [][]string {
	seatsByLogin := make(map[string]copilot.Seat, len(seats))
	for _, seat := range seats {
		seatsByLogin[seat.Assignee.Login] = seat
	}

	var rows [][]string

	for _, team := range teams {
		emitted := 0

		for _, member := range memberships[team.Slug] {
			if member.Type != "User" {
				continue
			}
			seat, ok := seatsByLogin[member.Login]
			if !ok {
				continue
			}

			status := "inactive"
			if seat.LastActivityEditor != "" {
				status = "active"
			}

			rows = append(rows, []string{
				enterprise,
				team.Name,
				member.Login,
				categorical(seat.LastActivityAt),
				categorical(seat.LastActivityEditor),
				status,
			})
			emitted++
		}

		if emitted == 0 {
			rows = append(rows, []string{
				enterprise, team.Name, NoData, NoData, NoData, NoData,
			})
		}
	}

	return rows
}
