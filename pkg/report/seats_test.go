package report

import (
	"testing"

	"github.com/enterprise-insights/copilot-export/pkg/copilot"
)

func TestSeatRows_JoinByLogin(t *testing.T) {
	teams := []copilot.Team{{ID: 1, Slug: "alpha", Name: "Alpha"}}
	memberships := map[string][]copilot.Membership{
		"alpha": {
			{Login: "alice", Type: "User"},
			{Login: "bob", Type: "User"},
			{Login: "carol", Type: "User"}, // no seat
			{Login: "ci-bot", Type: "App"}, // not a user
		},
	}
	seats := []copilot.Seat{
		{Assignee: copilot.SeatAssignee{Login: "alice"}, LastActivityAt: "2024-06-01T10:00:00Z", LastActivityEditor: "vscode"},
		{Assignee: copilot.SeatAssignee{Login: "bob"}},
	}

	rows := SeatRows("acme", teams, memberships, seats)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows (seated users only), got %d", len(rows))
	}

	alice := rows[0]
	if alice[0] != "acme" || alice[1] != "Alpha" || alice[2] != "alice" {
		t.Errorf("Row = %v", alice)
	}
	if alice[3] != "2024-06-01T10:00:00Z" || alice[4] != "vscode" {
		t.Errorf("Activity fields = %q/%q", alice[3], alice[4])
	}
	if alice[5] != "active" {
		t.Errorf("status = %q, want active", alice[5])
	}

	// A seat without a last-activity editor is inactive, and its absent
	// fields carry the sentinel.
	bob := rows[1]
	if bob[5] != "inactive" {
		t.Errorf("status = %q, want inactive", bob[5])
	}
	if bob[3] != NoData || bob[4] != NoData {
		t.Errorf("Activity fields = %q/%q, want sentinel", bob[3], bob[4])
	}
}

func TestSeatRows_TeamWithoutSeatedUsersGetsSentinelRow(t *testing.T) {
	teams := []copilot.Team{
		{ID: 1, Slug: "alpha", Name: "Alpha"},
		{ID: 2, Slug: "beta", Name: "Beta"},
	}
	memberships := map[string][]copilot.Membership{
		"alpha": {{Login: "alice", Type: "User"}},
		// beta has no membership data at all.
	}
	seats := []copilot.Seat{
		{Assignee: copilot.SeatAssignee{Login: "alice"}, LastActivityEditor: "vscode"},
	}

	rows := SeatRows("acme", teams, memberships, seats)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	sentinel := rows[1]
	if sentinel[1] != "Beta" {
		t.Errorf("team_name = %q, want Beta", sentinel[1])
	}
	for _, i := range []int{2, 3, 4, 5} {
		if sentinel[i] != NoData {
			t.Errorf("Field %d = %q, want sentinel", i, sentinel[i])
		}
	}
}

func TestSeatRows_RowWidthMatchesHeader(t *testing.T) {
	teams := []copilot.Team{{ID: 1, Slug: "alpha", Name: "Alpha"}}
	rows := SeatRows("acme", teams, nil, nil)

	for _, row := range rows {
		if len(row) != len(SeatsHeader) {
			t.Errorf("Row width %d, want %d", len(row), len(SeatsHeader))
		}
	}
}
