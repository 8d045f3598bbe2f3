package copilot

import (
	"context"
	"testing"
	"time"

	"github.com/enterprise-insights/copilot-export/internal/testutil"
	"github.com/enterprise-insights/copilot-export/pkg/github"
)

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()

	client, err := github.New(github.DefaultConfig(baseURL, "test-token"))
	if err != nil {
		t.Fatalf("github.New() failed: %v", err)
	}

	return NewService(client, Config{
		EnterpriseID:   "12345",
		EnterpriseSlug: "acme",
		Workers:        3,
		Retry: github.Policy{
			MaxAttempts:       3,
			InitialBackoff:    1 * time.Millisecond,
			MaxBackoff:        5 * time.Millisecond,
			BackoffMultiplier: 2.0,
			MaxRateLimitWaits: 2,
		},
	})
}

func TestService_ListTeams_AcrossPages(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	// The mock keys handlers by path, so the second page lives on a
	// distinct path reached through the Link header.
	mock.SetResponse("/enterprises/acme/teams", testutil.NewPageResponse(
		`[{"id": 1, "slug": "alpha", "name": "Alpha"}, {"id": 2, "slug": "beta", "name": "Beta"}]`,
		mock.URL()+"/teams-page-2",
	))
	mock.SetResponse("/teams-page-2", testutil.NewPageResponse(
		`[{"id": 3, "slug": "gamma", "name": "Gamma"}]`, "",
	))

	svc := newTestService(t, mock.URL())

	teams, err := svc.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("ListTeams() failed: %v", err)
	}

	if len(teams) != 3 {
		t.Fatalf("Expected 3 teams, got %d", len(teams))
	}
	wantIDs := []int64{1, 2, 3}
	for i, team := range teams {
		if team.ID != wantIDs[i] {
			t.Errorf("Team %d ID = %d, want %d", i, team.ID, wantIDs[i])
		}
	}
	if teams[2].Slug != "gamma" {
		t.Errorf("Team slug = %q, want %q", teams[2].Slug, "gamma")
	}
}

func TestService_ListTeams_FailureReturnsError(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/enterprises/acme/teams", testutil.NewServerErrorResponse())

	svc := newTestService(t, mock.URL())

	teams, err := svc.ListTeams(context.Background())
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if teams != nil {
		t.Errorf("Expected nil teams, got %d", len(teams))
	}
}

func TestService_TeamUsage_DecodesPayload(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/enterprises/12345/team/7/copilot/usage", testutil.NewHealthyResponse(`[
		{
			"day": "2024-06-01",
			"total_suggestions_count": 100,
			"total_acceptances_count": 40,
			"breakdown": [
				{"language": "go", "editor": "vscode", "suggestions_count": 60},
				{"language": "python", "editor": "vscode", "suggestions_count": 40}
			]
		}
	]`))

	svc := newTestService(t, mock.URL())

	days, err := svc.TeamUsage(context.Background(), 7)
	if err != nil {
		t.Fatalf("TeamUsage() failed: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("Expected 1 day, got %d", len(days))
	}

	day := days[0]
	if day.Day != "2024-06-01" {
		t.Errorf("Day = %q, want %q", day.Day, "2024-06-01")
	}
	if day.TotalSuggestions != 100 {
		t.Errorf("TotalSuggestions = %d, want 100", day.TotalSuggestions)
	}
	// Fields absent from the payload default to zero.
	if day.TotalChatTurns != 0 {
		t.Errorf("TotalChatTurns = %d, want 0", day.TotalChatTurns)
	}
	if len(day.Breakdown) != 2 {
		t.Fatalf("Expected 2 breakdown entries, got %d", len(day.Breakdown))
	}
	if day.Breakdown[0].Language != "go" {
		t.Errorf("Language = %q, want %q", day.Breakdown[0].Language, "go")
	}
}

func TestService_TeamUsage_ExhaustionIsNoData(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/enterprises/12345/team/7/copilot/usage", testutil.NewServerErrorResponse())

	svc := newTestService(t, mock.URL())

	days, err := svc.TeamUsage(context.Background(), 7)
	if err != nil {
		t.Fatalf("Exhausted retries must not surface an error, got %v", err)
	}
	if days != nil {
		t.Errorf("Expected nil days (no data), got %d", len(days))
	}
	if got := mock.GetPathCount("/enterprises/12345/team/7/copilot/usage"); got != 3 {
		t.Errorf("Expected 3 attempts (policy), got %d", got)
	}
}

func TestService_ListSeats_UnwrapsEnvelope(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/enterprises/acme/copilot/billing/seats", testutil.NewPageResponse(
		`{"total_seats": 2, "seats": [
			{"assignee": {"login": "alice"}, "last_activity_at": "2024-06-01T10:00:00Z", "last_activity_editor": "vscode"},
			{"assignee": {"login": "bob"}, "last_activity_at": null, "last_activity_editor": null}
		]}`, "",
	))

	svc := newTestService(t, mock.URL())

	seats, err := svc.ListSeats(context.Background())
	if err != nil {
		t.Fatalf("ListSeats() failed: %v", err)
	}
	if len(seats) != 2 {
		t.Fatalf("Expected 2 seats, got %d", len(seats))
	}
	if seats[0].Assignee.Login != "alice" {
		t.Errorf("Login = %q, want %q", seats[0].Assignee.Login, "alice")
	}
	// JSON null decodes to the empty string.
	if seats[1].LastActivityEditor != "" {
		t.Errorf("LastActivityEditor = %q, want empty", seats[1].LastActivityEditor)
	}
}

func TestService_TeamMemberships(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/enterprises/acme/teams/alpha/memberships", testutil.NewPageResponse(
		`[{"login": "alice", "type": "User"}, {"login": "ci-bot", "type": "App"}]`, "",
	))

	svc := newTestService(t, mock.URL())

	members, err := svc.TeamMemberships(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("TeamMemberships() failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("Expected 2 members, got %d", len(members))
	}
	if members[0].Login != "alice" || members[0].Type != "User" {
		t.Errorf("Member = %+v, want alice/User", members[0])
	}
}
