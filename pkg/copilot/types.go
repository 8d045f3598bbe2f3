// Package copilot implements the enterprise Copilot export operations:
// team discovery, per-team usage metrics, billing seats, and memberships.
package copilot

// Team is an enterprise team discovered from the collection endpoint.
type Team struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UsageDay is one date-stamped usage aggregate for a team. Fields absent
// from the payload decode to zero, which is the declared missing-value
// policy for every numeric metric.
type UsageDay struct {
	Day                  string      `json:"day"`
	TotalSuggestions     int         `json:"total_suggestions_count"`
	TotalAcceptances     int         `json:"total_acceptances_count"`
	TotalLinesSuggested  int         `json:"total_lines_suggested"`
	TotalLinesAccepted   int         `json:"total_lines_accepted"`
	TotalActiveUsers     int         `json:"total_active_users"`
	TotalChatAcceptances int         `json:"total_chat_acceptances"`
	TotalChatTurns       int         `json:"total_chat_turns"`
	TotalActiveChatUsers int         `json:"total_active_chat_users"`
	Breakdown            []Breakdown `json:"breakdown"`
}

// Breakdown is a per-language/per-editor sub-aggregate within a usage day.
type Breakdown struct {
	Language         string `json:"language"`
	Editor           string `json:"editor"`
	SuggestionsCount int    `json:"suggestions_count"`
	AcceptancesCount int    `json:"acceptances_count"`
	LinesSuggested   int    `json:"lines_suggested"`
	LinesAccepted    int    `json:"lines_accepted"`
	ActiveUsers      int    `json:"active_users"`
}

// Seat is a Copilot billing seat assignment.
type Seat struct {
	Assignee           SeatAssignee `json:"assignee"`
	LastActivityAt     string       `json:"last_activity_at"`
	LastActivityEditor string       `json:"last_activity_editor"`
}

// SeatAssignee identifies the user holding a seat.
type SeatAssignee struct {
	Login string `json:"login"`
}

// Membership is one member of an enterprise team.
type Membership struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}
