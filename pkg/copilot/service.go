package copilot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/enterprise-insights/copilot-export/pkg/github"
)

// Config holds the service configuration.
type Config struct {
	// EnterpriseID is the numeric enterprise identifier (usage endpoint).
	EnterpriseID string

	// EnterpriseSlug is the enterprise slug (collection endpoints).
	EnterpriseSlug string

	// Workers bounds the usage fetch worker pool.
	Workers int

	// Retry is the policy applied to detail fetches.
	Retry github.Policy
}

// Service exposes the Copilot export operations over a GitHub client.
type Service struct {
	client    *github.Client
	paginator *github.Paginator
	config    Config
	logger    zerolog.Logger
}

// NewService creates a Copilot export service.
func NewService(client *github.Client, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = github.DefaultPolicy()
	}

	return &Service{
		client:    client,
		paginator: github.NewPaginator(client),
		config:    cfg,
		logger:    log.With().Str("component", "copilot").Logger(),
	}
}

// ListTeams returns every team of the enterprise, in server page order.
func (s *Service) ListTeams(ctx context.Context) ([]Team, error) {
	path := fmt.Sprintf("/enterprises/%s/teams", s.config.EnterpriseSlug)

	pages, err := s.paginator.FetchAll(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	var teams []Team
	for i, page := range pages {
		var batch []Team
		if err := json.Unmarshal(page, &batch); err != nil {
			return nil, fmt.Errorf("decode teams page %d: %w", i+1, err)
		}
		teams = append(teams, batch...)
	}

	s.logger.Info().Int("teams", len(teams)).Msg("Fetched enterprise teams")
	return teams, nil
}

// TeamUsage fetches the daily Copilot usage records of one team through
// the retry policy. Exhausted retries are a definitive "no data" signal:
// the result is (nil, nil), never an error, so one unreachable team does
// not fail the run.
func (s *Service) TeamUsage(ctx context.Context, teamID int64) ([]UsageDay, error) {
	path := fmt.Sprintf("/enterprises/%s/team/%d/copilot/usage", s.config.EnterpriseID, teamID)

	body, err := s.client.GetWithRetry(ctx, path, s.config.Retry)
	if err != nil {
		if errors.Is(err, github.ErrRetryExhausted) {
			s.logger.Error().
				Int64("team_id", teamID).
				Err(err).
				Msg("No usage data for team after exhausting retries")
			return nil, nil
		}
		return nil, fmt.Errorf("team %d usage: %w", teamID, err)
	}

	var days []UsageDay
	if err := json.Unmarshal(body, &days); err != nil {
		return nil, fmt.Errorf("decode team %d usage: %w", teamID, err)
	}

	return days, nil
}

// seatsPage is the billing seats collection envelope.
type seatsPage struct {
	TotalSeats int    `json:"total_seats"`
	Seats      []Seat `json:"seats"`
}

// ListSeats returns every Copilot billing seat of the enterprise.
func (s *Service) ListSeats(ctx context.Context) ([]Seat, error) {
	path := fmt.Sprintf("/enterprises/%s/copilot/billing/seats", s.config.EnterpriseSlug)

	pages, err := s.paginator.FetchAll(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}

	var seats []Seat
	for i, page := range pages {
		var batch seatsPage
		if err := json.Unmarshal(page, &batch); err != nil {
			return nil, fmt.Errorf("decode seats page %d: %w", i+1, err)
		}
		seats = append(seats, batch.Seats...)
	}

	s.logger.Info().Int("seats", len(seats)).Msg("Fetched Copilot billing seats")
	return seats, nil
}

// TeamMemberships returns every member of one team.
func (s *Service) TeamMemberships(ctx context.Context, teamSlug string) ([]Membership, error) {
	path := fmt.Sprintf("/enterprises/%s/teams/%s/memberships", s.config.EnterpriseSlug, teamSlug)

	pages, err := s.paginator.FetchAll(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("team %s memberships: %w", teamSlug, err)
	}

	var members []Membership
	for i, page := range pages {
		var batch []Membership
		if err := json.Unmarshal(page, &batch); err != nil {
			return nil, fmt.Errorf("decode memberships page %d: %w", i+1, err)
		}
		members = append(members, batch...)
	}

	return members, nil
}
