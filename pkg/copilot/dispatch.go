package copilot

import (
	"context"
	"sync"
	"time"
)

// UsageResult pairs a team with its fetched usage. Days is nil when the
// fetch exhausted its retries; the report layer renders that as a
// sentinel row so the team is never silently dropped.
type UsageResult struct {
	Team Team
	Days []UsageDay
}

// FetchAllUsage applies TeamUsage to every team using a bounded worker
// pool. Results are collected in completion order, keyed by team ID; a
// failed fetch is recorded as a placeholder and never aborts sibling
// fetches. The call blocks until every dispatched fetch has resolved.
//
// The returned map always contains exactly one entry per input team.
func (s *Service) FetchAllUsage(ctx context.Context, teams []Team) map[int64]UsageResult {
	start := time.Now()

	results := make(map[int64]UsageResult, len(teams))
	if len(teams) == 0 {
		return results
	}

	s.logger.Info().
		Int("teams", len(teams)).
		Int("workers", s.config.Workers).
		Msg("Starting usage fetch")

	queue := make(chan Team, len(teams))
	out := make(chan UsageResult, len(teams))

	for _, team := range teams {
		queue <- team
	}
	close(queue)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go s.usageWorker(ctx, queue, out, &wg, i)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	fetched := 0
	for result := range out {
		results[result.Team.ID] = result
		if result.Days != nil {
			fetched++
		}
	}

	// Teams skipped by a cancelled worker still get a placeholder entry.
	for _, team := range teams {
		if _, ok := results[team.ID]; !ok {
			results[team.ID] = UsageResult{Team: team}
		}
	}

	s.logger.Info().
		Int("fetched", fetched).
		Int("teams", len(teams)).
		Dur("duration", time.Since(start)).
		Msg("Usage fetch complete")

	return results
}

// usageWorker processes teams from the queue.
func (s *Service) usageWorker(ctx context.Context, queue <-chan Team, out chan<- UsageResult, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	processed := 0

	for team := range queue {
		select {
		case <-ctx.Done():
			s.logger.Debug().
				Int("worker_id", workerID).
				Int("processed", processed).
				Msg("Worker stopping (context cancelled)")
			return
		default:
		}

		days, err := s.TeamUsage(ctx, team.ID)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Int("worker_id", workerID).
				Int64("team_id", team.ID).
				Msg("Usage fetch failed, recording placeholder")
			days = nil
		}

		out <- UsageResult{Team: team, Days: days}
		processed++
	}

	if processed > 0 {
		s.logger.Debug().
			Int("worker_id", workerID).
			Int("processed", processed).
			Msg("Worker completed")
	}
}
