// Package ratelimit interprets GitHub rate limit response headers.
// It inspects X-RateLimit-Remaining and X-RateLimit-Reset to detect an
// exhausted quota window and compute how long to wait for its reset.
// State is derived per response; nothing is shared across callers, so the
// functions here are safe from any number of concurrent workers.
package ratelimit

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Rate limit headers sent by the GitHub API.
const (
	HeaderRemaining = "X-RateLimit-Remaining"
	HeaderReset     = "X-RateLimit-Reset"
)

// safetyMargin is added to every computed wait so the retry lands after
// the server-side window has actually rolled over.
const safetyMargin = 1 * time.Second

// State is the rate limit state reported by a single response.
type State struct {
	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the window resets (from X-RateLimit-Reset, epoch seconds).
	ResetAt time.Time

	// Present reports whether the response carried rate limit headers at all.
	Present bool
}

// FromHeaders parses the rate limit headers of a response.
// A response without the headers yields a zero State with Present=false,
// which is not an error (not every endpoint reports quota).
func FromHeaders(headers http.Header) (State, error) {
	remainStr := headers.Get(HeaderRemaining)
	if remainStr == "" {
		return State{}, nil
	}

	remaining, err := strconv.Atoi(remainStr)
	if err != nil {
		return State{}, fmt.Errorf("parse %s header: %w", HeaderRemaining, err)
	}

	state := State{Remaining: remaining, Present: true}

	resetStr := headers.Get(HeaderReset)
	if resetStr != "" {
		resetEpoch, err := strconv.ParseInt(resetStr, 10, 64)
		if err != nil {
			return State{}, fmt.Errorf("parse %s header: %w", HeaderReset, err)
		}
		state.ResetAt = time.Unix(resetEpoch, 0)
	}

	return state, nil
}

// Exhausted reports whether the quota window has no requests left.
func (s State) Exhausted() bool {
	return s.Present && s.Remaining <= 0
}

// WaitUntilReset returns how long to sleep before retrying: the time until
// the window resets, floored at zero, plus a one second safety margin.
func (s State) WaitUntilReset(now time.Time) time.Duration {
	wait := s.ResetAt.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait + safetyMargin
}
