package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/enterprise-insights/copilot-export/pkg/ratelimit"
)

// Prometheus metrics for retry operations.
var (
	apiRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_api_retries_total",
		Help: "Total number of retry attempts by error class",
	}, []string{"error_class"})

	apiRetryBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "github_api_retry_backoff_seconds",
		Help:    "Backoff duration for retries by error class",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"error_class"})

	apiRetryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_api_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error class",
	}, []string{"error_class"})

	apiRateLimitWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "github_api_rate_limit_waits_total",
		Help: "Total number of waits for a rate limit window reset",
	})

	apiRateLimitWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "github_api_rate_limit_wait_seconds",
		Help:    "Duration of rate limit window waits",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
	})
)

// Policy holds the configuration for the retry loop.
//
// Rate limit responses take a separate path: the loop sleeps until the
// server-reported window reset and retries without consuming an attempt.
// MaxRateLimitWaits bounds that path so a server stuck on 403 cannot spin
// the loop forever.
type Policy struct {
	// MaxAttempts is the maximum number of attempts (including the initial request).
	MaxAttempts int

	// InitialBackoff is the backoff after the first failed attempt.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff.
	BackoffMultiplier float64

	// MaxRateLimitWaits caps consecutive waits for window resets.
	MaxRateLimitWaits int
}

// DefaultPolicy returns the default retry policy for detail endpoints.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:       5,
		InitialBackoff:    2 * time.Second,
		MaxBackoff:        60 * time.Second,
		BackoffMultiplier: 2.0,
		MaxRateLimitWaits: 10,
	}
}

// GetWithRetry performs a GET under the given policy and returns the
// response body on success.
//
// Failure handling:
//   - 403 with an exhausted quota: wait until the reported reset (plus a
//     safety margin), then retry. Does not consume an attempt.
//   - any other non-200, or a network error: exponential backoff, retry.
//   - after MaxAttempts failures: ErrRetryExhausted (wrapped). Callers
//     treat this as "no data", not as a fatal condition.
func (c *Client) GetWithRetry(ctx context.Context, url string, policy Policy) ([]byte, error) {
	var lastErr error
	backoff := policy.InitialBackoff
	rateLimitWaits := 0

	for attempt := 1; attempt <= policy.MaxAttempts; {
		resp, err := c.Get(ctx, url)

		if err == nil {
			if resp.StatusCode == http.StatusOK {
				body, readErr := io.ReadAll(resp.Body)
				resp.Body.Close()
				if readErr == nil {
					if attempt > 1 || rateLimitWaits > 0 {
						c.logger.Info().
							Str("url", url).
							Int("attempt", attempt).
							Msg("Request succeeded after retry")
					}
					return body, nil
				}
				err = readErr
			} else if state, stErr := ratelimit.FromHeaders(resp.Header); stErr == nil &&
				resp.StatusCode == http.StatusForbidden && state.Exhausted() {
				resp.Body.Close()

				rateLimitWaits++
				if rateLimitWaits > policy.MaxRateLimitWaits {
					apiRetryExhaustedTotal.WithLabelValues(string(ErrorClassRateLimit)).Inc()
					return nil, fmt.Errorf("%w: %d rate limit waits for %s",
						ErrRetryExhausted, rateLimitWaits, url)
				}

				// Window wait; retries without consuming an attempt.
				if waitErr := c.waitForReset(ctx, state, url); waitErr != nil {
					return nil, waitErr
				}
				continue
			} else {
				err = &APIError{
					StatusCode: resp.StatusCode,
					ErrorClass: classifyResponse(resp),
					Message:    resp.Status,
				}
				resp.Body.Close()
			}
		}

		lastErr = err

		if attempt >= policy.MaxAttempts {
			break
		}

		errClass := classify(err)
		apiRetriesTotal.WithLabelValues(string(errClass)).Inc()

		// Add jitter (±20% randomness)
		jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
		apiRetryBackoffSeconds.WithLabelValues(string(errClass)).Observe(jitter.Seconds())

		c.logger.Debug().
			Str("url", url).
			Str("error_class", string(errClass)).
			Int("attempt", attempt).
			Dur("backoff", jitter).
			Msg("Retrying request after backoff")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
		case <-time.After(jitter):
		}

		backoff = time.Duration(float64(backoff) * policy.BackoffMultiplier)
		if backoff > policy.MaxBackoff {
			backoff = policy.MaxBackoff
		}

		attempt++
	}

	errClass := classify(lastErr)
	apiRetryExhaustedTotal.WithLabelValues(string(errClass)).Inc()
	c.logger.Warn().
		Str("url", url).
		Int("max_attempts", policy.MaxAttempts).
		Msg("Retry attempts exhausted")

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, policy.MaxAttempts, lastErr)
}

// waitForReset sleeps until the reported window reset time plus a safety
// margin. Returns a cancellation error when the context ends first.
func (c *Client) waitForReset(ctx context.Context, state ratelimit.State, url string) error {
	wait := state.WaitUntilReset(time.Now())

	apiRateLimitWaitsTotal.Inc()
	apiRateLimitWaitSeconds.Observe(wait.Seconds())

	c.logger.Warn().
		Str("url", url).
		Time("reset_at", state.ResetAt).
		Dur("wait", wait).
		Msg("Rate limit exceeded, waiting for window reset")

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
	case <-time.After(wait):
		return nil
	}
}

// classify maps a request error to its error class.
func classify(err error) ErrorClass {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorClass
	}
	return ErrorClassNetwork
}
