// Package github provides the GitHub REST client with retry, rate limit
// handling, and pagination used by the export pipeline.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/enterprise-insights/copilot-export/pkg/ratelimit"
)

// Prometheus metrics for API requests.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_api_requests_total",
		Help: "Total GitHub API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "github_api_request_duration_seconds",
		Help:    "GitHub API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_api_errors_total",
		Help: "Total GitHub API errors by class",
	}, []string{"class"})
)

// apiVersion is the X-GitHub-Api-Version header value.
const apiVersion = "2022-11-28"

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. https://api.github.com.
	BaseURL string

	// Token is the bearer token used for authentication.
	Token string

	// UserAgent identifies this tool to the API.
	UserAgent string

	// Timeout is the per-request socket timeout.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL, token string) Config {
	return Config{
		BaseURL:   baseURL,
		Token:     token,
		UserAgent: "copilot-export/1.0",
		Timeout:   30 * time.Second,
	}
}

// Client is the GitHub API client.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a new GitHub client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "copilot-export/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "github-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// Get performs a single authenticated GET request without retrying.
// url may be a path relative to the configured base URL or an absolute
// URL (as returned by pagination Link headers). Non-2xx statuses are not
// errors here; the caller inspects the response.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = c.config.BaseURL + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.config.UserAgent)

	endpoint := req.URL.Path

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())

	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		apiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, err
	}

	apiRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		errClass := classifyResponse(resp)
		apiErrorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("GitHub API request error")
	}

	return resp, nil
}

// classifyResponse categorizes a non-success response for handling and
// observability. A 403 only counts as rate limiting when the response
// reports an exhausted quota window.
func classifyResponse(resp *http.Response) ErrorClass {
	state, err := ratelimit.FromHeaders(resp.Header)
	if err == nil && resp.StatusCode == http.StatusForbidden && state.Exhausted() {
		return ErrorClassRateLimit
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ErrorClassClient
	case resp.StatusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}
