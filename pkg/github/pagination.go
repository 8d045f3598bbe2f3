package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Paginator walks a collection endpoint page by page, following the
// Link header rel="next" relation until the server stops supplying one.
//
// The walk is all-or-nothing: a non-success page fails the whole
// collection (no per-page retry), and records are accumulated in server
// page order without deduplication.
type Paginator struct {
	client *Client
	logger zerolog.Logger
}

// NewPaginator creates a paginator over the given client.
func NewPaginator(client *Client) *Paginator {
	return &Paginator{
		client: client,
		logger: log.With().Str("component", "paginator").Logger(),
	}
}

// FetchAll returns the raw body of every page of the collection at path,
// in server order.
func (p *Paginator) FetchAll(ctx context.Context, path string) ([][]byte, error) {
	start := time.Now()
	var pages [][]byte

	url := path
	for url != "" {
		resp, err := p.client.Get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", len(pages)+1, err)
		}

		if resp.StatusCode != http.StatusOK {
			apiErr := &APIError{
				StatusCode: resp.StatusCode,
				ErrorClass: classifyResponse(resp),
				Message:    resp.Status,
			}
			resp.Body.Close()
			return nil, fmt.Errorf("fetch page %d: %w", len(pages)+1, apiErr)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", len(pages)+1, err)
		}

		pages = append(pages, body)
		url = nextLink(resp.Header)
	}

	p.logger.Info().
		Str("path", path).
		Int("pages", len(pages)).
		Dur("duration", time.Since(start)).
		Msg("Pagination complete")

	return pages, nil
}

// nextLink extracts the rel="next" URL from a Link response header.
// Returns "" when the header is absent or carries no next relation.
func nextLink(headers http.Header) string {
	link := headers.Get("Link")
	if link == "" {
		return ""
	}

	// Link: <https://api.github.com/...&page=2>; rel="next", <...>; rel="last"
	for _, part := range strings.Split(link, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}

		url := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		for _, param := range sections[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return url
			}
		}
	}

	return ""
}
