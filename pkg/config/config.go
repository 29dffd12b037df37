// Package config holds the scraper run configuration and the schema
// document loader. A configuration is built once at startup from CLI
// flags merged over an optional schema file, then read-only for the
// lifetime of the run.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/cwahlfeldt/api-scraper/pkg/paginate"
)

// Pagination holds the pagination-specific part of the configuration.
type Pagination struct {
	// Type is the pagination variant (offset, cursor, page).
	Type paginate.Type

	// PageSize is the number of items requested per page. Must be > 0.
	PageSize int

	// DataPath is the top-level response field holding the page payload.
	DataPath string

	// TotalCountPath is the top-level response field holding the total
	// item count.
	TotalCountPath string
}

// Endpoint is the full configuration for one scraper run.
type Endpoint struct {
	// BaseURL is the API endpoint to paginate through.
	BaseURL string

	// Headers are sent with every request.
	Headers map[string]string

	// Pagination settings.
	Pagination Pagination

	// RateLimit is the delay before every page fetch.
	RateLimit time.Duration

	// OutputDir receives one page_<N>.json file per page.
	OutputDir string

	// RedisAddr enables the Redis response cache when non-empty.
	RedisAddr string

	// CacheTTL is how long cached page responses stay valid.
	CacheTTL time.Duration
}

// Validate checks the configuration before any network activity.
func (e *Endpoint) Validate() error {
	if e.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if _, err := url.ParseRequestURI(e.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL %q: %w", e.BaseURL, err)
	}
	if _, err := paginate.ParseType(string(e.Pagination.Type)); err != nil {
		return err
	}
	if e.Pagination.PageSize <= 0 {
		return fmt.Errorf("page size must be > 0 (got %d)", e.Pagination.PageSize)
	}
	if e.Pagination.DataPath == "" {
		return fmt.Errorf("data path is required")
	}
	if e.Pagination.TotalCountPath == "" {
		return fmt.Errorf("total count path is required")
	}
	if e.RateLimit < 0 {
		return fmt.Errorf("rate limit must be >= 0 (got %v)", e.RateLimit)
	}
	if e.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}
