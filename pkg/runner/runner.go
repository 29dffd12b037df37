// Package runner orchestrates a full scraper run: probe the first page
// for the total item count, plan the page range, then iterate all pages
// sequentially with a rate-limit suspension before each fetch and
// per-page error isolation.
package runner

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cwahlfeldt/api-scraper/pkg/paginate"
	"github.com/cwahlfeldt/api-scraper/pkg/ratelimit"
	"github.com/cwahlfeldt/api-scraper/pkg/sink"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for run progress.
var (
	pagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_pages_total",
		Help: "Total pages processed by outcome",
	}, []string{"outcome"})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_runs_total",
		Help: "Total runs by outcome",
	}, []string{"outcome"})
)

// Fetcher is the HTTP collaborator contract: one page request in, one
// decoded JSON document (or error) out.
type Fetcher interface {
	FetchPage(ctx context.Context, params url.Values) (map[string]any, error)
}

// Config holds the runner's collaborators and extraction paths.
type Config struct {
	// Fetcher performs page requests.
	Fetcher Fetcher

	// Strategy computes pagination query parameters.
	Strategy paginate.Strategy

	// Limiter throttles outbound requests.
	Limiter *ratelimit.Limiter

	// Sink persists extracted page payloads.
	Sink sink.Sink

	// Reporter receives progress events (default: LogReporter).
	Reporter Reporter

	// DataPath is the response field holding each page's payload.
	DataPath string

	// TotalCountPath is the response field holding the total item count.
	TotalCountPath string
}

// Runner drives the engine across all pages of an endpoint.
type Runner struct {
	config Config
	logger zerolog.Logger
}

// New validates the configuration and creates a runner.
func New(cfg Config) (*Runner, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if cfg.Limiter == nil {
		return nil, fmt.Errorf("rate limiter is required")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("sink is required")
	}
	if cfg.Strategy.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be > 0 (got %d)", cfg.Strategy.PageSize)
	}
	if cfg.DataPath == "" {
		return nil, fmt.Errorf("data path is required")
	}
	if cfg.TotalCountPath == "" {
		return nil, fmt.Errorf("total count path is required")
	}
	if cfg.Reporter == nil {
		cfg.Reporter = NewLogReporter()
	}

	return &Runner{
		config: cfg,
		logger: log.With().Str("component", "runner").Logger(),
	}, nil
}

// Run executes the full scrape. The probe failing is fatal and returns a
// *ProbeError. Per-page failures are reported and skipped; they never
// abort the run. Cancellation surfaces as ErrCancelled.
func (r *Runner) Run(ctx context.Context) error {
	cfg := r.config

	// Probe: page 1 discovers the total item count.
	probeDoc, err := cfg.Fetcher.FetchPage(ctx, cfg.Strategy.Params(1))
	if err != nil {
		runsTotal.WithLabelValues("probe_failed").Inc()
		return &ProbeError{Err: err}
	}

	totalCount, err := paginate.TotalCount(probeDoc, cfg.TotalCountPath)
	if err != nil {
		runsTotal.WithLabelValues("probe_failed").Inc()
		return &ProbeError{Err: err}
	}

	totalPages := paginate.TotalPages(totalCount, cfg.Strategy.PageSize)
	cfg.Reporter.RunPlanned(totalCount, totalPages)

	saved := 0
	for page := 1; page <= totalPages; page++ {
		if err := ctx.Err(); err != nil {
			runsTotal.WithLabelValues("cancelled").Inc()
			return fmt.Errorf("%w: %v", ErrCancelled, err)
		}

		// The suspension happens before every iteration, including the
		// probe-backed first page.
		if err := cfg.Limiter.Wait(ctx); err != nil {
			runsTotal.WithLabelValues("cancelled").Inc()
			return fmt.Errorf("%w: %v", ErrCancelled, err)
		}

		cfg.Reporter.PageFetching(page, totalPages)

		var doc map[string]any
		if page == 1 {
			// Reuse the probe's document instead of re-fetching page 1.
			doc, probeDoc = probeDoc, nil
		} else {
			doc, err = cfg.Fetcher.FetchPage(ctx, cfg.Strategy.Params(page))
			if err != nil {
				r.failPage(&PageError{Page: page, Stage: StageFetch, Err: err})
				continue
			}
		}

		data, err := paginate.Data(doc, cfg.DataPath)
		if err != nil {
			r.failPage(&PageError{Page: page, Stage: StageExtract, Err: err})
			continue
		}

		filename, err := cfg.Sink.Write(page, data)
		if err != nil {
			r.failPage(&PageError{Page: page, Stage: StageWrite, Err: err})
			continue
		}

		pagesTotal.WithLabelValues("saved").Inc()
		saved++
		cfg.Reporter.PageSaved(page, filename)
	}

	runsTotal.WithLabelValues("completed").Inc()
	cfg.Reporter.RunCompleted(saved, totalPages)
	return nil
}

// failPage records a skipped page. Recoverable by policy: fetch, extract
// and write failures are all isolated to their page.
func (r *Runner) failPage(pageErr *PageError) {
	pagesTotal.WithLabelValues("failed").Inc()
	r.config.Reporter.PageFailed(pageErr.Page, pageErr)
}
