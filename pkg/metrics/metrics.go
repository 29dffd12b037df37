// Package metrics provides the centralized Prometheus metrics registry
// for the scraper. All metrics are defined in their respective packages
// (client, runner, ratelimit, cache) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the scraper.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - scraper_requests_total{status} (Counter): Total API requests by HTTP status
//   - scraper_request_duration_seconds (Histogram): Request duration
//   - scraper_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Run Metrics (pkg/runner):
//   - scraper_pages_total{outcome} (Counter): Pages processed by outcome (saved, failed)
//   - scraper_runs_total{outcome} (Counter): Runs by outcome (completed, cancelled, probe_failed)
//
// Rate Limit Metrics (pkg/ratelimit):
//   - scraper_rate_limit_waits_total (Counter): Rate limit suspensions before fetches
//   - scraper_rate_limit_wait_seconds_total (Counter): Cumulative suspension time
//
// Cache Metrics (pkg/cache):
//   - scraper_cache_hits_total (Counter): Page cache hits
//   - scraper_cache_misses_total (Counter): Page cache misses
//   - scraper_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   rate(scraper_cache_hits_total[5m]) /
//   (rate(scraper_cache_hits_total[5m]) + rate(scraper_cache_misses_total[5m]))
//
//   # Page Failure Rate
//   rate(scraper_pages_total{outcome="failed"}[5m]) / rate(scraper_pages_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(scraper_request_duration_seconds_bucket[5m]))
