// Package ratelimit implements the fixed-interval outbound request
// throttle. The limiter is a cooperative suspension point: the run
// controller waits on it before every page fetch, and the wait is the
// only place execution yields. It throttles request rate only; ordering
// is already guaranteed by sequential iteration.
package ratelimit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limiting.
var (
	rateLimitWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_rate_limit_waits_total",
		Help: "Total number of rate limit suspensions before page fetches",
	})

	rateLimitWaitSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_rate_limit_wait_seconds_total",
		Help: "Cumulative time spent suspended on the rate limiter",
	})
)

// Limiter throttles outbound requests to one per configured interval.
type Limiter struct {
	interval time.Duration
	logger   zerolog.Logger
}

// New creates a limiter with the given interval. A zero interval
// disables throttling; Wait then only checks for cancellation.
func New(interval time.Duration, logger zerolog.Logger) *Limiter {
	if interval < 0 {
		interval = 0
	}
	return &Limiter{
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the configured delay.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait suspends for the configured interval, honoring cancellation.
// Returns the context error if the context ends before the interval
// elapses.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval == 0 {
		return ctx.Err()
	}

	rateLimitWaitsTotal.Inc()
	rateLimitWaitSeconds.Add(l.interval.Seconds())

	l.logger.Debug().Dur("interval", l.interval).Msg("Rate limit wait")

	select {
	case <-ctx.Done():
		l.logger.Warn().Msg("Context cancelled during rate limit wait")
		return ctx.Err()
	case <-time.After(l.interval):
		return nil
	}
}
