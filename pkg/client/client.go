// Package client provides the HTTP collaborator for the scraper:
// request construction, response decoding, optional response caching,
// and error classification.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cwahlfeldt/api-scraper/pkg/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for scraper requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_requests_total",
		Help: "Total API requests by status",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scraper_request_duration_seconds",
		Help:    "API request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_errors_total",
		Help: "Total request errors by class",
	}, []string{"class"})
)

// Client is the HTTP collaborator used to fetch pages.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the endpoint every page request is sent to.
	BaseURL string

	// Headers are added to every request.
	Headers map[string]string

	// Timeout bounds each request (default: 30s).
	Timeout time.Duration

	// Cache enables the Redis response cache when non-nil.
	Cache *cache.Manager

	// CacheTTL is the lifetime of cached page responses.
	CacheTTL time.Duration
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Cache != nil && cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	logger := log.With().Str("component", "api-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// FetchPage performs a GET against the configured endpoint with the given
// pagination parameters and returns the decoded JSON document. Numeric
// fields are decoded as json.Number so integer total counts stay exact.
//
// Non-2xx statuses, network failures and undecodable bodies all return a
// *RequestError carrying the error class.
func (c *Client) FetchPage(ctx context.Context, params url.Values) (map[string]any, error) {
	cacheKey := cache.Key{
		Endpoint:    c.config.BaseURL,
		QueryParams: params,
	}

	if c.config.Cache != nil {
		if entry, err := c.config.Cache.Get(ctx, cacheKey); err == nil {
			doc, decodeErr := decode(entry.Body)
			if decodeErr == nil {
				c.logger.Debug().
					Str("params", params.Encode()).
					Dur("age", entry.Age()).
					Msg("Serving page from cache")
				return doc, nil
			}
			c.logger.Warn().Err(decodeErr).Msg("Corrupt cache entry, fetching from API")
		} else if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Msg("Cache get error")
		}
	}

	requestURL := c.config.BaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for key, value := range c.config.Headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("url", c.config.BaseURL).
		Str("params", params.Encode()).
		Msg("Executing API request")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.Observe(time.Since(startTime).Seconds())

	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Str("params", params.Encode()).Msg("HTTP request failed")
		return nil, &RequestError{
			ErrorClass: ErrorClassNetwork,
			Message:    "request failed",
			Err:        err,
		}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errClass := classifyStatus(resp.StatusCode)
		errorsTotal.WithLabelValues(string(errClass)).Inc()
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("API request error")
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassNetwork,
			Message:    "read response body",
			Err:        err,
		}
	}

	doc, err := decode(body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassDecode,
			Message:    "decode response body",
			Err:        err,
		}
	}

	if c.config.Cache != nil {
		entry := &cache.Entry{
			Body:       body,
			StatusCode: resp.StatusCode,
			CachedAt:   time.Now(),
		}
		if err := c.config.Cache.Set(ctx, cacheKey, entry, c.config.CacheTTL); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to cache response")
		}
	}

	return doc, nil
}

// decode parses a JSON response body into a generic document, keeping
// numeric fields as json.Number.
func decode(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
