// Command api-scraper downloads every page of a paginated JSON API into
// per-page files, driven by CLI flags and an optional schema document.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cwahlfeldt/api-scraper/pkg/cache"
	"github.com/cwahlfeldt/api-scraper/pkg/client"
	"github.com/cwahlfeldt/api-scraper/pkg/config"
	"github.com/cwahlfeldt/api-scraper/pkg/logging"
	"github.com/cwahlfeldt/api-scraper/pkg/paginate"
	"github.com/cwahlfeldt/api-scraper/pkg/ratelimit"
	"github.com/cwahlfeldt/api-scraper/pkg/runner"
	"github.com/cwahlfeldt/api-scraper/pkg/sink"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	schemaPath      string
	baseURL         string
	apiKey          string
	headers         []string
	outputDir       string
	pageSize        int
	rateLimitMillis int64
	paginationType  string
	dataPath        string
	totalCountPath  string
	redisAddr       string
	cacheTTL        time.Duration
	logLevel        string
	pretty          bool
}

func newRootCommand() (*cobra.Command, *options) {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "api-scraper",
		Short: "Download every page of a paginated JSON API",
		Long: `api-scraper paginates through a remote HTTP API whose pagination
style, field locations and rate limit are configured rather than
hard-coded, and saves each page's data array as page_<N>.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.schemaPath, "schema", "s", "", "Path to the schema JSON file")
	flags.StringVarP(&opts.baseURL, "url", "u", "", "Base URL for the API")
	flags.StringVarP(&opts.apiKey, "api-key", "a", "", "API key, sent as Authorization: Bearer")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, "Header key=value pairs (repeatable)")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "output", "Output directory")
	flags.IntVarP(&opts.pageSize, "page-size", "p", 250, "Page size")
	flags.Int64VarP(&opts.rateLimitMillis, "rate-limit", "r", 100, "Rate limit delay in milliseconds")
	flags.StringVar(&opts.paginationType, "pagination-type", "page", "Pagination type (offset, cursor, page)")
	flags.StringVar(&opts.dataPath, "data-path", "data", "Response path to the data array")
	flags.StringVar(&opts.totalCountPath, "total-count-path", "totalCount", "Response path to the total count")
	flags.StringVar(&opts.redisAddr, "redis", "", "Redis address enabling the page response cache")
	flags.DurationVar(&opts.cacheTTL, "cache-ttl", 5*time.Minute, "TTL for cached page responses")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.BoolVar(&opts.pretty, "pretty", false, "Human-readable console logging")

	return cmd, opts
}

// buildEndpoint merges flags over the optional schema document and fills
// the remaining built-in defaults. Flags the user actually set always
// win; untouched flags defer to the schema.
func buildEndpoint(cmd *cobra.Command, opts *options) (*config.Endpoint, error) {
	headers, err := parseHeaders(opts.headers)
	if err != nil {
		return nil, err
	}
	if opts.apiKey != "" {
		headers["Authorization"] = "Bearer " + opts.apiKey
	}

	endpoint := &config.Endpoint{
		BaseURL:   opts.baseURL,
		Headers:   headers,
		OutputDir: opts.outputDir,
		RedisAddr: opts.redisAddr,
		CacheTTL:  opts.cacheTTL,
	}

	set := cmd.Flags().Changed
	if set("pagination-type") {
		endpoint.Pagination.Type = paginate.Type(opts.paginationType)
	}
	if set("page-size") {
		endpoint.Pagination.PageSize = opts.pageSize
	}
	if set("data-path") {
		endpoint.Pagination.DataPath = opts.dataPath
	}
	if set("total-count-path") {
		endpoint.Pagination.TotalCountPath = opts.totalCountPath
	}
	if set("rate-limit") {
		endpoint.RateLimit = time.Duration(opts.rateLimitMillis) * time.Millisecond
	}

	if opts.schemaPath != "" {
		schema, err := config.LoadSchema(opts.schemaPath)
		if err != nil {
			return nil, err
		}
		schema.ApplyDefaults(endpoint)
	}

	// Built-in defaults for anything neither flags nor schema set.
	if endpoint.Pagination.Type == "" {
		endpoint.Pagination.Type = paginate.Type(opts.paginationType)
	}
	if endpoint.Pagination.PageSize == 0 {
		endpoint.Pagination.PageSize = opts.pageSize
	}
	if endpoint.Pagination.DataPath == "" {
		endpoint.Pagination.DataPath = opts.dataPath
	}
	if endpoint.Pagination.TotalCountPath == "" {
		endpoint.Pagination.TotalCountPath = opts.totalCountPath
	}
	if endpoint.RateLimit == 0 && !set("rate-limit") {
		endpoint.RateLimit = time.Duration(opts.rateLimitMillis) * time.Millisecond
	}

	if err := endpoint.Validate(); err != nil {
		return nil, err
	}
	return endpoint, nil
}

// parseHeaders converts key=value strings into a header map.
func parseHeaders(pairs []string) (map[string]string, error) {
	headers := make(map[string]string)
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid header %q: want key=value", pair)
		}
		headers[key] = value
	}
	return headers, nil
}

func run(cmd *cobra.Command, opts *options) error {
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(opts.logLevel),
		Pretty: opts.pretty,
		Output: os.Stderr,
	})

	endpoint, err := buildEndpoint(cmd, opts)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pageCache *cache.Manager
	if endpoint.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: endpoint.RedisAddr,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("connect to Redis at %s: %w", endpoint.RedisAddr, err)
		}

		pageCache = cache.NewManager(redisClient)
		log.Info().Str("addr", endpoint.RedisAddr).Msg("Page response cache enabled")
	}

	apiClient, err := client.New(client.Config{
		BaseURL:  endpoint.BaseURL,
		Headers:  endpoint.Headers,
		Cache:    pageCache,
		CacheTTL: endpoint.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	strategy, err := paginate.NewStrategy(endpoint.Pagination.Type, endpoint.Pagination.PageSize)
	if err != nil {
		return err
	}

	fileSink, err := sink.NewFileSink(endpoint.OutputDir)
	if err != nil {
		return err
	}

	r, err := runner.New(runner.Config{
		Fetcher:        apiClient,
		Strategy:       strategy,
		Limiter:        ratelimit.New(endpoint.RateLimit, logging.NewLogger("ratelimit")),
		Sink:           fileSink,
		DataPath:       endpoint.Pagination.DataPath,
		TotalCountPath: endpoint.Pagination.TotalCountPath,
	})
	if err != nil {
		return err
	}

	if err := r.Run(ctx); err != nil {
		return err
	}

	log.Info().Str("output_dir", endpoint.OutputDir).Msg("Files saved")
	return nil
}

func main() {
	cmd, _ := newRootCommand()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}
