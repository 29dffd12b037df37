package runner

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Reporter receives run progress events. These are observability
// signals, not part of the data contract.
type Reporter interface {
	// RunPlanned is called once after the probe, with the discovered
	// total item count and the planned page count.
	RunPlanned(totalCount int64, totalPages int)

	// PageFetching is called before each page fetch.
	PageFetching(page, totalPages int)

	// PageSaved is called after a page's payload reaches the sink.
	PageSaved(page int, filename string)

	// PageFailed is called when a page is skipped. err is a *PageError.
	PageFailed(page int, err error)

	// RunCompleted is called once after the loop exhausts.
	RunCompleted(saved, totalPages int)
}

// LogReporter reports run progress through zerolog.
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates the default reporter.
func NewLogReporter() *LogReporter {
	return &LogReporter{
		logger: log.With().Str("component", "runner").Logger(),
	}
}

// RunPlanned implements Reporter.
func (r *LogReporter) RunPlanned(totalCount int64, totalPages int) {
	r.logger.Info().
		Int64("total_items", totalCount).
		Int("total_pages", totalPages).
		Msg("Run planned")
}

// PageFetching implements Reporter.
func (r *LogReporter) PageFetching(page, totalPages int) {
	r.logger.Info().
		Int("page", page).
		Int("total_pages", totalPages).
		Msg("Fetching page")
}

// PageSaved implements Reporter.
func (r *LogReporter) PageSaved(page int, filename string) {
	r.logger.Info().
		Int("page", page).
		Str("file", filename).
		Msg("Saved page")
}

// PageFailed implements Reporter.
func (r *LogReporter) PageFailed(page int, err error) {
	r.logger.Error().
		Err(err).
		Int("page", page).
		Msg("Page failed, skipping")
}

// RunCompleted implements Reporter.
func (r *LogReporter) RunCompleted(saved, totalPages int) {
	r.logger.Info().
		Int("saved", saved).
		Int("total_pages", totalPages).
		Msg("Download complete")
}
