package runner

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the run context ends before the loop
// finishes. Distinct from completion and from fatal probe errors.
var ErrCancelled = errors.New("run cancelled")

// Stage identifies where in the per-page pipeline a failure occurred.
type Stage string

const (
	// StageFetch covers transport and decode failures.
	StageFetch Stage = "fetch"

	// StageExtract covers data-path resolution failures.
	StageExtract Stage = "extract"

	// StageWrite covers sink failures.
	StageWrite Stage = "write"
)

// ProbeError represents a fatal failure of the initial probe fetch or
// of total-count extraction. The run cannot proceed without a total.
type ProbeError struct {
	Err error
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe fetch failed: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// PageError represents a recoverable per-page failure. The page is
// skipped and the run continues.
type PageError struct {
	Page  int
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *PageError) Error() string {
	return fmt.Sprintf("page %d %s failed: %v", e.Page, e.Stage, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *PageError) Unwrap() error {
	return e.Err
}
