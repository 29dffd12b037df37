// Package sink persists extracted page payloads. The file sink writes
// one pretty-printed JSON file per page into an output directory.
package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Sink durably stores one page's extracted data, keyed by page index.
// Write returns a description of the destination (the filename for the
// file sink) for progress reporting.
type Sink interface {
	Write(page int, data any) (string, error)
}

// FileSink writes page payloads as page_<N>.json files.
type FileSink struct {
	outputDir string
}

// NewFileSink creates the output directory if needed and returns a sink
// writing into it.
func NewFileSink(outputDir string) (*FileSink, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &FileSink{outputDir: outputDir}, nil
}

// Filename returns the output path for a page index.
func (s *FileSink) Filename(page int) string {
	return filepath.Join(s.outputDir, fmt.Sprintf("page_%d.json", page))
}

// Write persists one page's payload as pretty-printed JSON, overwriting
// any existing file for the same page index.
func (s *FileSink) Write(page int, data any) (string, error) {
	contents, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode page %d: %w", page, err)
	}

	filename := s.Filename(page)
	if err := os.WriteFile(filename, contents, 0644); err != nil {
		return "", fmt.Errorf("write page %d: %w", page, err)
	}

	return filename, nil
}
