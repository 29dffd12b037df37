package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cwahlfeldt/api-scraper/pkg/paginate"
)

// Schema is an endpoint description document. It carries defaults for a
// run; any value also given on the command line wins over the schema.
type Schema struct {
	Endpoint struct {
		BaseURL string            `json:"baseUrl"`
		Headers map[string]string `json:"headers"`

		Pagination struct {
			Type           string `json:"paginationType"`
			PageSize       int    `json:"pageSize"`
			DataPath       string `json:"dataPath"`
			TotalCountPath string `json:"totalCountPath"`
		} `json:"pagination"`

		RateLimitMillis int64 `json:"rateLimitMillis"`
	} `json:"endpoint"`

	// ResponseMapping optionally renames fields in the saved payload.
	// Currently informational only; the payload is persisted verbatim.
	ResponseMapping map[string]string `json:"responseMapping"`
}

// LoadSchema reads and decodes a schema document from disk.
// Any failure here is a configuration error and fatal for the run.
func LoadSchema(path string) (*Schema, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var schema Schema
	if err := json.Unmarshal(contents, &schema); err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}

	return &schema, nil
}

// ApplyDefaults fills unset endpoint fields from the schema document.
// Fields already set (from flags) are left alone.
func (s *Schema) ApplyDefaults(e *Endpoint) {
	if e.BaseURL == "" {
		e.BaseURL = s.Endpoint.BaseURL
	}
	for key, value := range s.Endpoint.Headers {
		if _, exists := e.Headers[key]; !exists {
			if e.Headers == nil {
				e.Headers = make(map[string]string)
			}
			e.Headers[key] = value
		}
	}
	if e.Pagination.Type == "" && s.Endpoint.Pagination.Type != "" {
		e.Pagination.Type = paginate.Type(s.Endpoint.Pagination.Type)
	}
	if e.Pagination.PageSize == 0 {
		e.Pagination.PageSize = s.Endpoint.Pagination.PageSize
	}
	if e.Pagination.DataPath == "" {
		e.Pagination.DataPath = s.Endpoint.Pagination.DataPath
	}
	if e.Pagination.TotalCountPath == "" {
		e.Pagination.TotalCountPath = s.Endpoint.Pagination.TotalCountPath
	}
	if e.RateLimit == 0 && s.Endpoint.RateLimitMillis > 0 {
		e.RateLimit = time.Duration(s.Endpoint.RateLimitMillis) * time.Millisecond
	}
}
