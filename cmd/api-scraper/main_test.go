package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwahlfeldt/api-scraper/pkg/paginate"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		expected    map[string]string
		expectError bool
	}{
		{
			name:     "empty",
			input:    nil,
			expected: map[string]string{},
		},
		{
			name:     "single pair",
			input:    []string{"X-Api-Key=secret"},
			expected: map[string]string{"X-Api-Key": "secret"},
		},
		{
			name:     "value containing equals",
			input:    []string{"Authorization=Bearer a=b"},
			expected: map[string]string{"Authorization": "Bearer a=b"},
		},
		{
			name:        "no equals sign",
			input:       []string{"X-Api-Key"},
			expectError: true,
		},
		{
			name:        "empty key",
			input:       []string{"=value"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers, err := parseHeaders(tt.input)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHeaders() error = %v", err)
			}
			if len(headers) != len(tt.expected) {
				t.Fatalf("headers = %v, want %v", headers, tt.expected)
			}
			for key, want := range tt.expected {
				if headers[key] != want {
					t.Errorf("headers[%q] = %q, want %q", key, headers[key], want)
				}
			}
		})
	}
}

func TestBuildEndpoint_Defaults(t *testing.T) {
	cmd, opts := newRootCommand()
	if err := cmd.ParseFlags([]string{"--url", "https://api.example.com/items"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	endpoint, err := buildEndpoint(cmd, opts)
	if err != nil {
		t.Fatalf("buildEndpoint() error = %v", err)
	}

	if endpoint.Pagination.Type != paginate.TypePage {
		t.Errorf("Type = %q, want page", endpoint.Pagination.Type)
	}
	if endpoint.Pagination.PageSize != 250 {
		t.Errorf("PageSize = %d, want 250", endpoint.Pagination.PageSize)
	}
	if endpoint.Pagination.DataPath != "data" {
		t.Errorf("DataPath = %q, want data", endpoint.Pagination.DataPath)
	}
	if endpoint.Pagination.TotalCountPath != "totalCount" {
		t.Errorf("TotalCountPath = %q, want totalCount", endpoint.Pagination.TotalCountPath)
	}
	if endpoint.RateLimit != 100*time.Millisecond {
		t.Errorf("RateLimit = %v, want 100ms", endpoint.RateLimit)
	}
	if endpoint.OutputDir != "output" {
		t.Errorf("OutputDir = %q, want output", endpoint.OutputDir)
	}
}

func TestBuildEndpoint_ApiKeyHeader(t *testing.T) {
	cmd, opts := newRootCommand()
	args := []string{
		"--url", "https://api.example.com/items",
		"--api-key", "secret",
		"-H", "Accept=application/json",
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	endpoint, err := buildEndpoint(cmd, opts)
	if err != nil {
		t.Fatalf("buildEndpoint() error = %v", err)
	}

	if endpoint.Headers["Authorization"] != "Bearer secret" {
		t.Errorf("Authorization = %q", endpoint.Headers["Authorization"])
	}
	if endpoint.Headers["Accept"] != "application/json" {
		t.Errorf("Accept = %q", endpoint.Headers["Accept"])
	}
}

func TestBuildEndpoint_SchemaMerge(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	schemaDoc := `{
		"endpoint": {
			"baseUrl": "https://schema.example.com/items",
			"pagination": {
				"paginationType": "offset",
				"pageSize": 50,
				"dataPath": "results",
				"totalCountPath": "count"
			},
			"rateLimitMillis": 500
		}
	}`
	if err := os.WriteFile(schemaPath, []byte(schemaDoc), 0644); err != nil {
		t.Fatalf("Failed to write schema: %v", err)
	}

	t.Run("schema fills untouched flags", func(t *testing.T) {
		cmd, opts := newRootCommand()
		if err := cmd.ParseFlags([]string{"--schema", schemaPath}); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}

		endpoint, err := buildEndpoint(cmd, opts)
		if err != nil {
			t.Fatalf("buildEndpoint() error = %v", err)
		}

		if endpoint.BaseURL != "https://schema.example.com/items" {
			t.Errorf("BaseURL = %q", endpoint.BaseURL)
		}
		if endpoint.Pagination.Type != paginate.TypeOffset {
			t.Errorf("Type = %q, want offset", endpoint.Pagination.Type)
		}
		if endpoint.Pagination.PageSize != 50 {
			t.Errorf("PageSize = %d, want 50", endpoint.Pagination.PageSize)
		}
		if endpoint.RateLimit != 500*time.Millisecond {
			t.Errorf("RateLimit = %v, want 500ms", endpoint.RateLimit)
		}
	})

	t.Run("explicit flags win over schema", func(t *testing.T) {
		cmd, opts := newRootCommand()
		args := []string{"--schema", schemaPath, "--page-size", "100", "--pagination-type", "cursor"}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}

		endpoint, err := buildEndpoint(cmd, opts)
		if err != nil {
			t.Fatalf("buildEndpoint() error = %v", err)
		}

		if endpoint.Pagination.PageSize != 100 {
			t.Errorf("PageSize = %d, want 100", endpoint.Pagination.PageSize)
		}
		if endpoint.Pagination.Type != paginate.TypeCursor {
			t.Errorf("Type = %q, want cursor", endpoint.Pagination.Type)
		}
		// Untouched fields still come from the schema.
		if endpoint.Pagination.DataPath != "results" {
			t.Errorf("DataPath = %q, want results", endpoint.Pagination.DataPath)
		}
	})
}

func TestBuildEndpoint_Errors(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		cmd, opts := newRootCommand()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}
		if _, err := buildEndpoint(cmd, opts); err == nil {
			t.Error("Expected error for missing base URL")
		}
	})

	t.Run("bad header", func(t *testing.T) {
		cmd, opts := newRootCommand()
		if err := cmd.ParseFlags([]string{"--url", "https://api.example.com", "-H", "bogus"}); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}
		if _, err := buildEndpoint(cmd, opts); err == nil {
			t.Error("Expected error for malformed header")
		}
	})

	t.Run("missing schema file", func(t *testing.T) {
		cmd, opts := newRootCommand()
		args := []string{"--url", "https://api.example.com", "--schema", "/nonexistent/schema.json"}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("ParseFlags() error = %v", err)
		}
		if _, err := buildEndpoint(cmd, opts); err == nil {
			t.Error("Expected error for unreadable schema")
		}
	})
}
