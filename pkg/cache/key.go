package cache

import (
	"net/url"
	"sort"
	"strings"
)

// Key represents a unique identifier for a cached page response.
type Key struct {
	// Endpoint is the full endpoint URL (e.g., "https://api.example.com/items").
	Endpoint string

	// QueryParams are the pagination query parameters for the page.
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: scrape:endpoint:param1=val1:param2=val2
//
// Example:
//
//	scrape:https://api.example.com/items:limit=250:offset=500
func (k Key) String() string {
	parts := []string{"scrape"}

	endpoint := strings.TrimRight(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted for determinism.
	if len(k.QueryParams) > 0 {
		keys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			parts = append(parts, key+"="+k.QueryParams.Get(key))
		}
	}

	return strings.Join(parts, ":")
}
