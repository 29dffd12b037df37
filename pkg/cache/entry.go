package cache

import (
	"time"
)

// Entry represents a cached page response.
type Entry struct {
	// Body is the raw JSON response body.
	Body []byte `json:"body"`

	// StatusCode is the HTTP status code of the cached response.
	StatusCode int `json:"status_code"`

	// CachedAt is when the response was stored.
	CachedAt time.Time `json:"cached_at"`
}

// Age returns how long ago the entry was cached.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CachedAt)
}
