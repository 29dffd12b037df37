package cache

import (
	"net/url"
	"testing"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{
			name:     "endpoint only",
			key:      Key{Endpoint: "https://api.example.com/items"},
			expected: "scrape:https://api.example.com/items",
		},
		{
			name: "trailing slash normalized",
			key:  Key{Endpoint: "https://api.example.com/items/"},
			expected: "scrape:https://api.example.com/items",
		},
		{
			name: "query params sorted",
			key: Key{
				Endpoint:    "https://api.example.com/items",
				QueryParams: url.Values{"offset": {"500"}, "limit": {"250"}},
			},
			expected: "scrape:https://api.example.com/items:limit=250:offset=500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.key.String()
			if result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestKey_String_Deterministic(t *testing.T) {
	key := Key{
		Endpoint: "https://api.example.com/items",
		QueryParams: url.Values{
			"page":     {"3"},
			"pageSize": {"100"},
		},
	}

	first := key.String()
	for i := 0; i < 100; i++ {
		if key.String() != first {
			t.Fatal("Key generation is not deterministic")
		}
	}
}
