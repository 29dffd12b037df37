package paginate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Type identifies a pagination variant.
type Type string

const (
	// TypeOffset paginates with offset/limit query parameters.
	TypeOffset Type = "offset"

	// TypeCursor paginates with cursor/limit query parameters.
	// The cursor value is the page index itself, not an opaque token
	// returned by the server. Real cursor-chaining would need the next
	// cursor from each response; this engine does not follow it.
	TypeCursor Type = "cursor"

	// TypePage paginates with page/pageSize query parameters.
	TypePage Type = "page"
)

// ParseType converts a configuration string into a pagination Type.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(s)) {
	case TypeOffset:
		return TypeOffset, nil
	case TypeCursor:
		return TypeCursor, nil
	case TypePage:
		return TypePage, nil
	default:
		return "", fmt.Errorf("unknown pagination type %q (want offset, cursor or page)", s)
	}
}

// Strategy computes request parameters for one pagination variant.
type Strategy struct {
	Type     Type
	PageSize int
}

// NewStrategy validates and creates a pagination strategy.
func NewStrategy(t Type, pageSize int) (Strategy, error) {
	if _, err := ParseType(string(t)); err != nil {
		return Strategy{}, err
	}
	if pageSize <= 0 {
		return Strategy{}, fmt.Errorf("page size must be > 0 (got %d)", pageSize)
	}
	return Strategy{Type: t, PageSize: pageSize}, nil
}

// Params returns the query parameters for the given page index.
// Pure and deterministic: the same (type, page, pageSize) always yields
// the same parameter set, and no parameter is ever negative for page >= 1.
func (s Strategy) Params(page int) url.Values {
	params := url.Values{}

	switch s.Type {
	case TypeOffset:
		offset := (page - 1) * s.PageSize
		params.Set("offset", strconv.Itoa(offset))
		params.Set("limit", strconv.Itoa(s.PageSize))
	case TypeCursor:
		params.Set("cursor", strconv.Itoa(page))
		params.Set("limit", strconv.Itoa(s.PageSize))
	case TypePage:
		params.Set("page", strconv.Itoa(page))
		params.Set("pageSize", strconv.Itoa(s.PageSize))
	}

	return params
}

// TotalPages returns ceil(totalCount / pageSize).
// A total count of 0 yields 0 pages.
func TotalPages(totalCount int64, pageSize int) int {
	if totalCount <= 0 {
		return 0
	}
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}
