package paginate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FieldNotFoundError indicates a configured response path did not resolve
// to a usable value in a response document.
type FieldNotFoundError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FieldNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("field %q not found in response: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("field %q not found in response", e.Path)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FieldNotFoundError) Unwrap() error {
	return e.Err
}

// fieldName normalizes a configured path to a top-level field name.
// Paths are flat: a single leading slash is tolerated, nested segments
// are not traversed.
func fieldName(path string) string {
	return strings.TrimPrefix(path, "/")
}

// TotalCount resolves the configured total-count path in a decoded
// response document. The field must hold a 64-bit integer; anything else
// is a FieldNotFoundError. Documents must be decoded with json.Number
// for numeric fields to survive intact (see client.decode).
func TotalCount(doc map[string]any, path string) (int64, error) {
	raw, ok := doc[fieldName(path)]
	if !ok {
		return 0, &FieldNotFoundError{Path: path}
	}

	num, ok := raw.(json.Number)
	if !ok {
		return 0, &FieldNotFoundError{Path: path, Err: fmt.Errorf("value is %T, want integer", raw)}
	}

	count, err := num.Int64()
	if err != nil {
		return 0, &FieldNotFoundError{Path: path, Err: err}
	}

	return count, nil
}

// Data resolves the configured data path in a decoded response document
// and returns the value verbatim (array, object or scalar). The caller
// decides what to do with it.
func Data(doc map[string]any, path string) (any, error) {
	raw, ok := doc[fieldName(path)]
	if !ok {
		return nil, &FieldNotFoundError{Path: path}
	}
	return raw, nil
}
