// Package json is the JSON codec used for upstream payloads and API
// responses. It is a drop-in for encoding/json backed by json-iterator.
package json

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var (
	// JSON is the codec instance shared across the codebase.
	JSON = jsoniter.ConfigCompatibleWithStandardLibrary

	// Marshal is a shorthand for JSON.Marshal.
	Marshal = JSON.Marshal

	// Unmarshal is a shorthand for JSON.Unmarshal.
	Unmarshal = JSON.Unmarshal

	// NewDecoder is a shorthand for JSON.NewDecoder.
	NewDecoder = JSON.NewDecoder

	// NewEncoder is a shorthand for JSON.NewEncoder.
	NewEncoder = JSON.NewEncoder
)

// DecodeAny reads a single JSON document from r into a generic value:
// objects become map[string]any, arrays []any and numbers float64.
func DecodeAny(r io.Reader) (any, error) {
	var v any
	if err := NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
