package domain

import "github.com/utafrali/storefront/pkg/json"

// SpecKind describes the shape the upstream used for specifications.
type SpecKind int

const (
	// SpecMapping is a name to value object.
	SpecMapping SpecKind = iota
	// SpecPairs is an ordered array, normally of {key, value} objects.
	SpecPairs
	// SpecOther is any other JSON value.
	SpecOther
)

// Specifications keeps the upstream specification value in its original
// shape. Consumers inspect Kind and handle both forms at render time.
type Specifications struct {
	raw any
}

// NewSpecifications wraps a decoded JSON value. A nil value becomes an empty
// mapping.
func NewSpecifications(v any) Specifications {
	if v == nil {
		v = map[string]any{}
	}
	return Specifications{raw: v}
}

// Raw returns the value exactly as decoded.
func (s Specifications) Raw() any {
	if s.raw == nil {
		return map[string]any{}
	}
	return s.raw
}

// Kind reports the shape of the value.
func (s Specifications) Kind() SpecKind {
	switch s.Raw().(type) {
	case map[string]any:
		return SpecMapping
	case []any:
		return SpecPairs
	default:
		return SpecOther
	}
}

// Mapping returns the value as a mapping when Kind is SpecMapping.
func (s Specifications) Mapping() (map[string]any, bool) {
	m, ok := s.Raw().(map[string]any)
	return m, ok
}

// Pairs returns the value as a sequence when Kind is SpecPairs.
func (s Specifications) Pairs() ([]any, bool) {
	p, ok := s.Raw().([]any)
	return p, ok
}

func (s Specifications) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Raw())
}

func (s *Specifications) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = NewSpecifications(v)
	return nil
}

func (s Specifications) MarshalYAML() (any, error) {
	return s.Raw(), nil
}
