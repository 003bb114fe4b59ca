package domain

import (
	stdjson "encoding/json"
	"strconv"

	"github.com/utafrali/storefront/pkg/json"
)

// Flex is a scalar the upstream sends either as a JSON string or a JSON
// number. Identifiers, prices and discounts all arrive this way.
type Flex struct {
	text   string
	number float64
	isNum  bool
}

// FlexString returns a Flex holding a string.
func FlexString(s string) Flex {
	return Flex{text: s}
}

// FlexNumber returns a Flex holding a number.
func FlexNumber(n float64) Flex {
	return Flex{number: n, isNum: true}
}

// FlexFrom converts a decoded JSON value. Booleans and composite values are
// kept as their textual (JSON) form.
func FlexFrom(v any) Flex {
	switch t := v.(type) {
	case nil:
		return Flex{}
	case string:
		return FlexString(t)
	case float64:
		return FlexNumber(t)
	case float32:
		return FlexNumber(float64(t))
	case int:
		return FlexNumber(float64(t))
	case int64:
		return FlexNumber(float64(t))
	case stdjson.Number:
		if n, err := t.Float64(); err == nil {
			return FlexNumber(n)
		}
		return FlexString(t.String())
	case bool:
		return FlexString(strconv.FormatBool(t))
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return Flex{}
		}
		return FlexString(string(b))
	}
}

// IsNumber reports whether the value arrived as a number.
func (f Flex) IsNumber() bool {
	return f.isNum
}

// Number returns the numeric value and whether the Flex holds one.
func (f Flex) Number() (float64, bool) {
	return f.number, f.isNum
}

// IsZero reports whether the value is 0 or the empty string.
func (f Flex) IsZero() bool {
	if f.isNum {
		return f.number == 0
	}
	return f.text == ""
}

func (f Flex) String() string {
	if f.isNum {
		return strconv.FormatFloat(f.number, 'f', -1, 64)
	}
	return f.text
}

// Value returns the underlying string or float64.
func (f Flex) Value() any {
	if f.isNum {
		return f.number
	}
	return f.text
}

func (f Flex) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value())
}

func (f *Flex) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFrom(v)
	return nil
}

func (f Flex) MarshalYAML() (any, error) {
	return f.Value(), nil
}
