package catalog

// at walks a decoded JSON value along steps, where a string step indexes an
// object and an int step indexes an array. It reports whether the final
// value is defined: present and not null. Walking into a scalar yields an
// undefined result rather than an error.
func at(v any, steps ...any) (any, bool) {
	cur := v
	for _, step := range steps {
		switch key := step.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			cur = obj[key]
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
		if cur == nil {
			return nil, false
		}
	}
	return cur, cur != nil
}

// field is at with a single object key.
func field(v any, key string) (any, bool) {
	return at(v, key)
}

// firstField returns the first defined value among keys of v.
func firstField(v any, keys ...string) (any, bool) {
	for _, k := range keys {
		if val, ok := field(v, k); ok {
			return val, true
		}
	}
	return nil, false
}

// truthy mirrors the loose truthiness the upstream contract was written
// against: empty strings, zero, false and null are falsy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}
