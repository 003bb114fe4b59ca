package catalog

import "strings"

// SanitizeImageURL cleans an upstream image reference. Whitespace is
// trimmed, a single trailing ")" is dropped, surrounding quote characters are
// removed and protocol-relative URLs get an explicit https scheme.
// Non-string input yields ok == false.
func SanitizeImageURL(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	u := strings.TrimSpace(s)
	u = strings.TrimSuffix(u, ")")
	u = strings.Trim(u, `'"`)
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	return u, true
}

// imageOrPlaceholder sanitizes v and falls back to the placeholder asset
// when the result is absent or empty.
func imageOrPlaceholder(v any) string {
	if u, ok := SanitizeImageURL(v); ok && u != "" {
		return u
	}
	return placeholder
}
