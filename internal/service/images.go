package service

import (
	"net/url"
	"sort"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
)

// ImagePolicy restricts absolute image URLs to a set of origins. Relative
// paths are always served. An empty policy allows every origin.
type ImagePolicy struct {
	origins map[string]struct{}
}

// NewImagePolicy builds a policy from origins such as
// "https://cdn.example.com". Entries are matched on scheme and host.
func NewImagePolicy(origins []string) *ImagePolicy {
	p := &ImagePolicy{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		u, err := url.Parse(strings.TrimSpace(o))
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		p.origins[origin(u)] = struct{}{}
	}
	return p
}

// Origins returns the allowed origins in sorted order.
func (p *ImagePolicy) Origins() []string {
	out := make([]string, 0, len(p.origins))
	for o := range p.origins {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// Allowed reports whether raw may be rendered as an image source.
func (p *ImagePolicy) Allowed(raw string) bool {
	if len(p.origins) == 0 {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if !u.IsAbs() {
		return u.Host == ""
	}
	_, ok := p.origins[origin(u)]
	return ok
}

// Resolve returns raw when it is allowed and the placeholder otherwise.
func (p *ImagePolicy) Resolve(raw string) string {
	if raw == "" || !p.Allowed(raw) {
		return domain.PlaceholderImage
	}
	return raw
}

func origin(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}
