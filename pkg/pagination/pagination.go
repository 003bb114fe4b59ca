package pagination

import (
	"fmt"
	"net/http"
	"strconv"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page  int `json:"page" query:"page" validate:"gte=1"`
	Limit int `json:"limit" query:"limit" validate:"gte=1,lte=100"`
}

// DefaultParams returns the first page with the given page size, or
// DefaultLimit when limit is not positive.
func DefaultParams(limit int) Params {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Params{Page: 1, Limit: limit}
}

// FromRequest extracts pagination parameters leniently: missing or
// unusable values fall back to the defaults. Used by the HTML pages.
func FromRequest(r *http.Request, defaultLimit int) Params {
	p := DefaultParams(defaultLimit)

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= MaxLimit {
			p.Limit = v
		}
	}

	return p
}

// Parse extracts pagination parameters strictly. Non-numeric values are an
// ErrInvalidInput; range checks are left to the validator tags on Params.
func Parse(r *http.Request, defaultLimit int) (Params, error) {
	p := DefaultParams(defaultLimit)
	q := r.URL.Query()

	for _, f := range []struct {
		name string
		dst  *int
	}{{"page", &p.Page}, {"limit", &p.Limit}} {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("%s must be an integer: %w", f.name, apperrors.ErrInvalidInput)
		}
		*f.dst = v
	}

	return p, nil
}

// Nav is the navigation state of a listing page.
type Nav struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages *int `json:"totalPages,omitempty"`
	CanPrev    bool `json:"canPrev"`
	CanNext    bool `json:"canNext"`
}

// PrevPage returns the previous page number, never below 1.
func (n Nav) PrevPage() int {
	if n.Page <= 1 {
		return 1
	}
	return n.Page - 1
}

// NextPage returns the page after the current one.
func (n Nav) NextPage() int {
	return n.Page + 1
}

// Navigate derives listing navigation from the requested page, the number of
// items that arrived and the upstream's totalPages, if any. A short page with
// no reported total is taken to be the last one. Without a usable total, a
// full page implies there may be another.
func Navigate(p Params, count int, totalPages *int) Nav {
	nav := Nav{Page: p.Page, Limit: p.Limit, TotalPages: totalPages}
	if nav.TotalPages == nil && count < p.Limit {
		last := p.Page
		nav.TotalPages = &last
	}

	nav.CanPrev = p.Page > 1
	if nav.TotalPages != nil && *nav.TotalPages != 0 {
		nav.CanNext = p.Page < *nav.TotalPages
	} else {
		nav.CanNext = count == p.Limit
	}
	return nav
}
