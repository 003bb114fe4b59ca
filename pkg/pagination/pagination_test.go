package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func intPtr(v int) *int { return &v }

func TestDefaultParams(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: 20}, DefaultParams(0))
	assert.Equal(t, Params{Page: 1, Limit: 12}, DefaultParams(12))
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 20}},
		{"?page=3&limit=50", Params{Page: 3, Limit: 50}},
		{"?page=-1", Params{Page: 1, Limit: 20}},
		{"?page=0", Params{Page: 1, Limit: 20}},
		{"?page=abc", Params{Page: 1, Limit: 20}},
		{"?limit=500", Params{Page: 1, Limit: 20}},
		{"?limit=100", Params{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			assert.Equal(t, tt.want, FromRequest(req, DefaultLimit))
		})
	}
}

func TestParse_KeepsOutOfRangeForValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/storefront/products?page=0&limit=500", nil)
	p, err := Parse(req, DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 0, Limit: 500}, p)
}

func TestParse_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/storefront/products", nil)
	p, err := Parse(req, 24)
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, Limit: 24}, p)
}

func TestParse_NonNumeric(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/storefront/products?limit=ten", nil)
	_, err := Parse(req, DefaultLimit)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "limit")
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name       string
		params     Params
		count      int
		totalPages *int
		wantTotal  *int
		wantPrev   bool
		wantNext   bool
	}{
		{
			name:   "first full page without total",
			params: Params{Page: 1, Limit: 20}, count: 20,
			wantNext: true,
		},
		{
			name:   "short page is the last",
			params: Params{Page: 3, Limit: 20}, count: 7,
			wantTotal: intPtr(3), wantPrev: true,
		},
		{
			name:   "empty first page",
			params: Params{Page: 1, Limit: 20}, count: 0,
			wantTotal: intPtr(1),
		},
		{
			name:   "total from upstream wins",
			params: Params{Page: 2, Limit: 20}, count: 20, totalPages: intPtr(5),
			wantTotal: intPtr(5), wantPrev: true, wantNext: true,
		},
		{
			name:   "on last reported page",
			params: Params{Page: 5, Limit: 20}, count: 20, totalPages: intPtr(5),
			wantTotal: intPtr(5), wantPrev: true,
		},
		{
			name:   "zero total falls back to count",
			params: Params{Page: 1, Limit: 20}, count: 20, totalPages: intPtr(0),
			wantTotal: intPtr(0), wantNext: true,
		},
		{
			name:   "reported total overrides short page",
			params: Params{Page: 1, Limit: 20}, count: 3, totalPages: intPtr(4),
			wantTotal: intPtr(4), wantNext: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := Navigate(tt.params, tt.count, tt.totalPages)
			assert.Equal(t, tt.params.Page, nav.Page)
			assert.Equal(t, tt.wantTotal, nav.TotalPages)
			assert.Equal(t, tt.wantPrev, nav.CanPrev)
			assert.Equal(t, tt.wantNext, nav.CanNext)
		})
	}
}

func TestNav_Pages(t *testing.T) {
	nav := Nav{Page: 1}
	assert.Equal(t, 1, nav.PrevPage())
	assert.Equal(t, 2, nav.NextPage())

	nav = Nav{Page: 4}
	assert.Equal(t, 3, nav.PrevPage())
	assert.Equal(t, 5, nav.NextPage())
}
