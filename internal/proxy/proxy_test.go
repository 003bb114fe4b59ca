package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/pkg/json"
	"github.com/utafrali/storefront/pkg/logger"
)

func TestNew_RejectsRelativeTarget(t *testing.T) {
	_, err := New(DefaultConfig("api.buzfi.com"), logger.Discard())
	assert.Error(t, err)

	_, err = New(DefaultConfig("://bad"), logger.Discard())
	assert.Error(t, err)
}

func TestUpstreamProxy_ForwardsPathAndQuery(t *testing.T) {
	var gotPath, gotQuery, gotHost, gotForwardedHost, gotAccept string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotHost = r.Host
		gotForwardedHost = r.Header.Get("X-Forwarded-Host")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"data":[]}`)
	}))
	defer backend.Close()

	p, err := New(DefaultConfig(backend.URL), logger.Discard())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "http://shop.test/api/v3/products?page=2&limit=20", nil)
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	p.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"data":[]}`, rr.Body.String())
	assert.Equal(t, "yes", rr.Header().Get("X-Upstream"))

	assert.Equal(t, "/api/v3/products", gotPath)
	assert.Equal(t, "page=2&limit=20", gotQuery)
	assert.Equal(t, backend.Listener.Addr().String(), gotHost)
	assert.Equal(t, "shop.test", gotForwardedHost)
	assert.Equal(t, "application/json", gotAccept)
}

func TestUpstreamProxy_PassesUpstreamErrors(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer backend.Close()

	p, err := New(DefaultConfig(backend.URL), logger.Discard())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	p.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v3/products/details?slug=x", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpstreamProxy_UnreachableIsBadGateway(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	target := backend.URL
	backend.Close()

	p, err := New(DefaultConfig(target), logger.Discard())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	p.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v3/products", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "UPSTREAM_ERROR", body.Error.Code)
	assert.Equal(t, "the catalog is temporarily unavailable", body.Error.Message)
}
