package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidInput, ErrInternal, ErrServiceUnavail, ErrRateLimited, ErrForbidden,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	appErr := &AppError{Code: "UPSTREAM_ERROR", Message: "catalog down", Err: fmt.Errorf("dial tcp: refused")}
	assert.Contains(t, appErr.Error(), "UPSTREAM_ERROR")
	assert.Contains(t, appErr.Error(), "catalog down")
	assert.Contains(t, appErr.Error(), "dial tcp: refused")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "product not found"}
	assert.Equal(t, "NOT_FOUND: product not found", appErr.Error())
}

func TestAppError_Unwrap_Nil(t *testing.T) {
	appErr := &AppError{Code: "TEST", Message: "test"}
	assert.Nil(t, appErr.Unwrap())
}

func TestNotFound(t *testing.T) {
	err := NotFound("product", "blue-shirt")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "product blue-shirt not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("slug is required")
	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInternal(t *testing.T) {
	cause := errors.New("template exploded")
	err := Internal(cause)
	assert.Equal(t, "INTERNAL_ERROR", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestUpstream_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("fetch products: %w", ErrServiceUnavail)
	err := Upstream(cause)
	assert.Equal(t, "UPSTREAM_ERROR", err.Code)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.ErrorIs(t, err, ErrServiceUnavail)
}

func TestUpstream_NilCause(t *testing.T) {
	err := Upstream(nil)
	assert.ErrorIs(t, err, ErrServiceUnavail)
}

func TestRateLimited(t *testing.T) {
	err := RateLimited()
	assert.Equal(t, "RATE_LIMITED", err.Code)
	assert.Equal(t, http.StatusTooManyRequests, err.Status)
}

func TestForbidden(t *testing.T) {
	err := Forbidden("metrics are internal")
	assert.Equal(t, "FORBIDDEN", err.Code)
	assert.Equal(t, http.StatusForbidden, err.Status)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "load product")
	assert.Equal(t, "load product: resource not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", InvalidInput("bad"), http.StatusBadRequest},
		{"wrapped app error", fmt.Errorf("ctx: %w", Upstream(nil)), http.StatusBadGateway},
		{"not found sentinel", fmt.Errorf("x: %w", ErrNotFound), http.StatusNotFound},
		{"invalid sentinel", ErrInvalidInput, http.StatusBadRequest},
		{"unavailable sentinel", fmt.Errorf("x: %w", ErrServiceUnavail), http.StatusBadGateway},
		{"rate limited sentinel", ErrRateLimited, http.StatusTooManyRequests},
		{"forbidden sentinel", fmt.Errorf("x: %w", ErrForbidden), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
