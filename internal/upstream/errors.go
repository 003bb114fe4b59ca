package upstream

import (
	"fmt"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// TransportError reports a failed request: a non-2xx status, or a network
// failure when StatusCode is 0.
type TransportError struct {
	Resource   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: %d", e.Resource, e.StatusCode)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{apperrors.ErrServiceUnavail}
	}
	return []error{apperrors.ErrServiceUnavail, e.Err}
}

// ParseError reports a response body that is not valid JSON.
type ParseError struct {
	Resource string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Resource, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{apperrors.ErrServiceUnavail, e.Err}
}
