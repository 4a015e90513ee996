// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gtr

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Sentinel errors for the upstream conditions callers branch on with
// errors.Is.
var (
	// ErrNotFound wraps HTTP 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrForbidden wraps HTTP 403 responses. The live service answers 403
	// for requests from some networks, so callers usually report this as a
	// connectivity restriction rather than a client bug.
	ErrForbidden = errors.New("forbidden")
)

// errBodyLimit caps how much of an error response body is kept.
const errBodyLimit = 512

// ValidationError reports a caller-supplied parameter that failed a local
// check. It is returned before any network I/O happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// APIError reports a non-2xx upstream response. Body holds at most
// errBodyLimit bytes of the response text.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("gtr: HTTP %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("gtr: HTTP %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Unwrap maps the documented status codes onto their sentinels.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		return ErrForbidden
	}
	return nil
}

// newAPIError drains a bounded slice of the body for diagnostics.
func newAPIError(resp *http.Response, reqURL string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
	return &APIError{
		StatusCode: resp.StatusCode,
		URL:        reqURL,
		Body:       strings.TrimSpace(string(body)),
	}
}
