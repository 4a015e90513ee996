// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gtr

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := newValidationError("page size", "must be between %d and %d, got %d", 10, 100, 5)
	want := "invalid page size: must be between 10 and 100, got 5"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 403, URL: "https://gtr.test/projects?q=x", Body: "denied"}
	msg := err.Error()
	for _, part := range []string{"403", "https://gtr.test/projects?q=x", "denied"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, missing %q", msg, part)
		}
	}

	bare := &APIError{StatusCode: 500, URL: "https://gtr.test/projects"}
	if strings.HasSuffix(bare.Error(), ": ") {
		t.Errorf("Error() = %q, empty body should not leave a dangling colon", bare.Error())
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status}
		if got := err.Unwrap(); !errors.Is(got, tt.want) {
			t.Errorf("Unwrap() for %d = %v, want %v", tt.status, got, tt.want)
		}
	}
}
