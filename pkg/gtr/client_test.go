// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gtr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// --- test helpers ---

// sampleEnvelopeJSON mirrors the live envelope shape: pagination keys plus a
// "project" array.
const sampleEnvelopeJSON = `{
  "page": 1,
  "size": 10,
  "totalPages": 1,
  "totalSize": 3,
  "project": [
    {
      "id": "04A966FF-B47E-4C5D-A9E6-92B04F74EF1C",
      "title": "Graphene-based supercapacitor electrodes",
      "status": "Active",
      "abstractText": "We investigate layered graphene electrodes for grid-scale storage.",
      "fund": {"valuePounds": 748921, "start": 1580515200000, "end": 1675123200000}
    },
    {
      "id": "8A4B2F11-0C0D-4E7A-9B50-1D2E3F405060",
      "title": "Quantum error correction at scale",
      "status": "Active",
      "abstractText": "Surface codes on superconducting hardware.",
      "fund": {"valuePounds": 1204500, "start": 1559347200000, "end": 1717113600000}
    },
    {
      "id": "C0FFEE00-9A8B-4C5D-8E7F-001122334455",
      "title": "Coastal erosion modelling for East Anglia",
      "status": "Closed",
      "abstractText": "High-resolution sediment transport models.",
      "fund": {"valuePounds": 310877, "start": 1469923200000, "end": 1564531200000}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client := New(Config{BaseURL: ts.URL})
	t.Cleanup(func() { client.Close() })
	return client
}

func envelopeHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

// countingTransport records how often idle connections get released.
type countingTransport struct {
	base       http.RoundTripper
	idleCloses int
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req)
}

func (t *countingTransport) CloseIdleConnections() { t.idleCloses++ }

// --- construction ---

func TestConfigDefaults(t *testing.T) {
	client := New(Config{})
	defer client.Close()

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.userAgent != defaultUserAgent {
		t.Errorf("userAgent = %q, want %q", client.userAgent, defaultUserAgent)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, defaultTimeout)
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	client := New(Config{BaseURL: "http://gtr.test/gtr/api/"})
	defer client.Close()

	if client.baseURL != "http://gtr.test/gtr/api" {
		t.Errorf("baseURL = %q, trailing slash should be trimmed", client.baseURL)
	}
}

// --- request plumbing ---

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		fmt.Fprint(w, "{}")
	}))
	defer ts.Close()

	client := New(Config{
		BaseURL:   ts.URL,
		UserAgent: "gtr-test/9.9",
		Headers:   map[string]string{"X-Api-Key": "sesame"},
	})
	defer client.Close()

	if _, err := client.GetProject(context.Background(), "ABC-1"); err != nil {
		t.Fatalf("GetProject: %v", err)
	}

	if got.Get("Accept") != "application/json" {
		t.Errorf("Accept = %q, want application/json", got.Get("Accept"))
	}
	if got.Get("User-Agent") != "gtr-test/9.9" {
		t.Errorf("User-Agent = %q", got.Get("User-Agent"))
	}
	if got.Get("X-Api-Key") != "sesame" {
		t.Errorf("X-Api-Key = %q, extra header not sent", got.Get("X-Api-Key"))
	}
}

func TestMalformedJSONResponse(t *testing.T) {
	client := newTestClient(t, envelopeHandler(`{"project": [`))

	_, err := client.SearchProjects(context.Background(), "graphene", nil)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("error = %v, want decode failure mentioning parsing", err)
	}
}

// --- error taxonomy ---

func TestUpstreamErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		wantIs error
	}{
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"server error", http.StatusInternalServerError, nil},
		{"bad gateway", http.StatusBadGateway, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream says no", tt.status)
			})

			_, err := client.SearchProjects(context.Background(), "x", nil)
			if err == nil {
				t.Fatalf("expected error for HTTP %d", tt.status)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type = %T, want *APIError", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if !strings.Contains(apiErr.Body, "upstream says no") {
				t.Errorf("Body = %q, should carry the response text", apiErr.Body)
			}
			if !strings.Contains(apiErr.URL, "/projects") {
				t.Errorf("URL = %q, should carry the request URL", apiErr.URL)
			}

			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(err, %v) = false", tt.wantIs)
			}
			if tt.wantIs == nil && (errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden)) {
				t.Errorf("HTTP %d should not unwrap to a sentinel", tt.status)
			}
		})
	}
}

func TestForbiddenOnEveryMethod(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied by network policy", http.StatusForbidden)
	})
	ctx := context.Background()

	calls := []struct {
		name string
		do   func() error
	}{
		{"SearchProjects", func() error {
			_, err := client.SearchProjects(ctx, "x", nil)
			return err
		}},
		{"GetProject", func() error {
			_, err := client.GetProject(ctx, "ABC-1")
			return err
		}},
		{"GetPersonProjects", func() error {
			_, err := client.GetPersonProjects(ctx, "P-1", nil)
			return err
		}},
		{"GetOrganisationProjects", func() error {
			_, err := client.GetOrganisationProjects(ctx, "O-1", nil)
			return err
		}},
		{"GetTopResults", func() error {
			_, err := client.GetTopResults(ctx, "x", 5)
			return err
		}},
	}

	for _, call := range calls {
		t.Run(call.name, func(t *testing.T) {
			err := call.do()
			if !errors.Is(err, ErrForbidden) {
				t.Errorf("err = %v, want ErrForbidden", err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
				t.Errorf("err = %v, want *APIError with status 403", err)
			}
		})
	}
}

func TestTransportErrorPropagates(t *testing.T) {
	ts := httptest.NewServer(envelopeHandler("{}"))
	baseURL := ts.URL
	ts.Close()

	client := New(Config{BaseURL: baseURL})
	defer client.Close()

	_, err := client.SearchProjects(context.Background(), "x", nil)
	if err == nil {
		t.Fatal("expected connection error against closed server")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("connection failure surfaced as *APIError: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, envelopeHandler(sampleEnvelopeJSON))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchProjects(ctx, "x", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled in the chain", err)
	}
}

// --- lifecycle ---

func TestCloseReleasesExactlyOnce(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer ts.Close()

	ct := &countingTransport{base: http.DefaultTransport}
	client := New(Config{BaseURL: ts.URL, HTTPClient: &http.Client{Transport: ct}})

	// A failing call inside the client's scope must not affect release.
	if _, err := client.GetProject(context.Background(), "ABC-1"); err == nil {
		t.Fatal("expected error from 403 response")
	}

	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if ct.idleCloses != 1 {
		t.Errorf("idle connections released %d times, want exactly 1", ct.idleCloses)
	}
}
