// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gtr queries the UKRI Gateway to Research API.
//
// A Client translates method calls into parameterized HTTP GETs against the
// public API and returns the decoded JSON bodies as open maps, so upstream
// schema additions pass through untouched. Construct one with New and
// release it with Close:
//
//	client := gtr.New(gtr.Config{})
//	defer client.Close()
//	env, err := client.SearchProjects(ctx, "graphene", nil)
//
// Every call is one synchronous request; there are no retries and nothing is
// cached between calls.
package gtr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://gtr.ukri.org/gtr/api"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "gtr/0.1"

	// maxBodyBytes caps how much of a response is decoded.
	maxBodyBytes = 10 << 20
)

// Config carries the knobs for a Client. The zero value works against the
// live service.
type Config struct {
	// BaseURL is the API root. Defaults to DefaultBaseURL; tests point it
	// at an httptest server.
	BaseURL string

	// Timeout bounds each request when HTTPClient is nil. Defaults to 30s.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Headers are added to every request, covering auth headers should the
	// upstream ever require them.
	Headers map[string]string

	// HTTPClient replaces the default transport. Timeout is ignored when
	// this is set.
	HTTPClient *http.Client

	// Logger receives request diagnostics at debug level. Defaults to a
	// disabled logger.
	Logger *zerolog.Logger
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
}

// Client calls the Gateway to Research API. It holds no mutable state after
// construction and the underlying *http.Client is safe for concurrent use,
// so one Client may be shared across goroutines.
type Client struct {
	baseURL    string
	userAgent  string
	headers    map[string]string
	httpClient *http.Client
	log        zerolog.Logger

	closeOnce sync.Once
}

// New builds a Client from cfg, filling unset fields with defaults.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		headers:    headers,
		httpClient: hc,
		log:        *cfg.Logger,
	}
}

// Close releases the idle connections held by the underlying transport.
// It is idempotent: a deferred Close after a failed call still releases
// exactly once, and further calls do nothing.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.httpClient.CloseIdleConnections()
	})
	return nil
}

// get issues one GET against path with the given query parameters and
// decodes the JSON body into dst.
func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	// Without an explicit Accept the live service answers XML.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", http.MethodGet).
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("gtr request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp, reqURL)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("parsing %s response: %w", reqURL, err)
	}
	return nil
}
