// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP plumbing shared by the CLI and tests.
package httputil

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Throttle is an http.RoundTripper that enforces a minimum spacing
// between consecutive requests. The public service rejects aggressive
// clients, so bulk fetches space their calls out.
//
// Concurrent requests queue for evenly spaced slots. A zero or negative
// delay disables the wait entirely.
type Throttle struct {
	rt    http.RoundTripper
	delay time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewThrottle wraps rt with a minimum inter-request delay. A nil rt
// uses http.DefaultTransport.
func NewThrottle(rt http.RoundTripper, delay time.Duration) *Throttle {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &Throttle{rt: rt, delay: delay}
}

// RoundTrip waits for the next free slot, then forwards the request.
// If the request context is cancelled during the wait, the context
// error is returned and the slot is forfeited.
func (t *Throttle) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.wait(req.Context()); err != nil {
		return nil, err
	}
	return t.rt.RoundTrip(req)
}

func (t *Throttle) wait(ctx context.Context) error {
	if t.delay <= 0 {
		return nil
	}

	t.mu.Lock()
	now := time.Now()
	next := t.last.Add(t.delay)
	if next.Before(now) {
		next = now
	}
	t.last = next
	t.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CloseIdleConnections forwards to the wrapped transport so that
// closing the owning http.Client still releases connections.
func (t *Throttle) CloseIdleConnections() {
	type closeIdler interface{ CloseIdleConnections() }
	if ci, ok := t.rt.(closeIdler); ok {
		ci.CloseIdleConnections()
	}
}
