// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engagement implements the like/love counter. A viewer can raise a
// record's count at most once (best effort, trusted to the viewer's ledger),
// and the count shown is always the server's total re-fetched after the
// increment, never a locally computed +1.
package engagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"folio/internal/apperr"
)

// Backend is the server side of the counter.
type Backend interface {
	Increment(ctx context.Context, resource, id string) error
	Counts(ctx context.Context, resource string) (map[string]int, error)
}

// Counter tracks the engagement counts of one resource for one viewer.
type Counter struct {
	resource string
	backend  Backend
	ledger   Ledger
	fallback func(id string) (int, bool)

	mu       sync.Mutex
	counts   map[string]int // authoritative totals from the backend
	inflight map[string]struct{}
}

// Option configures a Counter.
type Option func(*Counter)

// WithFallback supplies last-known counts (typically from the record store)
// for records the backend has not reported yet.
func WithFallback(fn func(id string) (int, bool)) Option {
	return func(c *Counter) { c.fallback = fn }
}

// NewCounter creates a counter for resource ("blog", "portfolio", "review").
func NewCounter(resource string, backend Backend, ledger Ledger, opts ...Option) *Counter {
	c := &Counter{
		resource: resource,
		backend:  backend,
		ledger:   ledger,
		counts:   make(map[string]int),
		inflight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasVoted reports whether this viewer already voted for id.
func (c *Counter) HasVoted(id string) bool {
	return c.ledger.HasVoted(Key(c.resource, id))
}

// Vote raises id's count once for this viewer. It returns false without
// contacting the backend when the viewer already voted or a vote for id is
// in flight. If the increment fails the ledger is left unset so the viewer
// can retry, and the known count is unchanged.
func (c *Counter) Vote(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	if _, busy := c.inflight[id]; busy || c.HasVoted(id) {
		c.mu.Unlock()
		return false, nil
	}
	c.inflight[id] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, id)
		c.mu.Unlock()
	}()

	if err := c.backend.Increment(ctx, c.resource, id); err != nil {
		var we *apperr.WriteError
		if !errors.As(err, &we) {
			err = &apperr.WriteError{Op: "vote", Resource: c.resource, Err: err}
		}
		return false, err
	}

	// The increment landed; record it before anything else can fail so the
	// viewer is never offered a second vote.
	if err := c.ledger.MarkVoted(Key(c.resource, id)); err != nil {
		slog.Warn("vote ledger write failed", "resource", c.resource, "id", id, "error", err)
	}

	if err := c.Sync(ctx); err != nil {
		return true, fmt.Errorf("vote %s/%s counted, refresh failed: %w", c.resource, id, err)
	}
	return true, nil
}

// Sync replaces the known counts with the backend's totals.
func (c *Counter) Sync(ctx context.Context) error {
	counts, err := c.backend.Counts(ctx, c.resource)
	if err != nil {
		var fe *apperr.FetchError
		if !errors.As(err, &fe) {
			err = &apperr.FetchError{Resource: c.resource + "-likes", Err: err}
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = make(map[string]int, len(counts))
	for id, n := range counts {
		c.counts[id] = n
	}
	return nil
}

// CurrentCount returns the backend's total for id if known, otherwise the
// fallback's last-known value, otherwise 0.
func (c *Counter) CurrentCount(id string) int {
	c.mu.Lock()
	n, ok := c.counts[id]
	c.mu.Unlock()
	if ok {
		return n
	}
	if c.fallback != nil {
		if n, ok := c.fallback(id); ok {
			return n
		}
	}
	return 0
}
