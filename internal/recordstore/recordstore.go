// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package recordstore keeps the in-memory collection a listing works on.
// The collection is always replaced wholesale: a reload never merges into
// the previous snapshot, and a superseded reload never overwrites a newer one.
package recordstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"folio/internal/apperr"
	"folio/internal/listing"
)

// ErrSuperseded is returned by a Reload that a newer Reload replaced.
var ErrSuperseded = errors.New("reload superseded")

// Source fetches the full collection of one record type.
type Source[T listing.Record] interface {
	Fetch(ctx context.Context) ([]T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T listing.Record] func(ctx context.Context) ([]T, error)

func (f SourceFunc[T]) Fetch(ctx context.Context) ([]T, error) { return f(ctx) }

// Status describes what the current snapshot holds.
type Status int

const (
	StatusUnloaded Status = iota // nothing fetched yet
	StatusLoaded                 // fetched, at least one record
	StatusEmpty                  // fetched, zero records
	StatusFailed                 // last fetch failed, snapshot is empty
	StatusFallback               // last fetch failed, snapshot is the bundled dataset
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	case StatusFallback:
		return "fallback"
	default:
		return "unloaded"
	}
}

// Store caches one record collection.
type Store[T listing.Record] struct {
	name     string
	src      Source[T]
	fallback []T

	mu      sync.RWMutex
	records []T
	status  Status
	lastErr error
	gen     uint64             // bumped by every Reload
	cancel  context.CancelFunc // cancels the in-flight Reload
}

// Option configures a Store.
type Option[T listing.Record] func(*Store[T])

// WithFallback sets the dataset installed by LoadOrFallback when the
// source is unreachable.
func WithFallback[T listing.Record](records []T) Option[T] {
	return func(s *Store[T]) { s.fallback = slices.Clone(records) }
}

// New creates a Store named after its resource (used in errors and logs).
func New[T listing.Record](name string, src Source[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{name: name, src: src}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the collection and returns it de-duplicated by id without
// installing it. Failures are returned as *apperr.FetchError.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	records, err := s.src.Fetch(ctx)
	if err != nil {
		var fe *apperr.FetchError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, &apperr.FetchError{Resource: s.name, Err: err}
	}
	return Dedupe(records), nil
}

// Reload fetches and installs a fresh snapshot. Starting a Reload cancels
// any Reload still in flight; the older call then returns ErrSuperseded and
// its result is discarded. On failure the previous snapshot stays.
func (s *Store[T]) Reload(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.mu.Unlock()

	records, err := s.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// A newer Reload owns the snapshot now.
		return fmt.Errorf("reload %s: %w", s.name, ErrSuperseded)
	}
	s.cancel = nil
	if err != nil {
		s.lastErr = err
		if s.status == StatusUnloaded {
			s.status = StatusFailed
		}
		return err
	}
	s.install(records)
	return nil
}

// LoadOrFallback reloads and, if the source fails before any snapshot was
// ever loaded, installs the fallback dataset (or an empty collection when
// none is configured). A previously loaded snapshot is kept on failure. It
// always returns the records now held.
func (s *Store[T]) LoadOrFallback(ctx context.Context) []T {
	err := s.Reload(ctx)
	if err == nil || errors.Is(err, ErrSuperseded) {
		return s.Records()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if s.status == StatusLoaded || s.status == StatusEmpty {
		slog.Warn("record reload failed, keeping previous snapshot", "resource", s.name, "error", err)
		return slices.Clone(s.records)
	}

	slog.Warn("record fetch failed, using fallback", "resource", s.name, "fallback", len(s.fallback), "error", err)
	if len(s.fallback) > 0 {
		s.records = slices.Clone(s.fallback)
		s.status = StatusFallback
	} else {
		s.records = nil
		s.status = StatusFailed
	}
	return slices.Clone(s.records)
}

// install replaces the snapshot. Callers hold s.mu.
func (s *Store[T]) install(records []T) {
	s.records = records
	s.lastErr = nil
	if len(records) == 0 {
		s.status = StatusEmpty
	} else {
		s.status = StatusLoaded
	}
}

// Records returns a copy of the current snapshot.
func (s *Store[T]) Records() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Find returns the record with the given id from the current snapshot.
func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Engagement returns the last-known engagement count for id.
func (s *Store[T]) Engagement(id string) (int, bool) {
	r, ok := s.Find(id)
	if !ok {
		return 0, false
	}
	return r.EngagementCount(), true
}

// Status reports what the snapshot holds.
func (s *Store[T]) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the most recent fetch failure, nil after a successful reload.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Dedupe drops records whose id was already seen, keeping the first
// occurrence and the original order.
func Dedupe[T listing.Record](records []T) []T {
	seen := make(map[string]struct{}, len(records))
	out := make([]T, 0, len(records))
	for _, r := range records {
		id := r.RecordID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, r)
	}
	return out
}
