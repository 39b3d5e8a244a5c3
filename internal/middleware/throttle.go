// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Throttle limits vote requests per client IP with a sliding window. It
// does not make votes unique per person; it only stops a single client
// from hammering the counters.
type Throttle struct {
	limit  int
	window time.Duration
	now    func() time.Time

	// OnReject, if set, is called for every rejected request.
	OnReject func()

	mu      sync.Mutex
	clients map[string][]time.Time
	stopCh  chan struct{}
}

// NewThrottle allows limit requests per window for each client and starts
// a background sweep of idle clients. Call Stop when done.
func NewThrottle(limit int, window time.Duration) *Throttle {
	t := &Throttle{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string][]time.Time),
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(max(window, time.Minute))
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.sweep()
			case <-t.stopCh:
				return
			}
		}
	}()

	return t
}

// Stop terminates the background sweep.
func (t *Throttle) Stop() {
	close(t.stopCh)
}

// Allow records a request from key and reports whether it is within the
// limit. When it is not, retryAfter is the time until the oldest request
// in the window expires.
func (t *Throttle) Allow(key string) (ok bool, retryAfter time.Duration) {
	now := t.now()
	cutoff := now.Add(-t.window)

	t.mu.Lock()
	defer t.mu.Unlock()

	recent := t.clients[key][:0:0]
	for _, ts := range t.clients[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= t.limit {
		t.clients[key] = recent
		return false, recent[0].Sub(cutoff)
	}
	t.clients[key] = append(recent, now)
	return true, 0
}

// sweep forgets clients with no request inside the window.
func (t *Throttle) sweep() {
	cutoff := t.now().Add(-t.window)

	t.mu.Lock()
	defer t.mu.Unlock()
	for key, stamps := range t.clients {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(t.clients, key)
		}
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After header.
// Only POST requests count; reading the totals is never throttled.
func (t *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		ok, retry := t.Allow(clientIP(r))
		if !ok {
			if t.OnReject != nil {
				t.OnReject()
			}
			secs := int(retry.Round(time.Second) / time.Second)
			w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			writeJSONError(w, http.StatusTooManyRequests, "too many votes, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
