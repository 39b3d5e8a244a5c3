// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"folio/internal/handlers"
	"folio/internal/metrics"
	"folio/internal/middleware"
	"folio/internal/models"
)

// stubRepo satisfies every repository with empty collections.
type stubRepo struct{}

func (stubRepo) List(context.Context) ([]models.PortfolioItem, error) { return nil, nil }
func (stubRepo) FindByID(context.Context, int64) (*models.PortfolioItem, error) {
	return nil, nil
}
func (stubRepo) Create(_ context.Context, p *models.PortfolioItem) (*models.PortfolioItem, error) {
	return p, nil
}
func (stubRepo) Update(_ context.Context, p *models.PortfolioItem) (*models.PortfolioItem, error) {
	return p, nil
}
func (stubRepo) Delete(context.Context, int64) (bool, error) { return false, nil }

type stubLikes struct{}

func (stubLikes) Increment(_ context.Context, _ string, id int64) (*models.LikeCount, error) {
	return &models.LikeCount{ID: id, Count: 1}, nil
}
func (stubLikes) Counts(context.Context, string) ([]models.LikeCount, error) { return nil, nil }

func testHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	api := handlers.NewAPI(handlers.Deps{Portfolio: stubRepo{}, Likes: stubLikes{}, Metrics: opts.Metrics})
	return New(api, opts)
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestRoutes(t *testing.T) {
	h := testHandler(t, Options{})

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/api/portfolio", http.StatusOK},
		{"GET", "/api/portfolio/stats", http.StatusOK},
		{"GET", "/api/portfolio/3", http.StatusNotFound},
		{"GET", "/api/portfolio/abc", http.StatusBadRequest},
		{"GET", "/api/nothing-here", http.StatusNotFound},
		{"PATCH", "/api/portfolio/3", http.StatusMethodNotAllowed},
		{"GET", "/api/portfolio-likes", http.StatusOK},
		{"GET", "/metrics", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.status {
				t.Errorf("status: got %d, want %d", w.Code, tt.status)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") && tt.path != "/metrics" {
				t.Errorf("content-type: got %q", ct)
			}
		})
	}
}

func TestGlobalMiddleware(t *testing.T) {
	h := testHandler(t, Options{CORSOrigins: []string{"https://folio.example"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/portfolio", nil)
	req.Header.Set("Origin", "https://folio.example")
	h.ServeHTTP(w, req)

	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://folio.example" {
		t.Errorf("CORS origin: got %q", got)
	}
}

func TestVotesThrottled(t *testing.T) {
	m := metrics.New()
	th := middleware.NewThrottle(1, time.Minute)
	defer th.Stop()
	th.OnReject = m.Throttled
	h := testHandler(t, Options{Metrics: m, Throttle: th})

	vote := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/portfolio-likes", strings.NewReader(`{"portfolio_id":1}`))
		req.RemoteAddr = "203.0.113.9:5555"
		h.ServeHTTP(w, req)
		return w.Code
	}
	if got := vote(); got != http.StatusOK {
		t.Fatalf("first vote: got %d", got)
	}
	if got := vote(); got != http.StatusTooManyRequests {
		t.Fatalf("second vote: got %d, want 429", got)
	}

	// Reading totals is never throttled.
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/portfolio-likes", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("read totals: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	for _, want := range []string{"folio_votes_throttled_total 1", `folio_votes_total{outcome="counted",resource="portfolio"} 1`, "http_requests_total"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
