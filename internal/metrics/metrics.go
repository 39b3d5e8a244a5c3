// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the Prometheus collectors of the API server. Each
// Metrics owns its registry so tests can create as many as they like.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of collectors the server records into.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	VotesTotal       *prometheus.CounterVec
	VotesThrottled   prometheus.Counter
	ListQueriesTotal *prometheus.CounterVec
	ListCacheTotal   *prometheus.CounterVec
	WritesTotal      *prometheus.CounterVec
}

// New creates and registers every collector, plus the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		VotesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_votes_total",
				Help: "Likes and loves recorded, by resource and outcome",
			},
			[]string{"resource", "outcome"},
		),
		VotesThrottled: f.NewCounter(
			prometheus.CounterOpts{
				Name: "folio_votes_throttled_total",
				Help: "Vote requests rejected by the per-client throttle",
			},
		),
		ListQueriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_list_queries_total",
				Help: "Listing requests served, by resource and sort key",
			},
			[]string{"resource", "sort"},
		),
		ListCacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_list_cache_total",
				Help: "List cache lookups, by resource and result",
			},
			[]string{"resource", "result"},
		),
		WritesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_writes_total",
				Help: "Admin writes, by resource and operation",
			},
			[]string{"resource", "op"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// The helpers below are nil-safe so components can run without metrics.

// Vote records a vote outcome ("counted", "not_found", "error").
func (m *Metrics) Vote(resource, outcome string) {
	if m == nil {
		return
	}
	m.VotesTotal.WithLabelValues(resource, outcome).Inc()
}

// Throttled records a vote rejected by the throttle.
func (m *Metrics) Throttled() {
	if m == nil {
		return
	}
	m.VotesThrottled.Inc()
}

// ListQuery records a listing request.
func (m *Metrics) ListQuery(resource, sort string) {
	if m == nil {
		return
	}
	if sort == "" {
		sort = "default"
	}
	m.ListQueriesTotal.WithLabelValues(resource, sort).Inc()
}

// CacheResult records a list cache lookup ("hit" or "miss").
func (m *Metrics) CacheResult(resource string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ListCacheTotal.WithLabelValues(resource, result).Inc()
}

// Write records an admin write ("create", "update", "delete").
func (m *Metrics) Write(resource, op string) {
	if m == nil {
		return
	}
	m.WritesTotal.WithLabelValues(resource, op).Inc()
}
