// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains of the
// folio API. Public reads, admin routes and the vote endpoints are grouped
// so each carries the middleware it needs.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio/internal/handlers"
	"folio/internal/metrics"
	"folio/internal/middleware"
	"folio/internal/store"
)

// Options configure the router's middleware.
type Options struct {
	// Metrics, if set, instruments every request and serves /metrics.
	Metrics *metrics.Metrics
	// Throttle, if set, limits vote submissions per client.
	Throttle *middleware.Throttle
	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.Get("/health", healthHandler)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/blog", func(r chi.Router) {
			r.Get("/", api.ListBlog)
			r.Post("/", api.CreateBlog)
			r.Get("/stats", api.BlogStats)
			r.Get("/{ref}", api.GetBlog)
			r.Put("/{id}", api.UpdateBlog)
			r.Delete("/{id}", api.DeleteBlog)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", api.ListPortfolio)
			r.Post("/", api.CreatePortfolio)
			r.Get("/stats", api.PortfolioStats)
			r.Get("/{id}", api.GetPortfolio)
			r.Put("/{id}", api.UpdatePortfolio)
			r.Delete("/{id}", api.DeletePortfolio)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", api.ListReviews)
			r.Post("/", api.CreateReview)
			r.Delete("/", api.DeleteReview)
			r.Get("/stats", api.ReviewStats)
			r.Put("/{id}", api.UpdateReview)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", api.ListServices)
			r.Post("/", api.CreateService)
			r.Get("/stats", api.ServiceStats)
			r.Get("/{id}", api.GetService)
			r.Get("/{id}/portfolio", api.ServicePortfolio)
			r.Put("/{id}", api.UpdateService)
			r.Delete("/{id}", api.DeleteService)
		})

		// Votes. Only submissions are throttled.
		r.Group(func(r chi.Router) {
			if opts.Throttle != nil {
				r.Use(opts.Throttle.Middleware)
			}
			for _, res := range store.LikeResources() {
				r.Post("/"+res+"-likes", api.Like(res))
				r.Get("/"+res+"-likes", api.LikeCounts(res))
			}
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/blog", api.AdminListBlog)
			r.Get("/portfolio", api.AdminListPortfolio)
			r.Get("/reviews", api.AdminListReviews)
			r.Get("/services", api.AdminListServices)
			r.Get("/dashboard", api.AdminDashboard)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"success":false,"error":"not found"}`)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, `{"success":false,"error":"method not allowed"}`)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, `{"status":"ok"}`)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
