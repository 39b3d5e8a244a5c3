// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"folio/internal/models"
	"folio/internal/stats"
)

// Dashboard is the admin overview of every resource.
type Dashboard struct {
	Blog      stats.BlogStats      `json:"blog"`
	Portfolio stats.PortfolioStats `json:"portfolio"`
	Reviews   stats.ReviewStats    `json:"reviews"`
	Services  stats.ServiceStats   `json:"services"`
}

// AdminDashboard loads all collections concurrently and aggregates them.
// Drafts and inactive services are included.
func (a *API) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		posts    []models.BlogPost
		items    []models.PortfolioItem
		reviews  []models.Review
		services []models.Service
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		posts, err = a.blog.List(ctx, false)
		return err
	})
	g.Go(func() (err error) {
		items, err = a.portfolio.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = a.reviews.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		services, err = a.services.List(ctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, r, err)
		return
	}

	now := a.now()
	writeData(w, http.StatusOK, Dashboard{
		Blog:      stats.Blog(posts, now),
		Portfolio: stats.Portfolio(items, now),
		Reviews:   stats.Reviews(reviews, now),
		Services:  stats.Services(services),
	})
}
