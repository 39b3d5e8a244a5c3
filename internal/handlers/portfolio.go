// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strings"

	"folio/internal/listing"
	"folio/internal/models"
	"folio/internal/stats"
)

// ListPortfolio serves portfolio items through the listing pipeline.
func (a *API) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	serveList(a, w, r, "portfolio", "portfolio", listing.PortfolioPageSize, a.portfolio.List)
}

// AdminListPortfolio serves portfolio items for the admin screens. Items
// have no visibility flag, so this differs from the public list only in its
// cache scope.
func (a *API) AdminListPortfolio(w http.ResponseWriter, r *http.Request) {
	serveList(a, w, r, "portfolio", "admin/portfolio", listing.PortfolioPageSize, a.portfolio.List)
}

// GetPortfolio serves one portfolio item.
func (a *API) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := a.portfolio.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if item == nil {
		writeError(w, r, notFound("portfolio"))
		return
	}
	writeData(w, http.StatusOK, item)
}

// PortfolioStats aggregates portfolio items.
func (a *API) PortfolioStats(w http.ResponseWriter, r *http.Request) {
	items, err := a.portfolio.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats.Portfolio(items, a.now()))
}

// CreatePortfolio stores a new portfolio item.
func (a *API) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var p models.PortfolioItem
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = 0
	preparePortfolioItem(&p)
	if err := validatePortfolioItem(&p); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := a.portfolio.Create(r.Context(), &p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.wrote(r.Context(), "portfolio", "create")
	writeData(w, http.StatusCreated, created)
}

// UpdatePortfolio merges the request body over the stored item.
func (a *API) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := a.portfolio.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p == nil {
		writeError(w, r, notFound("portfolio"))
		return
	}
	if err := decodeJSON(r, p); err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = id
	preparePortfolioItem(p)
	if err := validatePortfolioItem(p); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := a.portfolio.Update(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if updated == nil {
		writeError(w, r, notFound("portfolio"))
		return
	}
	a.wrote(r.Context(), "portfolio", "update")
	writeData(w, http.StatusOK, updated)
}

// DeletePortfolio removes an item and its likes.
func (a *API) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	deleteRecord(a, w, r, "portfolio", a.portfolio.Delete)
}

func preparePortfolioItem(p *models.PortfolioItem) {
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	p.Technologies = cleanList(p.Technologies)
}

// deleteRecord is the shared DELETE /{id} handler body.
func deleteRecord(a *API, w http.ResponseWriter, r *http.Request, resource string, del func(context.Context, int64) (bool, error)) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok, err := del(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, notFound(resource))
		return
	}
	a.wrote(r.Context(), resource, "delete")
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}
