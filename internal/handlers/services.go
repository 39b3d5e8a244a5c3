// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"folio/internal/listing"
	"folio/internal/models"
	"folio/internal/stats"
)

// ListServices serves active services in display order.
func (a *API) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := a.services.List(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, services)
}

// AdminListServices serves every service, inactive ones included.
func (a *API) AdminListServices(w http.ResponseWriter, r *http.Request) {
	services, err := a.services.List(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, services)
}

// GetService serves one service.
func (a *API) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	svc, err := a.services.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if svc == nil {
		writeError(w, r, notFound("services"))
		return
	}
	writeData(w, http.StatusOK, svc)
}

// ServicePortfolio serves the portfolio items whose category matches the
// service title.
func (a *API) ServicePortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	svc, err := a.services.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if svc == nil {
		writeError(w, r, notFound("services"))
		return
	}
	items, err := a.portfolio.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	matched := make([]models.PortfolioItem, 0, len(items))
	for _, it := range items {
		if listing.MatchFacet(it.Category, svc.Title) {
			matched = append(matched, it)
		}
	}
	writeData(w, http.StatusOK, matched)
}

// ServiceStats counts services by visibility.
func (a *API) ServiceStats(w http.ResponseWriter, r *http.Request) {
	services, err := a.services.List(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats.Services(services))
}

// CreateService stores a new service.
func (a *API) CreateService(w http.ResponseWriter, r *http.Request) {
	svc := models.Service{IsActive: true}
	if err := decodeJSON(r, &svc); err != nil {
		writeError(w, r, err)
		return
	}
	svc.ID = 0
	prepareService(&svc)
	if err := validateService(&svc); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := a.services.Create(r.Context(), &svc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.wrote(r.Context(), "services", "create")
	writeData(w, http.StatusCreated, created)
}

// UpdateService merges the request body over the stored service.
func (a *API) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	svc, err := a.services.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if svc == nil {
		writeError(w, r, notFound("services"))
		return
	}
	if err := decodeJSON(r, svc); err != nil {
		writeError(w, r, err)
		return
	}
	svc.ID = id
	prepareService(svc)
	if err := validateService(svc); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := a.services.Update(r.Context(), svc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if updated == nil {
		writeError(w, r, notFound("services"))
		return
	}
	a.wrote(r.Context(), "services", "update")
	writeData(w, http.StatusOK, updated)
}

// DeleteService removes a service.
func (a *API) DeleteService(w http.ResponseWriter, r *http.Request) {
	deleteRecord(a, w, r, "services", a.services.Delete)
}

func prepareService(s *models.Service) {
	s.Title = strings.TrimSpace(s.Title)
	s.Features = cleanList(s.Features)
}
