// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"folio/internal/apperr"
	"folio/internal/listing"
	"folio/internal/models"
	"folio/internal/stats"
)

// ListReviews serves testimonials through the listing pipeline.
func (a *API) ListReviews(w http.ResponseWriter, r *http.Request) {
	serveList(a, w, r, "reviews", "reviews", listing.TestimonialsPageSize, a.reviews.List)
}

// AdminListReviews serves testimonials for the admin screens.
func (a *API) AdminListReviews(w http.ResponseWriter, r *http.Request) {
	serveList(a, w, r, "reviews", "admin/reviews", listing.TestimonialsPageSize, a.reviews.List)
}

// ReviewStats aggregates testimonials.
func (a *API) ReviewStats(w http.ResponseWriter, r *http.Request) {
	reviews, err := a.reviews.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats.Reviews(reviews, a.now()))
}

// CreateReview stores a new testimonial. The date is normalized before it
// is stored.
func (a *API) CreateReview(w http.ResponseWriter, r *http.Request) {
	var rv models.Review
	if err := decodeJSON(r, &rv); err != nil {
		writeError(w, r, err)
		return
	}
	rv.ID = 0
	rv.Name = strings.TrimSpace(rv.Name)
	if err := validateReview(&rv); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := a.reviews.Create(r.Context(), &rv)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.wrote(r.Context(), "reviews", "create")
	writeData(w, http.StatusCreated, created)
}

// UpdateReview merges the request body over the stored testimonial.
func (a *API) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rv, err := a.reviews.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rv == nil {
		writeError(w, r, notFound("reviews"))
		return
	}

	prevDate, prevOn := rv.Date, dayOf(rv.ReviewedOn)
	if err := decodeJSON(r, rv); err != nil {
		writeError(w, r, err)
		return
	}
	// Whichever of the two dates the body changed wins; the other is
	// derived again by validateReview.
	switch {
	case !dayOf(rv.ReviewedOn).Equal(prevOn):
		if rv.Date == prevDate {
			rv.Date = ""
		}
	case rv.Date != prevDate:
		rv.ReviewedOn = nil
	}
	rv.ID = id
	rv.Name = strings.TrimSpace(rv.Name)
	if err := validateReview(rv); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := a.reviews.Update(r.Context(), rv)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if updated == nil {
		writeError(w, r, notFound("reviews"))
		return
	}
	a.wrote(r.Context(), "reviews", "update")
	writeData(w, http.StatusOK, updated)
}

func dayOf(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// deleteReviewRequest is the body of DELETE /api/reviews.
type deleteReviewRequest struct {
	ID    flexID `json:"id"`
	Token string `json:"token"`
}

// DeleteReview removes a testimonial when the body carries the admin token.
func (a *API) DeleteReview(w http.ResponseWriter, r *http.Request) {
	var req deleteReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if !a.checkAdminToken(req.Token) {
		slog.Warn("review delete rejected", "id", int64(req.ID), "ip", r.RemoteAddr)
		writeError(w, r, apperr.ErrUnauthorized)
		return
	}
	if req.ID <= 0 {
		writeError(w, r, apperr.Invalid("id must be a positive integer"))
		return
	}

	ok, err := a.reviews.Delete(r.Context(), int64(req.ID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, notFound("reviews"))
		return
	}
	a.wrote(r.Context(), "reviews", "delete")
	slog.Info("review deleted", "id", int64(req.ID))
	writeData(w, http.StatusOK, map[string]int64{"id": int64(req.ID)})
}

// checkAdminToken compares token with the configured admin token, which is
// either a bcrypt hash or a plain secret. No configured token rejects all.
func (a *API) checkAdminToken(token string) bool {
	if a.adminToken == "" || token == "" {
		return false
	}
	if strings.HasPrefix(a.adminToken, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(a.adminToken), []byte(token)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.adminToken), []byte(token)) == 1
}
