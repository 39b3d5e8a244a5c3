// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"folio/internal/apperr"
	"folio/internal/models"
)

// listResources maps an engagement resource to the list whose cached
// responses embed its counts.
var listResources = map[string]string{
	"blog":      "blog",
	"portfolio": "portfolio",
	"review":    "reviews",
}

// Like returns the POST /api/<resource>-likes handler. The body names the
// record as {"<resource>_id": id}, with id a number or numeric string, and
// the response carries the record's new server-side total.
func (a *API) Like(resource string) http.HandlerFunc {
	field := resource + "_id"
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, r, err)
			return
		}
		raw, ok := body[field]
		if !ok {
			writeError(w, r, apperr.Invalid("%s is required", field))
			return
		}
		var id flexID
		if err := json.Unmarshal(raw, &id); err != nil || id <= 0 {
			writeError(w, r, apperr.Invalid("%s must be a positive integer", field))
			return
		}

		lc, err := a.likes.Increment(r.Context(), resource, int64(id))
		if err != nil {
			a.metrics.Vote(resource, "error")
			writeError(w, r, err)
			return
		}
		if lc == nil {
			a.metrics.Vote(resource, "not_found")
			writeError(w, r, notFound(resource))
			return
		}
		a.metrics.Vote(resource, "counted")
		a.cache.Invalidate(r.Context(), listResources[resource])
		writeData(w, http.StatusOK, lc)
	}
}

// LikeCounts returns the GET /api/<resource>-likes handler listing the
// totals of every record with at least one vote.
func (a *API) LikeCounts(resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := a.likes.Counts(r.Context(), resource)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if counts == nil {
			counts = []models.LikeCount{}
		}
		writeData(w, http.StatusOK, counts)
	}
}
