// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// State holds the query behind an interactive listing. Changing the facet,
// the search term or the sort key sends the view back to page 1 so a shrunk
// result set never shows a stale, empty page.
type State struct {
	q Query
}

// NewState starts a listing on page 1 of all records.
func NewState(pageSize int) *State {
	return &State{q: Query{Facet: FacetAll, Page: 1, PageSize: pageSize}}
}

// Query returns the current query.
func (s *State) Query() Query {
	return s.q
}

// SetSearch changes the search term, resetting to page 1 if it differs.
func (s *State) SetSearch(term string) {
	if strings.TrimSpace(term) == strings.TrimSpace(s.q.SearchTerm) {
		return
	}
	s.q.SearchTerm = term
	s.q.Page = 1
}

// SetFacet changes the facet, resetting to page 1 if it differs.
func (s *State) SetFacet(facet string) {
	if facet == "" {
		facet = FacetAll
	}
	if facet == s.q.Facet {
		return
	}
	s.q.Facet = facet
	s.q.Page = 1
}

// SetSort changes the sort key, resetting to page 1 if it differs.
func (s *State) SetSort(key SortKey) {
	if key == s.q.Sort {
		return
	}
	s.q.Sort = key
	s.q.Page = 1
}

// SetPage moves to page p (clamped to 1).
func (s *State) SetPage(p int) {
	s.q.Page = max(p, 1)
}

// Apply runs the pipeline for the current query.
func Apply[T Record](s *State, records []T) Result[T] {
	return Run(records, s.q)
}

// ParseQuery builds a Query from request parameters. Unknown sort keys are
// ignored and a missing or malformed page means page 1.
//
//	search | q                  free-text term
//	category | facet | project  facet value
//	sort                        popular, newest, oldest, rating, title
//	page                        1-indexed page number
func ParseQuery(v url.Values, pageSize int) Query {
	q := Query{
		SearchTerm: first(v, "search", "q"),
		Facet:      first(v, "category", "facet", "project"),
		Page:       1,
		PageSize:   pageSize,
	}
	if k := SortKey(strings.ToLower(v.Get("sort"))); k.Valid() {
		q.Sort = k
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	return q.normalized()
}

func first(v url.Values, keys ...string) string {
	for _, k := range keys {
		if s := v.Get(k); s != "" {
			return s
		}
	}
	return ""
}
