// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listing implements the filter → search → sort → paginate pipeline
// shared by the blog, portfolio and testimonials listings and by the admin
// management screens. The pipeline is a pure function over an in-memory
// collection; it never mutates its input.
package listing

import (
	"cmp"
	"slices"
	"strings"

	"folio/internal/datefmt"
)

// FacetAll disables facet filtering.
const FacetAll = "All"

// Page sizes used by the public listings.
const (
	BlogPageSize         = 6
	PortfolioPageSize    = 6
	TestimonialsPageSize = 30

	// DefaultPageSize applies when a query carries no page size.
	DefaultPageSize = 10
)

// Record is anything the pipeline can manage.
type Record interface {
	RecordID() string
	FacetValue() string
	SearchableText() string
	EngagementCount() int
	DisplayDate() string
}

// Rated is implemented by records that carry a star rating.
type Rated interface {
	RatingValue() int
}

// Titled is implemented by records that can be sorted alphabetically.
type Titled interface {
	TitleText() string
}

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortNone    SortKey = ""
	SortPopular SortKey = "popular"
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortRating  SortKey = "rating"
	SortTitle   SortKey = "title"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortPopular, SortNewest, SortOldest, SortRating, SortTitle:
		return true
	}
	return false
}

// Query describes one view over a collection. Page is 1-indexed.
type Query struct {
	SearchTerm string
	Facet      string
	Sort       SortKey
	Page       int
	PageSize   int
}

// normalized fills defaults: empty facet means All, page starts at 1.
func (q Query) normalized() Query {
	q.SearchTerm = strings.TrimSpace(q.SearchTerm)
	q.Facet = strings.TrimSpace(q.Facet)
	if q.Facet == "" {
		q.Facet = FacetAll
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Result is one page of a collection plus pagination metadata.
type Result[T Record] struct {
	Items       []T `json:"items"`
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// Run applies the pipeline to records and returns the requested page.
// A page past the last one yields no items rather than an error.
func Run[T Record](records []T, q Query) Result[T] {
	q = q.normalized()
	filtered := Filtered(records, q)

	res := Result[T]{
		Items:       []T{},
		TotalCount:  len(filtered),
		TotalPages:  totalPages(len(filtered), q.PageSize),
		CurrentPage: q.Page,
		PageSize:    q.PageSize,
	}
	if res.TotalCount == 0 {
		res.CurrentPage = 1
		return res
	}

	// Compare pages before multiplying so a huge page cannot overflow.
	if q.Page > res.TotalPages {
		return res
	}
	start := (q.Page - 1) * q.PageSize
	end := min(start+q.PageSize, len(filtered))
	res.Items = filtered[start:end]
	return res
}

// Filtered returns the facet-filtered, searched and sorted sequence before
// pagination. The result is always a fresh slice.
func Filtered[T Record](records []T, q Query) []T {
	q = q.normalized()

	out := make([]T, 0, len(records))
	needle := strings.ToLower(q.SearchTerm)
	for _, r := range records {
		if !MatchFacet(r.FacetValue(), q.Facet) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(r.SearchableText()), needle) {
			continue
		}
		out = append(out, r)
	}

	if less := comparator[T](q.Sort); less != nil {
		slices.SortStableFunc(out, less)
	}
	return out
}

// MatchFacet is the single facet policy used everywhere: case-insensitive
// exact match after trimming. FacetAll (or an empty facet) matches anything.
func MatchFacet(value, facet string) bool {
	facet = strings.TrimSpace(facet)
	if facet == "" || facet == FacetAll {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), facet)
}

// Facets returns the distinct facet values of records in first-seen order.
// Values differing only in case collapse onto the first spelling seen.
func Facets[T Record](records []T) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		v := strings.TrimSpace(r.FacetValue())
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func totalPages(count, size int) int {
	if count == 0 {
		return 0
	}
	return (count-1)/size + 1
}

// comparator returns the ordering for key, or nil when no sort applies.
func comparator[T Record](key SortKey) func(a, b T) int {
	switch key {
	case SortPopular:
		return func(a, b T) int {
			return cmp.Compare(b.EngagementCount(), a.EngagementCount())
		}
	case SortNewest:
		return func(a, b T) int { return compareDates(a, b, true) }
	case SortOldest:
		return func(a, b T) int { return compareDates(a, b, false) }
	case SortRating:
		return func(a, b T) int {
			return cmp.Compare(rating(b), rating(a))
		}
	case SortTitle:
		return func(a, b T) int {
			return strings.Compare(strings.ToLower(title(a)), strings.ToLower(title(b)))
		}
	}
	return nil
}

// compareDates orders by parsed display date. Unparseable dates go last in
// both directions and keep their relative order.
func compareDates[T Record](a, b T, newestFirst bool) int {
	ta, okA := datefmt.Parse(a.DisplayDate())
	tb, okB := datefmt.Parse(b.DisplayDate())
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	if newestFirst {
		return tb.Compare(ta)
	}
	return ta.Compare(tb)
}

func rating(r any) int {
	if v, ok := r.(Rated); ok {
		return v.RatingValue()
	}
	return 0
}

func title(r any) string {
	if v, ok := r.(Titled); ok {
		return v.TitleText()
	}
	return ""
}
