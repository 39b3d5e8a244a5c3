// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package stats derives the summary counters shown on the dashboard and on
// the public listings. Every function recomputes from the full, unfiltered
// collection; nothing is cached or updated incrementally.
package stats

import (
	"math"
	"strings"
	"time"

	"folio/internal/datefmt"
	"folio/internal/listing"
	"folio/internal/models"
)

// RecentWindow is how far back a record counts as recent.
const RecentWindow = 30 * 24 * time.Hour

// Summary is the set of counters common to every record type.
type Summary struct {
	Total           int            `json:"total"`
	ByFacet         map[string]int `json:"by_facet"`
	ByStatus        map[string]int `json:"by_status,omitempty"`
	Recent          int            `json:"recent"`
	TotalEngagement int            `json:"total_engagement"`
}

// statusLabeler is implemented by records with a publishing or display state.
type statusLabeler interface {
	StatusLabel() string
}

// Summarize computes a Summary over records. Records whose display date
// fails to parse never count as recent.
func Summarize[T listing.Record](records []T, now time.Time) Summary {
	s := Summary{ByFacet: make(map[string]int)}
	for _, r := range records {
		s.Total++
		s.TotalEngagement += r.EngagementCount()

		facet := strings.TrimSpace(r.FacetValue())
		if facet == "" {
			facet = "Uncategorized"
		}
		s.ByFacet[facet]++

		if sl, ok := any(r).(statusLabeler); ok {
			if s.ByStatus == nil {
				s.ByStatus = make(map[string]int)
			}
			s.ByStatus[sl.StatusLabel()]++
		}

		if datefmt.Within(r.DisplayDate(), now, RecentWindow) {
			s.Recent++
		}
	}
	return s
}

// ReviewStats extends Summary with rating aggregates.
type ReviewStats struct {
	Summary
	AverageRating float64     `json:"average_rating"`
	Stars         string      `json:"stars"`
	Distribution  map[int]int `json:"distribution"`
	FiveStar      int         `json:"five_star"`
}

// Reviews aggregates testimonials. AverageRating is rounded to one decimal
// and is 0 for an empty collection.
func Reviews(reviews []models.Review, now time.Time) ReviewStats {
	rs := ReviewStats{
		Summary:      Summarize(reviews, now),
		Distribution: make(map[int]int, models.MaxRating),
	}
	for star := models.MinRating; star <= models.MaxRating; star++ {
		rs.Distribution[star] = 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		rs.Distribution[r.Rating]++
		if r.Rating == models.MaxRating {
			rs.FiveStar++
		}
	}
	rs.AverageRating = Average(sum, len(reviews))
	rs.Stars = Stars(rs.AverageRating)
	return rs
}

// Average returns sum/count rounded to one decimal, or 0 when count is 0.
func Average(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}

// BlogStats extends Summary with publishing counters.
type BlogStats struct {
	Summary
	Published int              `json:"published"`
	Drafts    int              `json:"drafts"`
	TopPost   *models.BlogPost `json:"top_post,omitempty"`
}

// Blog aggregates blog posts. TopPost is the most liked post, the earliest
// in collection order on ties, or nil when no post has any like.
func Blog(posts []models.BlogPost, now time.Time) BlogStats {
	bs := BlogStats{Summary: Summarize(posts, now)}
	for i := range posts {
		if posts[i].Published {
			bs.Published++
		} else {
			bs.Drafts++
		}
		if posts[i].Likes > 0 && (bs.TopPost == nil || posts[i].Likes > bs.TopPost.Likes) {
			top := posts[i]
			bs.TopPost = &top
		}
	}
	return bs
}

// PortfolioStats extends Summary with the featured project count.
type PortfolioStats struct {
	Summary
	Featured int `json:"featured"`
}

// Portfolio aggregates portfolio items.
func Portfolio(items []models.PortfolioItem, now time.Time) PortfolioStats {
	ps := PortfolioStats{Summary: Summarize(items, now)}
	for _, it := range items {
		if it.Featured {
			ps.Featured++
		}
	}
	return ps
}

// ServiceStats counts service offerings by visibility.
type ServiceStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Services aggregates service offerings.
func Services(services []models.Service) ServiceStats {
	var ss ServiceStats
	for _, s := range services {
		ss.Total++
		if s.IsActive {
			ss.Active++
		} else {
			ss.Inactive++
		}
	}
	return ss
}

// Stars renders a rating as five glyphs, rounded to the nearest whole star.
func Stars(rating float64) string {
	n := int(math.Round(rating))
	n = max(0, min(n, models.MaxRating))
	return strings.Repeat("★", n) + strings.Repeat("☆", models.MaxRating-n)
}
