// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the folio JSON API.
// Handlers are grouped by resource and receive their dependencies through
// the API struct.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"folio/internal/cache"
	"folio/internal/listing"
	"folio/internal/metrics"
	"folio/internal/models"
)

// maxPageSize caps the page_size query parameter.
const maxPageSize = 100

// BlogRepo is the blog post storage used by the API.
type BlogRepo interface {
	List(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id int64) (*models.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Create(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error)
	Update(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// PortfolioRepo is the portfolio storage used by the API.
type PortfolioRepo interface {
	List(ctx context.Context) ([]models.PortfolioItem, error)
	FindByID(ctx context.Context, id int64) (*models.PortfolioItem, error)
	Create(ctx context.Context, p *models.PortfolioItem) (*models.PortfolioItem, error)
	Update(ctx context.Context, p *models.PortfolioItem) (*models.PortfolioItem, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ReviewRepo is the testimonial storage used by the API.
type ReviewRepo interface {
	List(ctx context.Context) ([]models.Review, error)
	FindByID(ctx context.Context, id int64) (*models.Review, error)
	Create(ctx context.Context, r *models.Review) (*models.Review, error)
	Update(ctx context.Context, r *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ServiceRepo is the service offering storage used by the API.
type ServiceRepo interface {
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
	FindByID(ctx context.Context, id int64) (*models.Service, error)
	Create(ctx context.Context, s *models.Service) (*models.Service, error)
	Update(ctx context.Context, s *models.Service) (*models.Service, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// LikeRepo is the engagement counter storage used by the API.
type LikeRepo interface {
	Increment(ctx context.Context, resource string, id int64) (*models.LikeCount, error)
	Counts(ctx context.Context, resource string) ([]models.LikeCount, error)
}

// Deps are the dependencies of an API. Cache and Metrics may be nil.
type Deps struct {
	Blog       BlogRepo
	Portfolio  PortfolioRepo
	Reviews    ReviewRepo
	Services   ServiceRepo
	Likes      LikeRepo
	Cache      *cache.ListCache
	Metrics    *metrics.Metrics
	AdminToken string
}

// API groups all JSON API handlers and their dependencies.
type API struct {
	blog       BlogRepo
	portfolio  PortfolioRepo
	reviews    ReviewRepo
	services   ServiceRepo
	likes      LikeRepo
	cache      *cache.ListCache
	metrics    *metrics.Metrics
	adminToken string
	now        func() time.Time
}

// NewAPI creates the API handler group.
func NewAPI(d Deps) *API {
	return &API{
		blog:       d.Blog,
		portfolio:  d.Portfolio,
		reviews:    d.Reviews,
		services:   d.Services,
		likes:      d.Likes,
		cache:      d.Cache,
		metrics:    d.Metrics,
		adminToken: d.AdminToken,
		now:        time.Now,
	}
}

// listQuery builds the pipeline query of a list request. Without page or
// page_size the whole filtered collection is returned as one page, which is
// what record store clients expect.
func listQuery(v url.Values, count, pageSize int) listing.Query {
	if n, err := strconv.Atoi(v.Get("page_size")); err == nil && n > 0 {
		pageSize = min(n, maxPageSize)
	} else if !v.Has("page") {
		pageSize = max(count, 1)
	}
	return listing.ParseQuery(v, pageSize)
}

// serveList runs the listing pipeline over the records load returns and
// writes the page with its meta. Encoded responses are cached per resource
// and query under scope.
func serveList[T listing.Record](a *API, w http.ResponseWriter, r *http.Request, resource, scope string, pageSize int, load func(context.Context) ([]T, error)) {
	ctx := r.Context()
	key := cache.Key(scope, r.URL.Query())
	if a.cache != nil {
		if body, ok := a.cache.Get(ctx, resource, key); ok {
			a.metrics.CacheResult(resource, true)
			writeRaw(w, body, "HIT")
			return
		}
		a.metrics.CacheResult(resource, false)
	}

	records, err := load(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := listQuery(r.URL.Query(), len(records), pageSize)
	res := listing.Run(records, q)
	a.metrics.ListQuery(resource, string(q.Sort))

	body, err := json.Marshal(envelope{
		Success: true,
		Data:    res.Items,
		Meta: &meta{
			TotalCount:  res.TotalCount,
			TotalPages:  res.TotalPages,
			CurrentPage: res.CurrentPage,
			PageSize:    res.PageSize,
		},
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.cache.Set(ctx, resource, key, body)
	writeRaw(w, body, "MISS")
}

func writeRaw(w http.ResponseWriter, body []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	w.Write([]byte("\n"))
}

// wrote records a successful write: cached lists of resource are dropped
// and the write is counted.
func (a *API) wrote(ctx context.Context, resource, op string) {
	a.cache.Invalidate(ctx, resource)
	a.metrics.Write(resource, op)
}
