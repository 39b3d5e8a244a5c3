// fakes_test.go provides in-memory repositories and a test router so the
// handlers can be exercised without PostgreSQL or Valkey.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"folio/internal/models"
)

var errStorage = errors.New("connection refused")

// memRepo is a generic in-memory table keyed by an int64 id.
type memRepo[T any] struct {
	mu   sync.Mutex
	rows map[int64]T
	next int64
	id   func(*T) *int64
	err  error
}

func newMemRepo[T any](id func(*T) *int64, rows ...T) *memRepo[T] {
	m := &memRepo[T]{rows: make(map[int64]T), id: id}
	for _, r := range rows {
		m.insert(r)
	}
	return m
}

func (m *memRepo[T]) insert(v T) T {
	if *m.id(&v) == 0 {
		m.next++
		*m.id(&v) = m.next
	}
	m.next = max(m.next, *m.id(&v))
	m.rows[*m.id(&v)] = v
	return v
}

func (m *memRepo[T]) list(keep func(T) bool) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]T, 0, len(m.rows))
	for id := int64(1); id <= m.next; id++ {
		if v, ok := m.rows[id]; ok && (keep == nil || keep(v)) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memRepo[T]) FindByID(_ context.Context, id int64) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *memRepo[T]) Create(_ context.Context, v *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	created := m.insert(*v)
	return &created, nil
}

func (m *memRepo[T]) Update(_ context.Context, v *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	id := *m.id(v)
	if _, ok := m.rows[id]; !ok {
		return nil, nil
	}
	m.rows[id] = *v
	out := *v
	return &out, nil
}

func (m *memRepo[T]) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type memBlog struct{ *memRepo[models.BlogPost] }

func newMemBlog(posts ...models.BlogPost) memBlog {
	return memBlog{newMemRepo(func(p *models.BlogPost) *int64 { return &p.ID }, posts...)}
}

func (m memBlog) List(_ context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	return m.list(func(p models.BlogPost) bool { return !publishedOnly || p.Published })
}

func (m memBlog) FindBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	posts, err := m.list(func(p models.BlogPost) bool { return p.Slug == slug })
	if err != nil || len(posts) == 0 {
		return nil, err
	}
	return &posts[0], nil
}

func (m memBlog) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	posts, err := m.list(func(p models.BlogPost) bool { return p.Slug == slug && p.ID != excludeID })
	return len(posts) > 0, err
}

type memPortfolio struct{ *memRepo[models.PortfolioItem] }

func newMemPortfolio(items ...models.PortfolioItem) memPortfolio {
	return memPortfolio{newMemRepo(func(p *models.PortfolioItem) *int64 { return &p.ID }, items...)}
}

func (m memPortfolio) List(context.Context) ([]models.PortfolioItem, error) { return m.list(nil) }

type memReviews struct{ *memRepo[models.Review] }

func newMemReviews(reviews ...models.Review) memReviews {
	return memReviews{newMemRepo(func(r *models.Review) *int64 { return &r.ID }, reviews...)}
}

func (m memReviews) List(context.Context) ([]models.Review, error) { return m.list(nil) }

type memServices struct{ *memRepo[models.Service] }

func newMemServices(services ...models.Service) memServices {
	return memServices{newMemRepo(func(s *models.Service) *int64 { return &s.ID }, services...)}
}

func (m memServices) List(_ context.Context, activeOnly bool) ([]models.Service, error) {
	return m.list(func(s models.Service) bool { return !activeOnly || s.IsActive })
}

// memLikes counts votes for ids that exists reports as present.
type memLikes struct {
	mu     sync.Mutex
	counts map[string]map[int64]int
	exists func(resource string, id int64) bool
}

func (m *memLikes) Increment(_ context.Context, resource string, id int64) (*models.LikeCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.exists != nil && !m.exists(resource, id) {
		return nil, nil
	}
	if m.counts == nil {
		m.counts = make(map[string]map[int64]int)
	}
	if m.counts[resource] == nil {
		m.counts[resource] = make(map[int64]int)
	}
	m.counts[resource][id]++
	return &models.LikeCount{ID: id, Count: m.counts[resource][id]}, nil
}

func (m *memLikes) Counts(_ context.Context, resource string) ([]models.LikeCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.LikeCount
	for id, n := range m.counts[resource] {
		out = append(out, models.LikeCount{ID: id, Count: n})
	}
	return out, nil
}

// testEnv bundles the fakes behind one API.
type testEnv struct {
	blog      memBlog
	portfolio memPortfolio
	reviews   memReviews
	services  memServices
	likes     *memLikes
	api       *API
	router    http.Handler
}

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T, adminToken string) *testEnv {
	t.Helper()
	env := &testEnv{
		blog:      newMemBlog(),
		portfolio: newMemPortfolio(),
		reviews:   newMemReviews(),
		services:  newMemServices(),
		likes:     &memLikes{},
	}
	env.api = NewAPI(Deps{
		Blog:       env.blog,
		Portfolio:  env.portfolio,
		Reviews:    env.reviews,
		Services:   env.services,
		Likes:      env.likes,
		AdminToken: adminToken,
	})
	env.api.now = func() time.Time { return fixedNow }
	env.router = testRouter(env.api)
	return env
}

// testRouter mounts the handlers the way the application router does,
// without its middleware.
func testRouter(a *API) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/blog", a.ListBlog)
		r.Get("/blog/stats", a.BlogStats)
		r.Get("/blog/{ref}", a.GetBlog)
		r.Post("/blog", a.CreateBlog)
		r.Put("/blog/{id}", a.UpdateBlog)
		r.Delete("/blog/{id}", a.DeleteBlog)

		r.Get("/portfolio", a.ListPortfolio)
		r.Get("/portfolio/stats", a.PortfolioStats)
		r.Get("/portfolio/{id}", a.GetPortfolio)
		r.Post("/portfolio", a.CreatePortfolio)
		r.Put("/portfolio/{id}", a.UpdatePortfolio)
		r.Delete("/portfolio/{id}", a.DeletePortfolio)

		r.Get("/reviews", a.ListReviews)
		r.Get("/reviews/stats", a.ReviewStats)
		r.Post("/reviews", a.CreateReview)
		r.Put("/reviews/{id}", a.UpdateReview)
		r.Delete("/reviews", a.DeleteReview)

		r.Get("/services", a.ListServices)
		r.Get("/services/stats", a.ServiceStats)
		r.Get("/services/{id}", a.GetService)
		r.Get("/services/{id}/portfolio", a.ServicePortfolio)
		r.Post("/services", a.CreateService)
		r.Put("/services/{id}", a.UpdateService)
		r.Delete("/services/{id}", a.DeleteService)

		for _, res := range []string{"blog", "portfolio", "review"} {
			r.Post("/"+res+"-likes", a.Like(res))
			r.Get("/"+res+"-likes", a.LikeCounts(res))
		}

		r.Get("/admin/blog", a.AdminListBlog)
		r.Get("/admin/portfolio", a.AdminListPortfolio)
		r.Get("/admin/reviews", a.AdminListReviews)
		r.Get("/admin/services", a.AdminListServices)
		r.Get("/admin/dashboard", a.AdminDashboard)
	})
	return r
}

// do sends a request through the test router.
func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
