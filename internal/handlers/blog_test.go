package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"folio/internal/models"
)

func seedPosts(env *testEnv) {
	env.blog.insert(models.BlogPost{Title: "Go Generics", Slug: "go-generics", Category: "Go", Published: true, Likes: 2, Content: "## Intro\n\nType parameters."})
	env.blog.insert(models.BlogPost{Title: "Draft Notes", Slug: "draft-notes", Category: "Go"})
	env.blog.insert(models.BlogPost{Title: "Accessible Forms", Slug: "accessible-forms", Category: "Design", Published: true, Likes: 9})
}

func TestListBlogPublishedOnly(t *testing.T) {
	env := newTestEnv(t, "")
	seedPosts(env)

	rec := env.do(http.MethodGet, "/api/blog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	got := decodeResponse[[]models.BlogPost](t, rec)
	if len(got.Data) != 2 {
		t.Fatalf("items: got %d, want 2", len(got.Data))
	}
	if got.Meta == nil || got.Meta.TotalCount != 2 || got.Meta.TotalPages != 1 || got.Meta.PageSize != 2 {
		t.Errorf("meta: %+v", got.Meta)
	}

	rec = env.do(http.MethodGet, "/api/admin/blog", "")
	if all := decodeResponse[[]models.BlogPost](t, rec); len(all.Data) != 3 {
		t.Errorf("admin items: got %d, want 3", len(all.Data))
	}
}

func TestListBlogPipeline(t *testing.T) {
	env := newTestEnv(t, "")
	seedPosts(env)

	rec := env.do(http.MethodGet, "/api/blog?sort=popular", "")
	got := decodeResponse[[]models.BlogPost](t, rec)
	if len(got.Data) != 2 || got.Data[0].Title != "Accessible Forms" {
		t.Errorf("popular order: %+v", got.Data)
	}

	rec = env.do(http.MethodGet, "/api/blog?category=go", "")
	got = decodeResponse[[]models.BlogPost](t, rec)
	if len(got.Data) != 1 || got.Data[0].Slug != "go-generics" {
		t.Errorf("facet filter: %+v", got.Data)
	}

	rec = env.do(http.MethodGet, "/api/blog?search=PARAMETERS", "")
	got = decodeResponse[[]models.BlogPost](t, rec)
	if len(got.Data) != 1 {
		t.Errorf("search: %+v", got.Data)
	}
}

func TestListBlogPagination(t *testing.T) {
	env := newTestEnv(t, "")
	for i := 1; i <= 7; i++ {
		env.blog.insert(models.BlogPost{Title: fmt.Sprintf("Post %d", i), Published: true})
	}

	rec := env.do(http.MethodGet, "/api/blog?page=2", "")
	got := decodeResponse[[]models.BlogPost](t, rec)
	if len(got.Data) != 1 || got.Meta.CurrentPage != 2 || got.Meta.TotalPages != 2 || got.Meta.PageSize != 6 {
		t.Errorf("page 2: items=%d meta=%+v", len(got.Data), got.Meta)
	}

	rec = env.do(http.MethodGet, "/api/blog?page=9&page_size=3", "")
	got = decodeResponse[[]models.BlogPost](t, rec)
	if len(got.Data) != 0 || got.Meta.TotalCount != 7 || got.Meta.TotalPages != 3 {
		t.Errorf("past last page: items=%d meta=%+v", len(got.Data), got.Meta)
	}

	rec = env.do(http.MethodGet, "/api/blog?page=9223372036854775807", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("max page: status %d", rec.Code)
	}
	got = decodeResponse[[]models.BlogPost](t, rec)
	if len(got.Data) != 0 || got.Meta.TotalCount != 7 {
		t.Errorf("max page: items=%d meta=%+v", len(got.Data), got.Meta)
	}
}

func TestGetBlog(t *testing.T) {
	env := newTestEnv(t, "")
	seedPosts(env)

	for _, ref := range []string{"1", "go-generics"} {
		rec := env.do(http.MethodGet, "/api/blog/"+ref, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", ref, rec.Code)
		}
		post := decodeResponse[models.BlogPost](t, rec).Data
		if !strings.Contains(post.ContentHTML, "<h2") {
			t.Errorf("%s: content_html not rendered: %q", ref, post.ContentHTML)
		}
	}

	for _, ref := range []string{"2", "draft-notes", "999", "missing"} {
		if rec := env.do(http.MethodGet, "/api/blog/"+ref, ""); rec.Code != http.StatusNotFound {
			t.Errorf("%s: got %d, want 404", ref, rec.Code)
		}
	}
}

func TestGetBlogNumericSlug(t *testing.T) {
	env := newTestEnv(t, "")
	seedPosts(env)
	year := env.blog.insert(models.BlogPost{Title: "2024", Slug: "2024", Published: true})

	rec := env.do(http.MethodGet, "/api/blog/2024", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if got := decodeResponse[models.BlogPost](t, rec).Data; got.ID != year.ID {
		t.Errorf("numeric slug resolved to post %d, want %d", got.ID, year.ID)
	}

	// A numeric ref that is a real id still wins.
	rec = env.do(http.MethodGet, "/api/blog/1", "")
	if got := decodeResponse[models.BlogPost](t, rec).Data; got.Slug != "go-generics" {
		t.Errorf("id lookup: got %q", got.Slug)
	}
}

func TestCreateBlogDerivesFields(t *testing.T) {
	env := newTestEnv(t, "")
	env.blog.insert(models.BlogPost{Title: "Hello World", Slug: "hello-world"})

	body := `{"title":"  Hello World ","content":"# Title\n\nFirst paragraph of the post.","tags":["go"," ",""]}`
	rec := env.do(http.MethodPost, "/api/blog", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: %d %s", rec.Code, rec.Body.String())
	}
	post := decodeResponse[models.BlogPost](t, rec).Data
	if post.Slug != "hello-world-2" {
		t.Errorf("slug: got %q", post.Slug)
	}
	if post.Title != "Hello World" || post.ReadTime != 1 {
		t.Errorf("title/read time: %q %d", post.Title, post.ReadTime)
	}
	if post.Excerpt != "First paragraph of the post." {
		t.Errorf("excerpt: got %q", post.Excerpt)
	}
	if len(post.Tags) != 1 || post.Tags[0] != "go" {
		t.Errorf("tags: got %v", post.Tags)
	}
}

func TestCreateBlogRejects(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `{"title":`, http.StatusBadRequest},
		{"missing title", `{"content":"x"}`, http.StatusUnprocessableEntity},
		{"bad image url", `{"title":"x","image_url":"javascript:alert(1)"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := env.do(http.MethodPost, "/api/blog", tt.body); rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestUpdateBlogMerges(t *testing.T) {
	env := newTestEnv(t, "")
	seedPosts(env)

	rec := env.do(http.MethodPut, "/api/blog/1", `{"title":"Go Generics, Revisited"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d %s", rec.Code, rec.Body.String())
	}
	post := decodeResponse[models.BlogPost](t, rec).Data
	if post.Slug != "go-generics" {
		t.Errorf("slug should be kept: %q", post.Slug)
	}
	if !strings.Contains(post.Content, "Type parameters") || !post.Published {
		t.Errorf("unsent fields lost: %+v", post)
	}

	if rec := env.do(http.MethodPut, "/api/blog/42", `{"title":"x"}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d", rec.Code)
	}
	if rec := env.do(http.MethodPut, "/api/blog/abc", `{"title":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d", rec.Code)
	}
}

func TestDeleteBlog(t *testing.T) {
	env := newTestEnv(t, "")
	seedPosts(env)

	if rec := env.do(http.MethodDelete, "/api/blog/2", ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := env.do(http.MethodDelete, "/api/blog/2", ""); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rec.Code)
	}
}

func TestBlogStats(t *testing.T) {
	env := newTestEnv(t, "")
	seedPosts(env)

	rec := env.do(http.MethodGet, "/api/blog/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	got := decodeResponse[map[string]any](t, rec).Data
	if got["total"] != float64(2) || got["total_engagement"] != float64(11) {
		t.Errorf("stats: %v", got)
	}
}
