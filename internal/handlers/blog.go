// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"folio/internal/listing"
	"folio/internal/markdown"
	"folio/internal/models"
	"folio/internal/slug"
	"folio/internal/stats"
)

// excerptWords is the length of a generated excerpt.
const excerptWords = 30

// ListBlog serves published posts through the listing pipeline.
func (a *API) ListBlog(w http.ResponseWriter, r *http.Request) {
	serveList(a, w, r, "blog", "blog", listing.BlogPageSize, func(ctx context.Context) ([]models.BlogPost, error) {
		return a.blog.List(ctx, true)
	})
}

// AdminListBlog serves every post, drafts included.
func (a *API) AdminListBlog(w http.ResponseWriter, r *http.Request) {
	serveList(a, w, r, "blog", "admin/blog", listing.BlogPageSize, func(ctx context.Context) ([]models.BlogPost, error) {
		return a.blog.List(ctx, false)
	})
}

// GetBlog serves one published post by numeric id or slug, with its
// Markdown body rendered to content_html.
func (a *API) GetBlog(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	var (
		post *models.BlogPost
		err  error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		post, err = a.blog.FindByID(r.Context(), id)
	}
	// Titles like "2024" give all-digit slugs, so a missed id lookup is
	// retried as a slug.
	if err == nil && (post == nil || !post.Published) {
		post, err = a.blog.FindBySlug(r.Context(), ref)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if post == nil || !post.Published {
		writeError(w, r, notFound("blog"))
		return
	}

	html, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Warn("render post body failed", "id", post.ID, "error", err)
	}
	post.ContentHTML = html
	writeData(w, http.StatusOK, post)
}

// BlogStats aggregates published posts.
func (a *API) BlogStats(w http.ResponseWriter, r *http.Request) {
	posts, err := a.blog.List(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats.Blog(posts, a.now()))
}

// CreateBlog stores a new post. The slug is derived from the title when
// absent and made unique.
func (a *API) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var p models.BlogPost
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = 0
	if err := a.prepareBlogPost(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := a.blog.Create(r.Context(), &p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.wrote(r.Context(), "blog", "create")
	slog.Info("blog post created", "id", created.ID, "slug", created.Slug)
	writeData(w, http.StatusCreated, created)
}

// UpdateBlog merges the request body over the stored post.
func (a *API) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := a.blog.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if p == nil {
		writeError(w, r, notFound("blog"))
		return
	}
	if err := decodeJSON(r, p); err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = id
	if err := a.prepareBlogPost(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := a.blog.Update(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if updated == nil {
		writeError(w, r, notFound("blog"))
		return
	}
	a.wrote(r.Context(), "blog", "update")
	writeData(w, http.StatusOK, updated)
}

// DeleteBlog removes a post and its likes.
func (a *API) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	deleteRecord(a, w, r, "blog", a.blog.Delete)
}

// prepareBlogPost validates p and fills its derived fields: slug, excerpt
// and read time.
func (a *API) prepareBlogPost(ctx context.Context, p *models.BlogPost) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Tags = cleanList(p.Tags)
	if err := validateBlogPost(p); err != nil {
		return err
	}

	base := slug.Generate(p.Slug)
	if base == "" {
		base = slug.Generate(p.Title)
	}
	s, err := slug.Unique(ctx, base, func(ctx context.Context, candidate string) (bool, error) {
		return a.blog.SlugExists(ctx, candidate, p.ID)
	})
	if err != nil {
		return fmt.Errorf("blog slug: %w", err)
	}
	p.Slug = s

	if strings.TrimSpace(p.Excerpt) == "" {
		p.Excerpt = markdown.Summary(p.Content, excerptWords)
	}
	p.ReadTime = models.EstimateReadTime(p.Content)
	return nil
}
