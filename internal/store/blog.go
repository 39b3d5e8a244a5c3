// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"folio/internal/models"
)

// blogSelect reads posts together with their like totals.
const blogSelect = `
	SELECT p.id, p.title, p.slug, p.excerpt, p.content, p.category, p.tags,
	       p.author, p.image_url, p.read_time, p.published,
	       COALESCE(l.count, 0), p.created_at, p.updated_at
	FROM blog_posts p
	LEFT JOIN blog_likes l ON l.blog_id = p.id`

// BlogStore handles blog post database operations.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

func scanBlogPost(row scanner) (*models.BlogPost, error) {
	p := &models.BlogPost{}
	var tags string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Category, &tags,
		&p.Author, &p.ImageURL, &p.ReadTime, &p.Published,
		&p.Likes, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Tags = models.DecodeList("tags", tags)
	return p, nil
}

// List returns blog posts newest first. With publishedOnly, drafts are left out.
func (s *BlogStore) List(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	query := blogSelect
	if publishedOnly {
		query += ` WHERE p.published`
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by its ID. Returns nil if not found.
func (s *BlogStore) FindByID(ctx context.Context, id int64) (*models.BlogPost, error) {
	p, err := scanBlogPost(s.db.QueryRowContext(ctx, blogSelect+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by slug. Returns nil if not found.
func (s *BlogStore) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	p, err := scanBlogPost(s.db.QueryRowContext(ctx, blogSelect+` WHERE p.slug = $1`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by slug: %w", err)
	}
	return p, nil
}

// SlugExists reports whether another post already uses slug. excludeID is
// the post being edited, or 0 on create.
func (s *BlogStore) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`, slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blog slug: %w", err)
	}
	return exists, nil
}

// Create inserts a new post and returns it as stored.
func (s *BlogStore) Create(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (title, slug, excerpt, content, category, tags,
		                        author, image_url, read_time, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, p.Title, p.Slug, p.Excerpt, p.Content, p.Category, models.EncodeList(p.Tags),
		p.Author, p.ImageURL, p.ReadTime, p.Published,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update overwrites every editable field of p. Returns nil if the post
// does not exist.
func (s *BlogStore) Update(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE blog_posts SET
			title = $1, slug = $2, excerpt = $3, content = $4, category = $5,
			tags = $6, author = $7, image_url = $8, read_time = $9,
			published = $10, updated_at = NOW()
		WHERE id = $11
	`, p.Title, p.Slug, p.Excerpt, p.Content, p.Category, models.EncodeList(p.Tags),
		p.Author, p.ImageURL, p.ReadTime, p.Published, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.FindByID(ctx, p.ID)
}

// Delete removes a post and, through the foreign key, its likes. It
// reports whether a row was deleted.
func (s *BlogStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete blog post: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
