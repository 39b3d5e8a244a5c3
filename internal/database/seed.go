// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"folio/internal/fallback"
	"folio/internal/models"
)

// Seed populates an empty database with the bundled fallback dataset so a
// fresh development instance has something to list. It does nothing when
// any blog post already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blog_posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check blog posts: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	posts, err := fallback.Blog()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	items, err := fallback.Portfolio()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	reviews, err := fallback.Reviews()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	services, err := fallback.Services()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	for _, p := range posts {
		var id int64
		err := tx.QueryRow(`
			INSERT INTO blog_posts (title, slug, excerpt, content, category, tags, author, read_time, published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id
		`, p.Title, p.Slug, p.Excerpt, p.Content, p.Category, models.EncodeList(p.Tags),
			p.Author, p.ReadTime, p.Published, p.CreatedAt, p.UpdatedAt).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert blog post %q: %w", p.Title, err)
		}
		if err := seedLikes(tx, "blog_likes", "blog_id", id, p.Likes); err != nil {
			return err
		}
	}

	for _, p := range items {
		var id int64
		err := tx.QueryRow(`
			INSERT INTO portfolio (title, description, category, technologies, client, image_url, live_url, github_url, featured, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id
		`, p.Title, p.Description, p.Category, models.EncodeList(p.Technologies), p.Client,
			p.ImageURL, p.LiveURL, p.GithubURL, p.Featured, p.CreatedAt, p.UpdatedAt).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert portfolio item %q: %w", p.Title, err)
		}
		if err := seedLikes(tx, "portfolio_likes", "portfolio_id", id, p.Loves); err != nil {
			return err
		}
	}

	for _, r := range reviews {
		var id int64
		err := tx.QueryRow(`
			INSERT INTO reviews (name, company, role, project, rating, text, date, reviewed_on, avatar_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`, r.Name, r.Company, r.Role, r.Project, r.Rating, r.Text, r.Date, r.ReviewedOn,
			r.AvatarURL, r.CreatedAt).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert review by %q: %w", r.Name, err)
		}
		if err := seedLikes(tx, "review_likes", "review_id", id, r.Loves); err != nil {
			return err
		}
	}

	for _, s := range services {
		_, err := tx.Exec(`
			INSERT INTO services (title, description, icon, features, price, is_active, sort_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, s.Title, s.Description, s.Icon, models.EncodeList(s.Features), s.Price,
			s.IsActive, s.SortOrder, s.CreatedAt, s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("seed insert service %q: %w", s.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded",
		"blog_posts", len(posts),
		"portfolio", len(items),
		"reviews", len(reviews),
		"services", len(services),
	)
	return nil
}

// seedLikes writes a starting like count. The table and column names are
// constants from Seed, never user input.
func seedLikes(tx *sql.Tx, table, column string, id int64, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := tx.Exec("INSERT INTO "+table+" ("+column+", count) VALUES ($1, $2)", id, n)
	if err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	return nil
}
