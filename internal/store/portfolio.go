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

const portfolioSelect = `
	SELECT p.id, p.title, p.description, p.category, p.technologies, p.client,
	       p.image_url, p.live_url, p.github_url, p.featured,
	       COALESCE(l.count, 0), p.created_at, p.updated_at
	FROM portfolio p
	LEFT JOIN portfolio_likes l ON l.portfolio_id = p.id`

// PortfolioStore handles portfolio item database operations.
type PortfolioStore struct {
	db *sql.DB
}

// NewPortfolioStore creates a new PortfolioStore with the given database connection.
func NewPortfolioStore(db *sql.DB) *PortfolioStore {
	return &PortfolioStore{db: db}
}

func scanPortfolioItem(row scanner) (*models.PortfolioItem, error) {
	p := &models.PortfolioItem{}
	var tech string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &tech, &p.Client,
		&p.ImageURL, &p.LiveURL, &p.GithubURL, &p.Featured,
		&p.Loves, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Technologies = models.DecodeList("technologies", tech)
	return p, nil
}

// List returns every portfolio item, featured first, then newest.
func (s *PortfolioStore) List(ctx context.Context) ([]models.PortfolioItem, error) {
	rows, err := s.db.QueryContext(ctx, portfolioSelect+` ORDER BY p.featured DESC, p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	defer rows.Close()

	items := []models.PortfolioItem{}
	for rows.Next() {
		p, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan portfolio item: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves an item by its ID. Returns nil if not found.
func (s *PortfolioStore) FindByID(ctx context.Context, id int64) (*models.PortfolioItem, error) {
	p, err := scanPortfolioItem(s.db.QueryRowContext(ctx, portfolioSelect+` WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find portfolio item: %w", err)
	}
	return p, nil
}

// Create inserts a new item and returns it as stored.
func (s *PortfolioStore) Create(ctx context.Context, p *models.PortfolioItem) (*models.PortfolioItem, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO portfolio (title, description, category, technologies, client,
		                       image_url, live_url, github_url, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, p.Title, p.Description, p.Category, models.EncodeList(p.Technologies), p.Client,
		p.ImageURL, p.LiveURL, p.GithubURL, p.Featured,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create portfolio item: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update overwrites every editable field. Returns nil if the item does not exist.
func (s *PortfolioStore) Update(ctx context.Context, p *models.PortfolioItem) (*models.PortfolioItem, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE portfolio SET
			title = $1, description = $2, category = $3, technologies = $4,
			client = $5, image_url = $6, live_url = $7, github_url = $8,
			featured = $9, updated_at = NOW()
		WHERE id = $10
	`, p.Title, p.Description, p.Category, models.EncodeList(p.Technologies), p.Client,
		p.ImageURL, p.LiveURL, p.GithubURL, p.Featured, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.FindByID(ctx, p.ID)
}

// Delete removes an item and its likes. It reports whether a row was deleted.
func (s *PortfolioStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete portfolio item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
