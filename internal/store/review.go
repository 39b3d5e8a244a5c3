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

const reviewSelect = `
	SELECT r.id, r.name, r.company, r.role, r.project, r.rating, r.text,
	       r.date, r.reviewed_on, r.avatar_url, COALESCE(l.count, 0), r.created_at
	FROM reviews r
	LEFT JOIN review_likes l ON l.review_id = r.id`

// ReviewStore handles review database operations.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

func scanReview(row scanner) (*models.Review, error) {
	r := &models.Review{}
	var reviewedOn sql.NullTime
	if err := row.Scan(
		&r.ID, &r.Name, &r.Company, &r.Role, &r.Project, &r.Rating, &r.Text,
		&r.Date, &reviewedOn, &r.AvatarURL, &r.Loves, &r.CreatedAt,
	); err != nil {
		return nil, err
	}
	if reviewedOn.Valid {
		t := reviewedOn.Time
		r.ReviewedOn = &t
	}
	return r, nil
}

// List returns every review, most recently reviewed first.
func (s *ReviewStore) List(ctx context.Context) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, reviewSelect+` ORDER BY r.reviewed_on DESC NULLS LAST, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, *r)
	}
	return reviews, rows.Err()
}

// FindByID retrieves a review by its ID. Returns nil if not found.
func (s *ReviewStore) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	r, err := scanReview(s.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return r, nil
}

// Create inserts a review and returns it as stored. The caller normalizes
// the date first.
func (s *ReviewStore) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reviews (name, company, role, project, rating, text, date, reviewed_on, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, r.Name, r.Company, r.Role, r.Project, r.Rating, r.Text, r.Date, r.ReviewedOn, r.AvatarURL,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update overwrites every editable field. Returns nil if the review does not exist.
func (s *ReviewStore) Update(ctx context.Context, r *models.Review) (*models.Review, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reviews SET
			name = $1, company = $2, role = $3, project = $4, rating = $5,
			text = $6, date = $7, reviewed_on = $8, avatar_url = $9
		WHERE id = $10
	`, r.Name, r.Company, r.Role, r.Project, r.Rating, r.Text, r.Date, r.ReviewedOn, r.AvatarURL, r.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.FindByID(ctx, r.ID)
}

// Delete removes a review and its likes. It reports whether a row was deleted.
func (s *ReviewStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
