// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"folio/internal/models"
)

// ErrUnknownResource is returned for a likes resource with no table.
var ErrUnknownResource = errors.New("unknown likes resource")

// likeTable names the likes table of one resource and the table it counts.
// Only these constants are ever interpolated into SQL.
type likeTable struct {
	table  string
	column string
	parent string
}

var likeTables = map[string]likeTable{
	"blog":      {table: "blog_likes", column: "blog_id", parent: "blog_posts"},
	"portfolio": {table: "portfolio_likes", column: "portfolio_id", parent: "portfolio"},
	"review":    {table: "review_likes", column: "review_id", parent: "reviews"},
}

// LikeResources lists the resources that accept likes, in route order.
func LikeResources() []string {
	return []string{"blog", "portfolio", "review"}
}

// LikeStore handles the engagement counters of every resource.
type LikeStore struct {
	db *sql.DB
}

// NewLikeStore creates a new LikeStore with the given database connection.
func NewLikeStore(db *sql.DB) *LikeStore {
	return &LikeStore{db: db}
}

func tableFor(resource string) (likeTable, error) {
	t, ok := likeTables[resource]
	if !ok {
		return likeTable{}, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	return t, nil
}

// Increment adds one like to record id in a single statement, so concurrent
// votes serialize on the row instead of racing a read-modify-write. It
// returns the new total, or nil if the record does not exist.
func (s *LikeStore) Increment(ctx context.Context, resource string, id int64) (*models.LikeCount, error) {
	t, err := tableFor(resource)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, count)
		SELECT $1::bigint, 1 WHERE EXISTS (SELECT 1 FROM %[3]s WHERE id = $1::bigint)
		ON CONFLICT (%[2]s) DO UPDATE SET count = %[1]s.count + 1
		RETURNING count
	`, t.table, t.column, t.parent)

	lc := &models.LikeCount{ID: id}
	err = s.db.QueryRowContext(ctx, query, id).Scan(&lc.Count)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("increment %s: %w", t.table, err)
	}
	return lc, nil
}

// Counts returns the totals of every liked record of resource.
func (s *LikeStore) Counts(ctx context.Context, resource string) ([]models.LikeCount, error) {
	t, err := tableFor(resource)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, count FROM %s ORDER BY %[1]s`, t.column, t.table))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	counts := []models.LikeCount{}
	for rows.Next() {
		var lc models.LikeCount
		if err := rows.Scan(&lc.ID, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		counts = append(counts, lc)
	}
	return counts, rows.Err()
}
