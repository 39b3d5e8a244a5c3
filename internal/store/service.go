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

const serviceSelect = `
	SELECT id, title, description, icon, features, price, is_active,
	       sort_order, created_at, updated_at
	FROM services`

// ServiceStore handles service offering database operations.
type ServiceStore struct {
	db *sql.DB
}

// NewServiceStore creates a new ServiceStore with the given database connection.
func NewServiceStore(db *sql.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

func scanService(row scanner) (*models.Service, error) {
	s := &models.Service{}
	var features string
	if err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.Icon, &features, &s.Price,
		&s.IsActive, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Features = models.DecodeList("features", features)
	return s, nil
}

// List returns services in display order. With activeOnly, inactive
// services are left out.
func (s *ServiceStore) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	query := serviceSelect
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

// FindByID retrieves a service by its ID. Returns nil if not found.
func (s *ServiceStore) FindByID(ctx context.Context, id int64) (*models.Service, error) {
	svc, err := scanService(s.db.QueryRowContext(ctx, serviceSelect+` WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	return svc, nil
}

// Create inserts a service and returns it as stored.
func (s *ServiceStore) Create(ctx context.Context, svc *models.Service) (*models.Service, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO services (title, description, icon, features, price, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, svc.Title, svc.Description, svc.Icon, models.EncodeList(svc.Features), svc.Price,
		svc.IsActive, svc.SortOrder,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update overwrites every editable field. Returns nil if the service does not exist.
func (s *ServiceStore) Update(ctx context.Context, svc *models.Service) (*models.Service, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE services SET
			title = $1, description = $2, icon = $3, features = $4, price = $5,
			is_active = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
	`, svc.Title, svc.Description, svc.Icon, models.EncodeList(svc.Features), svc.Price,
		svc.IsActive, svc.SortOrder, svc.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.FindByID(ctx, svc.ID)
}

// Delete removes a service. It reports whether a row was deleted.
func (s *ServiceStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete service: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
