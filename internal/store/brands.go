package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"prodstore/internal/models"
)

// CreateBrand inserts one brand and fills in its generated id.
func (s *Store) CreateBrand(ctx context.Context, brand *models.Brand) error {
	if brand == nil {
		return fmt.Errorf("brand is required")
	}
	now := time.Now().UTC()
	if brand.CreatedAt.IsZero() {
		brand.CreatedAt = now
	}
	if brand.UpdatedAt.IsZero() {
		brand.UpdatedAt = brand.CreatedAt
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO brands (name, created_at, updated_at) VALUES (?, ?, ?)",
		brand.Name, formatTime(brand.CreatedAt), formatTime(brand.UpdatedAt))
	if err != nil {
		return err
	}
	brand.ID, err = res.LastInsertId()
	return err
}

// GetBrand returns one brand by id, or nil when absent.
func (s *Store) GetBrand(ctx context.Context, id int64) (*models.Brand, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM brands WHERE id = ?", id)
	return scanBrand(row)
}

// GetBrandByName returns one brand by exact name, or nil when absent.
func (s *Store) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM brands WHERE name = ?", name)
	return scanBrand(row)
}

// ListBrands lists all brands ordered by name.
func (s *Store) ListBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM brands ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := []models.Brand{}
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		if brand != nil {
			brands = append(brands, *brand)
		}
	}
	return brands, rows.Err()
}

func scanBrand(scanner interface {
	Scan(dest ...any) error
}) (*models.Brand, error) {
	var brand models.Brand
	var createdAt, updatedAt string
	err := scanner.Scan(&brand.ID, &brand.Name, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if brand.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if brand.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &brand, nil
}
