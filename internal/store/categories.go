package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"prodstore/internal/models"
)

// CreateCategory inserts one category and fills in its generated id.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("category is required")
	}
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	if category.UpdatedAt.IsZero() {
		category.UpdatedAt = category.CreatedAt
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name, created_at, updated_at) VALUES (?, ?, ?)",
		category.Name, formatTime(category.CreatedAt), formatTime(category.UpdatedAt))
	if err != nil {
		return err
	}
	category.ID, err = res.LastInsertId()
	return err
}

// GetCategory returns one category by id, or nil when absent.
func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM categories WHERE id = ?", id)
	return scanCategory(row)
}

// GetCategoryByName returns one category by exact name, or nil when absent.
func (s *Store) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM categories WHERE name = ?", name)
	return scanCategory(row)
}

// ListCategories lists all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCategories(rows)
}

// ListCategoriesByIDs returns the categories matching ids. Callers compare
// the result count against the request count to detect partial resolution.
func (s *Store) ListCategoriesByIDs(ctx context.Context, ids []int64) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	query := "SELECT id, name, created_at, updated_at FROM categories WHERE id IN (" +
		placeholders(len(ids)) + ") ORDER BY name ASC"
	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCategories(rows)
}

func collectCategories(rows *sql.Rows) ([]models.Category, error) {
	categories := []models.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		if category != nil {
			categories = append(categories, *category)
		}
	}
	return categories, rows.Err()
}

func scanCategory(scanner interface {
	Scan(dest ...any) error
}) (*models.Category, error) {
	var category models.Category
	var createdAt, updatedAt string
	err := scanner.Scan(&category.ID, &category.Name, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if category.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if category.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &category, nil
}
