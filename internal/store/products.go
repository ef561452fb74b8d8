package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"prodstore/internal/models"
)

const productColumns = "id, name, listed_price, selling_price, description, units_sold, stock, active, brand_id, created_at, updated_at"

// CreateProduct inserts a product with its category links and image rows in
// one transaction. Generated ids are written back to the passed structs.
func (s *Store) CreateProduct(ctx context.Context, product *models.Product, categoryIDs []int64, images []models.ProductImage) (err error) {
	if product == nil {
		return fmt.Errorf("product is required")
	}

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = product.CreatedAt

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO products (name, listed_price, selling_price, description, units_sold, stock, active, brand_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		product.Name,
		product.ListedPrice,
		product.SellingPrice,
		nullIfEmpty(product.Description),
		product.UnitsSold,
		product.Stock,
		boolToInt(product.Active),
		product.BrandID,
		formatTime(product.CreatedAt),
		formatTime(product.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if product.ID, err = res.LastInsertId(); err != nil {
		return err
	}

	if err = insertCategoryLinks(ctx, tx, product.ID, categoryIDs); err != nil {
		return err
	}
	if err = insertImageRows(ctx, tx, product.ID, images, now); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateProduct applies a full aggregate replacement in one transaction:
// product row, category links, and the image collection. Images carrying an
// id are kept rows and only repositioned; images without an id are inserted.
// Image rows absent from the final list are deleted.
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product, categoryIDs []int64, finalImages []models.ProductImage) (err error) {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	if product.ID == 0 {
		return fmt.Errorf("product id is required")
	}

	now := time.Now().UTC()
	product.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = ?, listed_price = ?, selling_price = ?, description = ?, units_sold = ?, stock = ?, active = ?, brand_id = ?, updated_at = ?
		WHERE id = ?
	`,
		product.Name,
		product.ListedPrice,
		product.SellingPrice,
		nullIfEmpty(product.Description),
		product.UnitsSold,
		product.Stock,
		boolToInt(product.Active),
		product.BrandID,
		formatTime(product.UpdatedAt),
		product.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM product_categories WHERE product_id = ?", product.ID); err != nil {
		return err
	}
	if err = insertCategoryLinks(ctx, tx, product.ID, categoryIDs); err != nil {
		return err
	}

	keptIDs := make([]int64, 0, len(finalImages))
	for _, img := range finalImages {
		if img.ID != 0 {
			keptIDs = append(keptIDs, img.ID)
		}
	}
	if len(keptIDs) == 0 {
		_, err = tx.ExecContext(ctx, "DELETE FROM product_images WHERE product_id = ?", product.ID)
	} else {
		query := "DELETE FROM product_images WHERE product_id = ? AND id NOT IN (" + placeholders(len(keptIDs)) + ")"
		args := append([]any{product.ID}, int64Args(keptIDs)...)
		_, err = tx.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return err
	}

	for position := range finalImages {
		img := &finalImages[position]
		if img.ID != 0 {
			if _, err = tx.ExecContext(ctx,
				"UPDATE product_images SET position = ? WHERE id = ? AND product_id = ?",
				position, img.ID, product.ID); err != nil {
				return err
			}
			img.Position = position
			continue
		}
		if err = insertImageRow(ctx, tx, product.ID, img, position, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetProduct returns the full product aggregate, or nil when absent.
func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	product, err := scanProduct(row)
	if err != nil || product == nil {
		return product, err
	}
	if err := s.loadProductRefs(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts lists product aggregates, optionally restricted to active ones.
func (s *Store) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		if product != nil {
			products = append(products, *product)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		if err := s.loadProductRefs(ctx, &products[i]); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// ProductExists checks whether a product exists by id.
func (s *Store) ProductExists(ctx context.Context, id int64) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM products WHERE id = ? LIMIT 1", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetProductActive writes the active flag. Setting the current value is a
// no-op success, which keeps activate/deactivate idempotent.
func (s *Store) SetProductActive(ctx context.Context, id int64, active bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE products SET active = ?, updated_at = ? WHERE id = ?",
		boolToInt(active), formatTime(time.Now().UTC()), id)
	return err
}

// ListProductImages lists a product's image rows in persisted order.
func (s *Store) ListProductImages(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, stored_name, original_name, position, created_at
		FROM product_images WHERE product_id = ? ORDER BY position ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []models.ProductImage{}
	for rows.Next() {
		var img models.ProductImage
		var originalName sql.NullString
		var createdAt string
		if err := rows.Scan(&img.ID, &img.ProductID, &img.StoredName, &originalName, &img.Position, &createdAt); err != nil {
			return nil, err
		}
		img.OriginalName = originalName.String
		if img.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *Store) loadProductRefs(ctx context.Context, product *models.Product) error {
	brand, err := s.GetBrand(ctx, product.BrandID)
	if err != nil {
		return err
	}
	product.Brand = brand

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.created_at, c.updated_at
		FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		WHERE pc.product_id = ?
		ORDER BY c.name ASC
	`, product.ID)
	if err != nil {
		return err
	}
	categories, err := collectCategories(rows)
	rows.Close()
	if err != nil {
		return err
	}
	product.Categories = categories

	images, err := s.ListProductImages(ctx, product.ID)
	if err != nil {
		return err
	}
	product.Images = images
	return nil
}

func insertCategoryLinks(ctx context.Context, tx *sql.Tx, productID int64, categoryIDs []int64) error {
	for _, categoryID := range categoryIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO product_categories (product_id, category_id) VALUES (?, ?)",
			productID, categoryID); err != nil {
			return err
		}
	}
	return nil
}

func insertImageRows(ctx context.Context, tx *sql.Tx, productID int64, images []models.ProductImage, now time.Time) error {
	for position := range images {
		if err := insertImageRow(ctx, tx, productID, &images[position], position, now); err != nil {
			return err
		}
	}
	return nil
}

func insertImageRow(ctx context.Context, tx *sql.Tx, productID int64, img *models.ProductImage, position int, now time.Time) error {
	if img.CreatedAt.IsZero() {
		img.CreatedAt = now
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO product_images (product_id, stored_name, original_name, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, productID, img.StoredName, nullIfEmpty(img.OriginalName), position, formatTime(img.CreatedAt))
	if err != nil {
		return err
	}
	if img.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	img.ProductID = productID
	img.Position = position
	return nil
}

func scanProduct(scanner interface {
	Scan(dest ...any) error
}) (*models.Product, error) {
	var product models.Product
	var description sql.NullString
	var active int
	var createdAt, updatedAt string

	err := scanner.Scan(
		&product.ID,
		&product.Name,
		&product.ListedPrice,
		&product.SellingPrice,
		&description,
		&product.UnitsSold,
		&product.Stock,
		&active,
		&product.BrandID,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	product.Active = active != 0
	if product.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if product.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &product, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
