package store

import (
	"context"
	"time"

	"prodstore/internal/models"
)

// CatalogStore is the transactional persistence surface the catalog service
// depends on. *Store implements it against SQLite.
type CatalogStore interface {
	CreateProduct(ctx context.Context, product *models.Product, categoryIDs []int64, images []models.ProductImage) error
	UpdateProduct(ctx context.Context, product *models.Product, categoryIDs []int64, finalImages []models.ProductImage) error
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error)
	ProductExists(ctx context.Context, id int64) (bool, error)
	SetProductActive(ctx context.Context, id int64, active bool) error

	CreateBrand(ctx context.Context, brand *models.Brand) error
	GetBrand(ctx context.Context, id int64) (*models.Brand, error)
	GetBrandByName(ctx context.Context, name string) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListCategoriesByIDs(ctx context.Context, ids []int64) ([]models.Category, error)

	StoreInfo(ctx context.Context) (Info, error)
}

// AuthStore is the staff-credential surface the auth service depends on.
type AuthStore interface {
	CreateStaff(ctx context.Context, staff *models.Staff) error
	GetStaffByUsername(ctx context.Context, username string) (*models.Staff, error)
	CountEnabledStaff(ctx context.Context) (int64, error)
	CreateStaffSession(ctx context.Context, staffID int64, tokenHash string, expiresAt, now time.Time) error
	GetStaffBySessionTokenHash(ctx context.Context, tokenHash string, now time.Time) (*models.Staff, error)
	RevokeStaffSessionByTokenHash(ctx context.Context, tokenHash string, now time.Time) error
}

var (
	_ CatalogStore = (*Store)(nil)
	_ AuthStore    = (*Store)(nil)
)
