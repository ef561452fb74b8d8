package models

import (
	"fmt"
	"strings"
	"time"
)

// Brand is a referenced manufacturer. Products point at brands; brands are
// never owned or cascaded by a product.
type Brand struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category groups products many-to-many.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductImage is one stored image owned by exactly one product. StoredName
// is the unique blob name on the image store.
type ProductImage struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	StoredName   string    `json:"stored_name"`
	OriginalName string    `json:"original_name,omitempty"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}

// Product is the catalog aggregate root. Products are soft-deleted via the
// Active flag and never removed from the store.
type Product struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	ListedPrice  float64        `json:"listed_price"`
	SellingPrice float64        `json:"selling_price"`
	Description  string         `json:"description,omitempty"`
	UnitsSold    int            `json:"units_sold"`
	Stock        int            `json:"stock"`
	Active       bool           `json:"active"`
	BrandID      int64          `json:"brand_id"`
	Brand        *Brand         `json:"brand,omitempty"`
	Categories   []Category     `json:"categories,omitempty"`
	Images       []ProductImage `json:"images,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ValidateProductFields checks structural field constraints shared by create
// and update. Referential checks (brand, categories) belong to the service.
func ValidateProductFields(name string, listedPrice, sellingPrice float64, stock int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("product name is required")
	}
	if listedPrice < 0 {
		return fmt.Errorf("listed_price must be >= 0")
	}
	if sellingPrice < 0 {
		return fmt.Errorf("selling_price must be >= 0")
	}
	if stock < 0 {
		return fmt.Errorf("stock must be >= 0")
	}
	return nil
}

// CategoryIDs returns the ids of the product's category set.
func (p *Product) CategoryIDs() []int64 {
	if p == nil || len(p.Categories) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// ImageStoredNames returns the stored blob names of the product's images in
// list order.
func (p *Product) ImageStoredNames() []string {
	if p == nil || len(p.Images) == 0 {
		return nil
	}
	names := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		names = append(names, img.StoredName)
	}
	return names
}
