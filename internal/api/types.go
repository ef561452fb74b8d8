package api

import "time"

// ErrorResponse is the error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// InfoResponse reports server metadata.
type InfoResponse struct {
	Version       string `json:"version"`
	DBPath        string `json:"db_path"`
	SchemaVersion int    `json:"schema_version"`
	ProductCount  int64  `json:"product_count"`
	ActiveCount   int64  `json:"active_count"`
	BrandCount    int64  `json:"brand_count"`
	CategoryCount int64  `json:"category_count"`
	ImageCount    int64  `json:"image_count"`
}

// BrandResponse is one brand.
type BrandResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryResponse is one category.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ImageResponse is one stored product image.
type ImageResponse struct {
	ID           int64  `json:"id"`
	StoredName   string `json:"stored_name"`
	OriginalName string `json:"original_name,omitempty"`
	Position     int    `json:"position"`
	URL          string `json:"url,omitempty"`
}

// ProductResponse is the full product aggregate.
type ProductResponse struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	ListedPrice  float64            `json:"listed_price"`
	SellingPrice float64            `json:"selling_price"`
	Description  string             `json:"description,omitempty"`
	UnitsSold    int                `json:"units_sold"`
	Stock        int                `json:"stock"`
	Active       bool               `json:"active"`
	Brand        *BrandResponse     `json:"brand,omitempty"`
	Categories   []CategoryResponse `json:"categories,omitempty"`
	Images       []ImageResponse    `json:"images,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// BrandCreateRequest creates a brand.
type BrandCreateRequest struct {
	Name string `json:"name"`
}

// CategoryCreateRequest creates a category.
type CategoryCreateRequest struct {
	Name string `json:"name"`
}

// LoginRequest authenticates a staff account.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CatalogSeed is a declarative catalog fixture loaded via import. The same
// struct decodes from YAML files and encodes as the JSON request body.
type CatalogSeed struct {
	Brands     []string          `json:"brands,omitempty" yaml:"brands"`
	Categories []string          `json:"categories,omitempty" yaml:"categories"`
	Products   []SeedProduct     `json:"products,omitempty" yaml:"products"`
	Staff      []SeedStaffMember `json:"staff,omitempty" yaml:"staff"`
}

// SeedProduct is one product entry in a catalog seed. Brand and categories
// are referenced by name and must be present in the seed or the store.
type SeedProduct struct {
	Name         string   `json:"name" yaml:"name"`
	ListedPrice  float64  `json:"listed_price" yaml:"listed_price"`
	SellingPrice float64  `json:"selling_price" yaml:"selling_price"`
	Description  string   `json:"description,omitempty" yaml:"description"`
	Stock        int      `json:"stock" yaml:"stock"`
	Brand        string   `json:"brand" yaml:"brand"`
	Categories   []string `json:"categories,omitempty" yaml:"categories"`
}

// SeedStaffMember is one staff account in a catalog seed.
type SeedStaffMember struct {
	Username    string `json:"username" yaml:"username"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name"`
	Password    string `json:"password" yaml:"password"`
}

// ImportResponse summarizes one seed import.
type ImportResponse struct {
	BrandsCreated     int `json:"brands_created"`
	CategoriesCreated int `json:"categories_created"`
	ProductsCreated   int `json:"products_created"`
	StaffCreated      int `json:"staff_created"`
	Skipped           int `json:"skipped"`
}
