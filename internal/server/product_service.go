package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"prodstore/internal/blobstore"
	"prodstore/internal/models"
	"prodstore/internal/store"
)

// CatalogService orchestrates product workflows: reference resolution, image
// blob writes, and the catalog transaction. The ordering invariant is
// blob-write before commit before blob-delete; a commit failure after blob
// writes leaves orphaned blobs behind, which are logged but never rolled
// back.
type CatalogService struct {
	store  store.CatalogStore
	blobs  blobstore.BlobStore
	logger *slog.Logger
}

// ImageUpload is one incoming image file for a product create or update.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ProductInput carries the scalar fields of a product create or update.
type ProductInput struct {
	Name         string
	ListedPrice  float64
	SellingPrice float64
	Description  string
	Stock        int
	Active       *bool
	BrandID      int64
	CategoryIDs  []int64
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(catalogStore store.CatalogStore, blobs blobstore.BlobStore, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{store: catalogStore, blobs: blobs, logger: logger}
}

// Create validates the input, resolves brand and categories, writes the
// uploaded image blobs, and inserts the product aggregate in one
// transaction. Reference failures abort before any blob is written.
func (s *CatalogService) Create(ctx context.Context, in ProductInput, uploads []ImageUpload) (*models.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	categoryIDs, err := s.resolveRefs(ctx, in)
	if err != nil {
		return nil, err
	}

	newImages, err := s.storeUploads(ctx, uploads)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &models.Product{
		Name:         strings.TrimSpace(in.Name),
		ListedPrice:  in.ListedPrice,
		SellingPrice: in.SellingPrice,
		Description:  strings.TrimSpace(in.Description),
		Stock:        in.Stock,
		Active:       in.Active == nil || *in.Active,
		BrandID:      in.BrandID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateProduct(ctx, product, categoryIDs, newImages); err != nil {
		s.logOrphanedBlobs(newImages, err)
		if isUniqueConstraint(err) {
			return nil, conflictCode(fmt.Errorf("product image already stored"), ErrCodeDuplicateName)
		}
		return nil, storeFailure(err)
	}

	return s.Get(ctx, product.ID)
}

// Update reconciles the product's image set against the keep list, replaces
// the aggregate in one transaction, and deletes the dropped blobs only after
// the transaction commits. Blob delete failures are logged and do not fail
// the update.
func (s *CatalogService) Update(ctx context.Context, id int64, in ProductInput, keepImageIDs []int64, uploads []ImageUpload) (*models.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	current, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	if current == nil {
		return nil, notFoundCode(fmt.Errorf("product %d not found", id), ErrCodeProductNotFound)
	}

	categoryIDs, err := s.resolveRefs(ctx, in)
	if err != nil {
		return nil, err
	}

	newImages, err := s.storeUploads(ctx, uploads)
	if err != nil {
		return nil, err
	}

	final, toDelete := reconcileImages(current.Images, keepImageIDs, newImages)

	active := current.Active
	if in.Active != nil {
		active = *in.Active
	}
	updated := &models.Product{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		ListedPrice:  in.ListedPrice,
		SellingPrice: in.SellingPrice,
		Description:  strings.TrimSpace(in.Description),
		UnitsSold:    current.UnitsSold,
		Stock:        in.Stock,
		Active:       active,
		BrandID:      in.BrandID,
		CreatedAt:    current.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.store.UpdateProduct(ctx, updated, categoryIDs, final); err != nil {
		s.logOrphanedBlobs(newImages, err)
		if isUniqueConstraint(err) {
			return nil, conflictCode(fmt.Errorf("product image already stored"), ErrCodeDuplicateName)
		}
		return nil, storeFailure(err)
	}

	for _, img := range toDelete {
		if err := s.blobs.Delete(ctx, img.StoredName); err != nil {
			s.logger.Warn("delete removed image blob", "stored_name", img.StoredName, "error", err)
		}
	}

	return s.Get(ctx, id)
}

// Activate marks a product as listed. Idempotent.
func (s *CatalogService) Activate(ctx context.Context, id int64) (*models.Product, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate soft-deletes a product. Idempotent; no blob interaction.
func (s *CatalogService) Deactivate(ctx context.Context, id int64) (*models.Product, error) {
	return s.setActive(ctx, id, false)
}

func (s *CatalogService) setActive(ctx context.Context, id int64, active bool) (*models.Product, error) {
	exists, err := s.store.ProductExists(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	if !exists {
		return nil, notFoundCode(fmt.Errorf("product %d not found", id), ErrCodeProductNotFound)
	}
	if err := s.store.SetProductActive(ctx, id, active); err != nil {
		return nil, storeFailure(err)
	}
	return s.Get(ctx, id)
}

// Get returns one product aggregate by id.
func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	if product == nil {
		return nil, notFoundCode(fmt.Errorf("product %d not found", id), ErrCodeProductNotFound)
	}
	return product, nil
}

// List returns all products, optionally restricted to active ones.
func (s *CatalogService) List(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx, activeOnly)
	if err != nil {
		return nil, storeFailure(err)
	}
	return products, nil
}

// Search scans all products and applies the given filters. The keyword is a
// case-sensitive substring match on name or description, the category filter
// matches any overlap with the product's category set, and the brand filter
// is exact. Zero-valued filters pass everything through.
func (s *CatalogService) Search(ctx context.Context, keyword string, categoryIDs []int64, brandID int64) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx, false)
	if err != nil {
		return nil, storeFailure(err)
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if keyword != "" && !strings.Contains(p.Name, keyword) && !strings.Contains(p.Description, keyword) {
			continue
		}
		if brandID > 0 && p.BrandID != brandID {
			continue
		}
		if len(categoryIDs) > 0 && !categoriesOverlap(p.Categories, categoryIDs) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// CreateBrand creates a brand with a unique name.
func (s *CatalogService) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequestCode(fmt.Errorf("brand name is required"), ErrCodeMissingRequired)
	}
	existing, err := s.store.GetBrandByName(ctx, name)
	if err != nil {
		return nil, storeFailure(err)
	}
	if existing != nil {
		return nil, conflictCode(fmt.Errorf("brand %q already exists", name), ErrCodeDuplicateName)
	}

	now := time.Now().UTC()
	brand := &models.Brand{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.store.CreateBrand(ctx, brand); err != nil {
		if isUniqueConstraint(err) {
			return nil, conflictCode(fmt.Errorf("brand %q already exists", name), ErrCodeDuplicateName)
		}
		return nil, storeFailure(err)
	}
	return brand, nil
}

// GetBrand returns one brand by id.
func (s *CatalogService) GetBrand(ctx context.Context, id int64) (*models.Brand, error) {
	brand, err := s.store.GetBrand(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	if brand == nil {
		return nil, notFoundCode(fmt.Errorf("brand %d not found", id), ErrCodeBrandNotFound)
	}
	return brand, nil
}

// ListBrands returns all brands.
func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.store.ListBrands(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	return brands, nil
}

// CreateCategory creates a category with a unique name.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequestCode(fmt.Errorf("category name is required"), ErrCodeMissingRequired)
	}
	existing, err := s.store.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, storeFailure(err)
	}
	if existing != nil {
		return nil, conflictCode(fmt.Errorf("category %q already exists", name), ErrCodeDuplicateName)
	}

	now := time.Now().UTC()
	category := &models.Category{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		if isUniqueConstraint(err) {
			return nil, conflictCode(fmt.Errorf("category %q already exists", name), ErrCodeDuplicateName)
		}
		return nil, storeFailure(err)
	}
	return category, nil
}

// GetCategory returns one category by id.
func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	if category == nil {
		return nil, notFoundCode(fmt.Errorf("category %d not found", id), ErrCodeCategoryNotFound)
	}
	return category, nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	return categories, nil
}

// resolveRefs checks the brand and the full category set before any blob is
// written. A partially resolved category list is an error naming the missing
// ids rather than a silently narrowed link set.
func (s *CatalogService) resolveRefs(ctx context.Context, in ProductInput) ([]int64, error) {
	brand, err := s.store.GetBrand(ctx, in.BrandID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if brand == nil {
		return nil, notFoundCode(fmt.Errorf("brand %d not found", in.BrandID), ErrCodeBrandNotFound)
	}

	categoryIDs := uniqueIDs(in.CategoryIDs)
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	found, err := s.store.ListCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, storeFailure(err)
	}
	if len(found) != len(categoryIDs) {
		missing := missingIDs(categoryIDs, found)
		return nil, notFoundCode(fmt.Errorf("categories not found: %s", formatIDs(missing)), ErrCodeCategoryNotFound)
	}
	return categoryIDs, nil
}

// storeUploads persists every upload to the blob store and returns image rows
// in upload order. A failed write surfaces as a storage error; blobs written
// before the failure are left behind and logged as orphans.
func (s *CatalogService) storeUploads(ctx context.Context, uploads []ImageUpload) ([]models.ProductImage, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	images := make([]models.ProductImage, 0, len(uploads))
	for _, upload := range uploads {
		storedName, err := s.blobs.Store(ctx, upload.Content, upload.Filename)
		if err != nil {
			s.logOrphanedBlobs(images, err)
			return nil, blobWriteFailure(fmt.Errorf("store image %q: %w", upload.Filename, err))
		}
		images = append(images, models.ProductImage{
			StoredName:   storedName,
			OriginalName: upload.Filename,
		})
	}
	return images, nil
}

func (s *CatalogService) logOrphanedBlobs(images []models.ProductImage, cause error) {
	if len(images) == 0 {
		return
	}
	names := make([]string, 0, len(images))
	for _, img := range images {
		if img.ID == 0 && img.StoredName != "" {
			names = append(names, img.StoredName)
		}
	}
	if len(names) == 0 {
		return
	}
	s.logger.Warn("orphaned image blobs after failed catalog write",
		"stored_names", strings.Join(names, ","), "error", cause)
}

func validateInput(in ProductInput) error {
	if err := models.ValidateProductFields(in.Name, in.ListedPrice, in.SellingPrice, in.Stock); err != nil {
		return classifyValidationError(err)
	}
	if in.BrandID <= 0 {
		return badRequestCode(fmt.Errorf("brand_id is required"), ErrCodeMissingRequired)
	}
	return nil
}

func classifyValidationError(err error) error {
	message := err.Error()
	switch {
	case strings.Contains(message, "price"):
		return badRequestCode(err, ErrCodeInvalidPrice)
	case strings.Contains(message, "required"):
		return badRequestCode(err, ErrCodeMissingRequired)
	default:
		return badRequest(err)
	}
}

func categoriesOverlap(categories []models.Category, filter []int64) bool {
	for _, c := range categories {
		for _, id := range filter {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(wanted []int64, found []models.Category) []int64 {
	have := make(map[int64]struct{}, len(found))
	for _, c := range found {
		have[c.ID] = struct{}{}
	}
	var missing []int64
	for _, id := range wanted {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func formatIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ",")
}
