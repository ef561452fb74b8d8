package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"prodstore/internal/api"
	internalauth "prodstore/internal/auth"
	"prodstore/internal/models"
	"prodstore/internal/store"
)

// importSeed loads a declarative catalog seed: brands and categories first,
// then products referencing them by name, then staff accounts. Entries whose
// name already exists are skipped, so re-importing the same seed is safe.
// Products in the seed carry no images.
func (s *Server) importSeed(ctx context.Context, seed api.CatalogSeed) (api.ImportResponse, error) {
	var result api.ImportResponse

	for _, name := range seed.Brands {
		created, err := s.importBrand(ctx, name)
		if err != nil {
			return result, err
		}
		if created {
			result.BrandsCreated++
		} else {
			result.Skipped++
		}
	}

	for _, name := range seed.Categories {
		created, err := s.importCategory(ctx, name)
		if err != nil {
			return result, err
		}
		if created {
			result.CategoriesCreated++
		} else {
			result.Skipped++
		}
	}

	for _, entry := range seed.Products {
		created, err := s.importProduct(ctx, entry)
		if err != nil {
			return result, err
		}
		if created {
			result.ProductsCreated++
		} else {
			result.Skipped++
		}
	}

	for _, entry := range seed.Staff {
		created, err := s.importStaff(ctx, entry)
		if err != nil {
			return result, err
		}
		if created {
			result.StaffCreated++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

func (s *Server) importBrand(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, badRequestCode(fmt.Errorf("brand name is required"), ErrCodeMissingRequired)
	}
	existing, err := s.store.GetBrandByName(ctx, name)
	if err != nil {
		return false, storeFailure(err)
	}
	if existing != nil {
		return false, nil
	}
	if _, err := s.catalog.CreateBrand(ctx, name); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Server) importCategory(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, badRequestCode(fmt.Errorf("category name is required"), ErrCodeMissingRequired)
	}
	existing, err := s.store.GetCategoryByName(ctx, name)
	if err != nil {
		return false, storeFailure(err)
	}
	if existing != nil {
		return false, nil
	}
	if _, err := s.catalog.CreateCategory(ctx, name); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Server) importProduct(ctx context.Context, entry api.SeedProduct) (bool, error) {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return false, badRequestCode(fmt.Errorf("product name is required"), ErrCodeMissingRequired)
	}

	products, err := s.store.ListProducts(ctx, false)
	if err != nil {
		return false, storeFailure(err)
	}
	for _, p := range products {
		if p.Name == name {
			return false, nil
		}
	}

	brand, err := s.store.GetBrandByName(ctx, strings.TrimSpace(entry.Brand))
	if err != nil {
		return false, storeFailure(err)
	}
	if brand == nil {
		return false, makeAPIError(400, "invalid_argument", ErrCodeImportFailed,
			fmt.Errorf("product %q references unknown brand %q", name, entry.Brand))
	}

	categoryIDs := make([]int64, 0, len(entry.Categories))
	for _, categoryName := range entry.Categories {
		category, err := s.store.GetCategoryByName(ctx, strings.TrimSpace(categoryName))
		if err != nil {
			return false, storeFailure(err)
		}
		if category == nil {
			return false, makeAPIError(400, "invalid_argument", ErrCodeImportFailed,
				fmt.Errorf("product %q references unknown category %q", name, categoryName))
		}
		categoryIDs = append(categoryIDs, category.ID)
	}

	in := ProductInput{
		Name:         name,
		ListedPrice:  entry.ListedPrice,
		SellingPrice: entry.SellingPrice,
		Description:  entry.Description,
		Stock:        entry.Stock,
		BrandID:      brand.ID,
		CategoryIDs:  categoryIDs,
	}
	if _, err := s.catalog.Create(ctx, in, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Server) importStaff(ctx context.Context, entry api.SeedStaffMember) (bool, error) {
	authStore, ok := any(s.store).(store.AuthStore)
	if !ok {
		return false, internalError(fmt.Errorf("staff import requires an auth-capable store"))
	}

	username, err := internalauth.NormalizeUsername(entry.Username)
	if err != nil {
		return false, badRequest(err)
	}
	if err := internalauth.ValidatePassword(entry.Password); err != nil {
		return false, badRequest(err)
	}

	existing, err := authStore.GetStaffByUsername(ctx, username)
	if err != nil {
		return false, storeFailure(err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := internalauth.HashPassword(entry.Password)
	if err != nil {
		return false, internalError(err)
	}
	now := time.Now().UTC()
	staff := &models.Staff{
		Username:     username,
		DisplayName:  strings.TrimSpace(entry.DisplayName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := authStore.CreateStaff(ctx, staff); err != nil {
		return false, storeFailure(err)
	}
	return true, nil
}
