package store

import (
	"context"
	"path/filepath"
	"testing"

	"prodstore/internal/models"
)

// testStore creates a temporary store for testing.
func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func seedBrand(t *testing.T, st *Store, name string) models.Brand {
	t.Helper()
	brand := models.Brand{Name: name}
	if err := st.CreateBrand(context.Background(), &brand); err != nil {
		t.Fatalf("seed brand %q: %v", name, err)
	}
	return brand
}

func seedCategory(t *testing.T, st *Store, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	if err := st.CreateCategory(context.Background(), &category); err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	return category
}

func TestMigrationsProduceSchema(t *testing.T) {
	st := testStore(t)

	version, err := currentVersion(st.db)
	if err != nil {
		t.Fatalf("current version: %v", err)
	}
	if version != len(migrations) {
		t.Fatalf("expected schema version %d, got %d", len(migrations), version)
	}

	info, err := st.StoreInfo(context.Background())
	if err != nil {
		t.Fatalf("store info: %v", err)
	}
	if info.ProductCount != 0 || info.BrandCount != 0 {
		t.Fatalf("expected empty store, got %+v", info)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	seedBrand(t, st, "Acme")
	st.Close()

	st2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer st2.Close()

	brands, err := st2.ListBrands(context.Background())
	if err != nil {
		t.Fatalf("list brands: %v", err)
	}
	if len(brands) != 1 || brands[0].Name != "Acme" {
		t.Fatalf("expected seeded brand to survive reopen, got %v", brands)
	}
}

func TestBrandAndCategoryLookup(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	brand := seedBrand(t, st, "Acme")
	got, err := st.GetBrand(ctx, brand.ID)
	if err != nil {
		t.Fatalf("get brand: %v", err)
	}
	if got == nil || got.Name != "Acme" {
		t.Fatalf("unexpected brand %v", got)
	}

	missing, err := st.GetBrand(ctx, brand.ID+999)
	if err != nil {
		t.Fatalf("get missing brand: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing brand, got %v", missing)
	}

	c1 := seedCategory(t, st, "skincare")
	c2 := seedCategory(t, st, "haircare")

	resolved, err := st.ListCategoriesByIDs(ctx, []int64{c1.ID, c2.ID, c2.ID + 999})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected partial resolution to return 2 rows, got %d", len(resolved))
	}
}
