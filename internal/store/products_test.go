package store

import (
	"context"
	"testing"

	"prodstore/internal/models"
)

func seedProduct(t *testing.T, st *Store, name string, brandID int64, categoryIDs []int64, imageNames ...string) models.Product {
	t.Helper()
	images := make([]models.ProductImage, 0, len(imageNames))
	for _, n := range imageNames {
		images = append(images, models.ProductImage{StoredName: n, OriginalName: n})
	}
	product := models.Product{
		Name:         name,
		ListedPrice:  20,
		SellingPrice: 15,
		Stock:        10,
		Active:       true,
		BrandID:      brandID,
	}
	if err := st.CreateProduct(context.Background(), &product, categoryIDs, images); err != nil {
		t.Fatalf("seed product %q: %v", name, err)
	}
	return product
}

func TestCreateAndGetProductAggregate(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	brand := seedBrand(t, st, "Acme")
	c1 := seedCategory(t, st, "skincare")
	c2 := seedCategory(t, st, "gifts")

	created := seedProduct(t, st, "Face Cream", brand.ID, []int64{c1.ID, c2.ID}, "a.png", "b.png")
	if created.ID == 0 {
		t.Fatal("expected generated product id")
	}

	got, err := st.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got == nil {
		t.Fatal("expected product, got nil")
	}
	if got.Brand == nil || got.Brand.Name != "Acme" {
		t.Fatalf("expected brand Acme, got %v", got.Brand)
	}
	if len(got.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got.Categories))
	}
	if len(got.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(got.Images))
	}
	if got.Images[0].StoredName != "a.png" || got.Images[1].StoredName != "b.png" {
		t.Fatalf("image order lost: %v", got.ImageStoredNames())
	}
	if got.Images[0].Position != 0 || got.Images[1].Position != 1 {
		t.Fatalf("unexpected positions: %+v", got.Images)
	}
}

func TestUpdateProductReplacesCollections(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	brand := seedBrand(t, st, "Acme")
	other := seedBrand(t, st, "Globex")
	c1 := seedCategory(t, st, "skincare")
	c2 := seedCategory(t, st, "gifts")

	product := seedProduct(t, st, "Face Cream", brand.ID, []int64{c1.ID}, "a.png", "b.png", "c.png")

	stored, err := st.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	// Keep b and c, prepend a new image d, move to the other brand.
	kept := stored.Images[1:]
	final := append([]models.ProductImage{{StoredName: "d.png", OriginalName: "d.png"}}, kept...)

	stored.Name = "Face Cream v2"
	stored.BrandID = other.ID
	if err := st.UpdateProduct(ctx, stored, []int64{c2.ID}, final); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := st.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	names := got.ImageStoredNames()
	if len(names) != 3 || names[0] != "d.png" || names[1] != "b.png" || names[2] != "c.png" {
		t.Fatalf("expected [d b c], got %v", names)
	}
	// Kept rows retain their ids.
	if got.Images[1].ID != kept[0].ID || got.Images[2].ID != kept[1].ID {
		t.Fatalf("kept image ids changed: %+v", got.Images)
	}
	if got.Brand == nil || got.Brand.ID != other.ID {
		t.Fatalf("brand not replaced: %v", got.Brand)
	}
	if len(got.Categories) != 1 || got.Categories[0].ID != c2.ID {
		t.Fatalf("categories not replaced: %v", got.Categories)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	st := testStore(t)
	brand := seedBrand(t, st, "Acme")

	ghost := models.Product{ID: 424242, Name: "Ghost", BrandID: brand.ID}
	err := st.UpdateProduct(context.Background(), &ghost, nil, nil)
	if err == nil {
		t.Fatal("expected error updating missing product")
	}
}

func TestSetProductActiveIdempotent(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	brand := seedBrand(t, st, "Acme")
	product := seedProduct(t, st, "Widget", brand.ID, nil)

	for i := 0; i < 2; i++ {
		if err := st.SetProductActive(ctx, product.ID, false); err != nil {
			t.Fatalf("deactivate attempt %d: %v", i+1, err)
		}
		got, err := st.GetProduct(ctx, product.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Active {
			t.Fatalf("attempt %d: expected inactive product", i+1)
		}
	}

	if err := st.SetProductActive(ctx, product.ID, true); err != nil {
		t.Fatalf("activate: %v", err)
	}
	got, err := st.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Active {
		t.Fatal("expected active product")
	}
}

func TestListProductsActiveFilter(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	brand := seedBrand(t, st, "Acme")
	p1 := seedProduct(t, st, "Visible", brand.ID, nil)
	p2 := seedProduct(t, st, "Hidden", brand.ID, nil)
	if err := st.SetProductActive(ctx, p2.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	all, err := st.ListProducts(ctx, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}

	active, err := st.ListProducts(ctx, true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != p1.ID {
		t.Fatalf("expected only product %d, got %v", p1.ID, active)
	}
}
