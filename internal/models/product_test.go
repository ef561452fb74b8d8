package models

import "testing"

func TestValidateProductFields(t *testing.T) {
	if err := ValidateProductFields("Desk Lamp", 39.9, 29.9, 12); err != nil {
		t.Fatalf("valid fields rejected: %v", err)
	}

	cases := []struct {
		name         string
		productName  string
		listedPrice  float64
		sellingPrice float64
		stock        int
	}{
		{"empty name", "", 10, 10, 1},
		{"blank name", "   ", 10, 10, 1},
		{"negative listed price", "Lamp", -1, 10, 1},
		{"negative selling price", "Lamp", 10, -1, 1},
		{"negative stock", "Lamp", 10, 10, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProductFields(tc.productName, tc.listedPrice, tc.sellingPrice, tc.stock)
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestProductCategoryIDs(t *testing.T) {
	p := &Product{Categories: []Category{{ID: 3}, {ID: 1}, {ID: 7}}}
	ids := p.CategoryIDs()
	want := []int64{3, 1, 7}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, ids)
		}
	}

	var nilProduct *Product
	if got := nilProduct.CategoryIDs(); got != nil {
		t.Fatalf("expected nil ids for nil product, got %v", got)
	}
}

func TestProductImageStoredNames(t *testing.T) {
	p := &Product{Images: []ProductImage{
		{StoredName: "1_ab_front.jpg"},
		{StoredName: "1_cd_side.jpg"},
	}}
	names := p.ImageStoredNames()
	if len(names) != 2 || names[0] != "1_ab_front.jpg" || names[1] != "1_cd_side.jpg" {
		t.Fatalf("unexpected stored names: %v", names)
	}
}
