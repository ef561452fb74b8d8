package server

import (
	"testing"

	"prodstore/internal/models"
)

func imgs(ids ...int64) []models.ProductImage {
	out := make([]models.ProductImage, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.ProductImage{ID: id, StoredName: "img-" + string(rune('a'+id))})
	}
	return out
}

func idsOf(images []models.ProductImage) []int64 {
	out := make([]int64, 0, len(images))
	for _, img := range images {
		out = append(out, img.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReconcileImages(t *testing.T) {
	added := []models.ProductImage{{StoredName: "new-1"}, {StoredName: "new-2"}}

	cases := []struct {
		name       string
		existing   []models.ProductImage
		keepIDs    []int64
		added      []models.ProductImage
		wantFinal  []int64
		wantDelete []int64
	}{
		{
			name:       "keep all without additions is identity",
			existing:   imgs(1, 2, 3),
			keepIDs:    []int64{1, 2, 3},
			wantFinal:  []int64{1, 2, 3},
			wantDelete: nil,
		},
		{
			name:       "empty keep set replaces everything",
			existing:   imgs(1, 2, 3),
			keepIDs:    nil,
			added:      added,
			wantFinal:  []int64{0, 0},
			wantDelete: []int64{1, 2, 3},
		},
		{
			name:       "added images come first, kept keep relative order",
			existing:   imgs(1, 2, 3),
			keepIDs:    []int64{3, 1},
			added:      added,
			wantFinal:  []int64{0, 0, 1, 3},
			wantDelete: []int64{2},
		},
		{
			name:       "unknown keep ids are ignored",
			existing:   imgs(1, 2),
			keepIDs:    []int64{1, 99},
			wantFinal:  []int64{1},
			wantDelete: []int64{2},
		},
		{
			name:       "no existing images",
			existing:   nil,
			keepIDs:    []int64{1},
			added:      added,
			wantFinal:  []int64{0, 0},
			wantDelete: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			final, toDelete := reconcileImages(tc.existing, tc.keepIDs, tc.added)
			if !equalIDs(idsOf(final), tc.wantFinal) {
				t.Fatalf("final ids = %v, want %v", idsOf(final), tc.wantFinal)
			}
			if !equalIDs(idsOf(toDelete), tc.wantDelete) {
				t.Fatalf("toDelete ids = %v, want %v", idsOf(toDelete), tc.wantDelete)
			}
			if len(final)+len(toDelete) != len(tc.added)+len(tc.existing) {
				t.Fatalf("cardinality broken: %d final + %d deleted != %d added + %d existing",
					len(final), len(toDelete), len(tc.added), len(tc.existing))
			}
		})
	}
}
