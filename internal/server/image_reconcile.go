package server

import "prodstore/internal/models"

// reconcileImages computes the image set of a product after an update. The
// result list starts with the newly added images followed by the kept
// existing images in their original relative order. Every existing image
// whose id is not in keepIDs lands in toDelete. An empty keep set means the
// whole existing collection is replaced. Keep ids that match no existing
// image are ignored.
func reconcileImages(existing []models.ProductImage, keepIDs []int64, added []models.ProductImage) (final, toDelete []models.ProductImage) {
	keep := make(map[int64]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = struct{}{}
	}

	final = make([]models.ProductImage, 0, len(added)+len(existing))
	final = append(final, added...)

	for _, img := range existing {
		if _, ok := keep[img.ID]; ok {
			final = append(final, img)
			continue
		}
		toDelete = append(toDelete, img)
	}
	return final, toDelete
}
