package server

import (
	"net/url"

	"prodstore/internal/api"
	"prodstore/internal/models"
)

func toBrandResponse(b models.Brand) api.BrandResponse {
	return api.BrandResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

func toCategoryResponse(c models.Category) api.CategoryResponse {
	return api.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toImageResponse(img models.ProductImage) api.ImageResponse {
	return api.ImageResponse{
		ID:           img.ID,
		StoredName:   img.StoredName,
		OriginalName: img.OriginalName,
		Position:     img.Position,
		URL:          "/v1/images/" + url.PathEscape(img.StoredName),
	}
}

func toProductResponse(p *models.Product) api.ProductResponse {
	resp := api.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		ListedPrice:  p.ListedPrice,
		SellingPrice: p.SellingPrice,
		Description:  p.Description,
		UnitsSold:    p.UnitsSold,
		Stock:        p.Stock,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Brand != nil {
		brand := toBrandResponse(*p.Brand)
		resp.Brand = &brand
	}
	for _, c := range p.Categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(c))
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, toImageResponse(img))
	}
	return resp
}

func toProductResponses(products []models.Product) []api.ProductResponse {
	out := make([]api.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}
