package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Auth.
	mux.HandleFunc("POST /v1/auth/login", s.handleAuthLogin)
	mux.HandleFunc("POST /v1/auth/logout", s.handleAuthLogout)

	// Products collection.
	mux.HandleFunc("POST /v1/products", s.handleCreateProduct)
	mux.HandleFunc("GET /v1/products", s.handleListProducts)
	mux.HandleFunc("GET /v1/products/search", s.handleSearchProducts)

	// Single product.
	mux.HandleFunc("GET /v1/products/{id}", s.handleGetProduct)
	mux.HandleFunc("PUT /v1/products/{id}", s.handleUpdateProduct)
	mux.HandleFunc("POST /v1/products/{id}/activate", s.handleActivateProduct)
	mux.HandleFunc("POST /v1/products/{id}/deactivate", s.handleDeactivateProduct)

	// Image content.
	mux.HandleFunc("GET /v1/images/{name}", s.handleGetImage)

	// Brands and categories.
	mux.HandleFunc("POST /v1/brands", s.handleCreateBrand)
	mux.HandleFunc("GET /v1/brands", s.handleListBrands)
	mux.HandleFunc("GET /v1/brands/{id}", s.handleGetBrand)
	mux.HandleFunc("POST /v1/categories", s.handleCreateCategory)
	mux.HandleFunc("GET /v1/categories", s.handleListCategories)
	mux.HandleFunc("GET /v1/categories/{id}", s.handleGetCategory)

	// Catalog seed import.
	mux.HandleFunc("POST /v1/import", s.handleImport)

	return s.withRequestLogging(s.withAuth(mux))
}
