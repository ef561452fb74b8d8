package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"prodstore/internal/api"
	"prodstore/internal/blobstore"
	"prodstore/internal/store"
)

func testHandler(t *testing.T) (http.Handler, *CatalogService) {
	t.Helper()
	t.Setenv(apiTokenEnvKey, "")

	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	blobs, err := blobstore.NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}

	srv := New(st, Options{
		Addr:    "127.0.0.1:0",
		Blobs:   blobs,
		Version: "test",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return srv.routes(), srv.catalog
}

func multipartProduct(t *testing.T, fields map[string]string, images map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for name, content := range images {
		part, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestProductEndpoints(t *testing.T) {
	handler, catalog := testHandler(t)
	ctx := context.Background()

	brand, err := catalog.CreateBrand(ctx, "Acme")
	if err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	category, err := catalog.CreateCategory(ctx, "Audio")
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}

	body, contentType := multipartProduct(t, map[string]string{
		"name":          "Speaker",
		"listed_price":  "199.9",
		"selling_price": "149.9",
		"stock":         "5",
		"brand_id":      strconv.FormatInt(brand.ID, 10),
		"category_ids":  strconv.FormatInt(category.ID, 10),
	}, map[string]string{"front.jpg": "front bytes"})

	req := httptest.NewRequest(http.MethodPost, "/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create product status = %d, body %s", w.Code, w.Body.String())
	}

	var created api.ProductResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Name != "Speaker" || len(created.Images) != 1 {
		t.Fatalf("unexpected create response: %+v", created)
	}
	if created.Images[0].URL == "" {
		t.Fatal("image url missing from response")
	}

	// Served image bytes round-trip through the blob store.
	req = httptest.NewRequest(http.MethodGet, created.Images[0].URL, nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get image status = %d", w.Code)
	}
	if w.Body.String() != "front bytes" {
		t.Fatalf("image bytes = %q", w.Body.String())
	}

	// Update keeps the existing image and prepends a new one.
	body, contentType = multipartProduct(t, map[string]string{
		"name":           "Speaker",
		"listed_price":   "199.9",
		"selling_price":  "139.9",
		"stock":          "4",
		"brand_id":       strconv.FormatInt(brand.ID, 10),
		"keep_image_ids": strconv.FormatInt(created.Images[0].ID, 10),
	}, map[string]string{"side.jpg": "side bytes"})

	req = httptest.NewRequest(http.MethodPut, "/v1/products/"+strconv.FormatInt(created.ID, 10), body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update product status = %d, body %s", w.Code, w.Body.String())
	}

	var updated api.ProductResponse
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if len(updated.Images) != 2 {
		t.Fatalf("expected 2 images after update, got %d", len(updated.Images))
	}
	if updated.Images[0].OriginalName != "side.jpg" || updated.Images[1].ID != created.Images[0].ID {
		t.Fatalf("image order after update wrong: %+v", updated.Images)
	}
	if updated.SellingPrice != 139.9 {
		t.Fatalf("selling price not updated: %v", updated.SellingPrice)
	}

	// Deactivate then list only active.
	req = httptest.NewRequest(http.MethodPost, "/v1/products/"+strconv.FormatInt(created.ID, 10)+"/deactivate", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("deactivate status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/products?active=true", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	var active []api.ProductResponse
	if err := json.Unmarshal(w.Body.Bytes(), &active); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated product still listed as active: %+v", active)
	}
}

func TestProductNotFoundStatus(t *testing.T) {
	handler, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/products/9999", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.ErrorCode != ErrCodeProductNotFound {
		t.Fatalf("error_code = %d, want %d", errResp.ErrorCode, ErrCodeProductNotFound)
	}
}

func TestMissingImageReturnsNotFound(t *testing.T) {
	handler, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/images/1000_abcdef_gone.jpg", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing image, got %d", w.Code)
	}
	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.ErrorCode != ErrCodeImageNotFound {
		t.Fatalf("error_code = %d, want %d", errResp.ErrorCode, ErrCodeImageNotFound)
	}
}
