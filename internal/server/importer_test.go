package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prodstore/internal/api"
)

func TestImportSeed(t *testing.T) {
	handler, _ := testHandler(t)

	seed := api.CatalogSeed{
		Brands:     []string{"Acme", "Globex"},
		Categories: []string{"Audio"},
		Products: []api.SeedProduct{
			{Name: "Speaker", ListedPrice: 100, SellingPrice: 90, Stock: 3, Brand: "Acme", Categories: []string{"Audio"}},
		},
		Staff: []api.SeedStaffMember{
			{Username: "admin", Password: "correct-horse"},
		},
	}
	payload, err := json.Marshal(seed)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}

	post := func() api.ImportResponse {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/v1/import", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("import status = %d, body %s", w.Code, w.Body.String())
		}
		var resp api.ImportResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode import response: %v", err)
		}
		return resp
	}

	first := post()
	if first.BrandsCreated != 2 || first.CategoriesCreated != 1 || first.ProductsCreated != 1 || first.StaffCreated != 1 {
		t.Fatalf("unexpected first import: %+v", first)
	}
	if first.Skipped != 0 {
		t.Fatalf("nothing should be skipped on first import: %+v", first)
	}

	// Importing once staff exists requires authentication.
	req := httptest.NewRequest(http.MethodPost, "/v1/import", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 once staff exists, got %d", w.Code)
	}

	// Login with the imported staff account and re-import; everything skips.
	loginBody, _ := json.Marshal(api.LoginRequest{Username: "admin", Password: "correct-horse"})
	req = httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	var login api.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if login.Token == "" {
		t.Fatal("expected session token")
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/import", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authed import status = %d, body %s", w.Code, w.Body.String())
	}
	var second api.ImportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode second import: %v", err)
	}
	if second.BrandsCreated != 0 || second.ProductsCreated != 0 || second.StaffCreated != 0 {
		t.Fatalf("second import must create nothing: %+v", second)
	}
	if second.Skipped != 5 {
		t.Fatalf("expected all 5 entries skipped, got %+v", second)
	}
}

func TestImportUnknownBrandFails(t *testing.T) {
	handler, _ := testHandler(t)

	seed := api.CatalogSeed{
		Products: []api.SeedProduct{
			{Name: "Orphan", ListedPrice: 1, SellingPrice: 1, Brand: "Nowhere"},
		},
	}
	payload, _ := json.Marshal(seed)

	req := httptest.NewRequest(http.MethodPost, "/v1/import", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var errResp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.ErrorCode != ErrCodeImportFailed {
		t.Fatalf("error_code = %d, want %d", errResp.ErrorCode, ErrCodeImportFailed)
	}
}
