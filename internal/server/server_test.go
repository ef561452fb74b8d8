package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prodstore/internal/api"
)

func TestListenAddrRemoteGuard(t *testing.T) {
	t.Run("allows loopback", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		addr, err := ListenAddr("http://127.0.0.1:7380")
		if err != nil {
			t.Fatalf("expected loopback to be allowed, got error: %v", err)
		}
		if addr != "127.0.0.1:7380" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("blocks non-loopback by default", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		_, err := ListenAddr("http://0.0.0.0:7380")
		if err == nil {
			t.Fatal("expected error for non-loopback listen host")
		}
	})

	t.Run("allows non-loopback when explicitly enabled", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "true")
		addr, err := ListenAddr("http://0.0.0.0:7380")
		if err != nil {
			t.Fatalf("expected allow-remote to permit host, got error: %v", err)
		}
		if addr != "0.0.0.0:7380" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})
}

func TestWithAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("reads pass without a token", func(t *testing.T) {
		srv := &Server{apiToken: "token"}
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 for public read, got %d", w.Code)
		}
	})

	t.Run("denies mutation without a token", func(t *testing.T) {
		srv := &Server{apiToken: "token"}
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodPost, "/v1/products", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		if errResp.ErrorCode != ErrCodeUnauthorized {
			t.Fatalf("expected error_code %d, got %d", ErrCodeUnauthorized, errResp.ErrorCode)
		}
	})

	t.Run("allows mutation with the api token", func(t *testing.T) {
		srv := &Server{apiToken: "token"}
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodPost, "/v1/products", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("login stays open", func(t *testing.T) {
		srv := &Server{apiToken: "token"}
		called := false
		handler := srv.withAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusNoContent)
		}))

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if !called {
			t.Fatal("login must not require auth")
		}
	})

	t.Run("open instance accepts mutations", func(t *testing.T) {
		srv := &Server{}
		handler := srv.withAuth(next)

		req := httptest.NewRequest(http.MethodPost, "/v1/products", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 with no token and no staff, got %d", w.Code)
		}
	})
}
