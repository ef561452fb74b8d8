package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// withAuth guards mutating endpoints. Reads, health, and login stay open.
// A request is authorized by the configured API bearer token or by a valid
// staff session token. When neither an API token nor any enabled staff
// account exists the instance runs open, which is the single-user local
// default.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !requiresAuth(r) {
			next.ServeHTTP(w, r)
			return
		}

		required, err := s.authRequired(r)
		if err != nil {
			s.writeStoreError(w, r, err)
			return
		}
		if !required {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("missing bearer token")))
			return
		}
		if s.apiToken != "" && token == s.apiToken {
			next.ServeHTTP(w, r)
			return
		}

		if s.authService != nil {
			staff, err := s.authService.AuthenticateSessionToken(r.Context(), token, time.Now().UTC())
			if err != nil {
				s.writeStoreError(w, r, err)
				return
			}
			if staff != nil {
				next.ServeHTTP(w, r.WithContext(contextWithStaff(r.Context(), staff)))
				return
			}
		}

		s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("invalid or expired token")))
	})
}

// requiresAuth reports whether the route mutates catalog state. The read
// side is public, matching a storefront serving product data to anyone.
func requiresAuth(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	if r.URL.Path == "/v1/auth/login" || r.URL.Path == "/v1/auth/logout" {
		return false
	}
	return true
}

func (s *Server) authRequired(r *http.Request) (bool, error) {
	if s.apiToken != "" {
		return true, nil
	}
	if s.authService == nil {
		return false, nil
	}
	return s.authService.AuthRequired(r.Context())
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
