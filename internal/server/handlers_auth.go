package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"prodstore/internal/api"
)

func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if s.authService == nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, internalError(fmt.Errorf("auth service is not configured")))
		return
	}

	var req api.LoginRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	now := time.Now().UTC()
	limiterKey := loginAttemptKey(req.Username, r)
	if s.loginLimiter != nil && !s.loginLimiter.Allow(limiterKey, now) {
		s.writeErrorReq(w, r, http.StatusTooManyRequests, apiError{
			status:  http.StatusTooManyRequests,
			code:    "resource_exhausted",
			errCode: ErrCodeResourceExhausted,
			err:     fmt.Errorf("too many login attempts; retry later"),
		})
		return
	}

	result, err := s.authService.Login(r.Context(), req.Username, req.Password, now)
	if err != nil {
		message := strings.ToLower(strings.TrimSpace(err.Error()))
		switch {
		case errors.Is(err, errInvalidCredentials):
			if s.loginLimiter != nil {
				s.loginLimiter.RegisterFailure(limiterKey, now)
			}
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("invalid credentials")))
			return
		case strings.Contains(message, "username") || strings.Contains(message, "password"):
			s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(err, ErrCodeInvalidArgument))
			return
		default:
			s.writeStoreError(w, r, err)
			return
		}
	}
	if s.loginLimiter != nil {
		s.loginLimiter.Reset(limiterKey)
	}

	s.writeJSON(w, http.StatusOK, api.LoginResponse{
		Token:     result.Token,
		Username:  result.Staff.Username,
		ExpiresAt: result.ExpiresAt,
	})
}

func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" && s.authService != nil {
		if err := s.authService.RevokeSessionToken(r.Context(), token, time.Now().UTC()); err != nil {
			s.writeStoreError(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func loginAttemptKey(username string, r *http.Request) string {
	user := strings.ToLower(strings.TrimSpace(username))
	if user == "" {
		user = "<empty>"
	}
	ip := requestClientIP(r)
	if ip == "" {
		ip = "<unknown>"
	}
	return ip + "|" + user
}

func requestClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(remote)
	if err == nil {
		return strings.TrimSpace(host)
	}
	return remote
}
