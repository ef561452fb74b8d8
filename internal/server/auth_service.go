package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	internalauth "prodstore/internal/auth"
	"prodstore/internal/models"
	"prodstore/internal/store"
)

var (
	defaultSessionTTL     = 24 * time.Hour
	errInvalidCredentials = errors.New("invalid credentials")
)

// AuthService encapsulates staff login sessions backed by the store.
type AuthService struct {
	store      store.AuthStore
	sessionTTL time.Duration
}

type staffLoginResult struct {
	Staff     *models.Staff
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(authStore store.AuthStore) *AuthService {
	if authStore == nil {
		return nil
	}
	return &AuthService{store: authStore, sessionTTL: defaultSessionTTL}
}

// AuthRequired reports whether any enabled staff account exists. An instance
// without staff runs unauthenticated.
func (a *AuthService) AuthRequired(ctx context.Context) (bool, error) {
	if a == nil || a.store == nil {
		return false, nil
	}
	count, err := a.store.CountEnabledStaff(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *AuthService) Login(ctx context.Context, username, password string, now time.Time) (*staffLoginResult, error) {
	if a == nil || a.store == nil {
		return nil, fmt.Errorf("auth store is required")
	}

	normalized, err := internalauth.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	staff, err := a.store.GetStaffByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.Disabled || !internalauth.VerifyPassword(staff.PasswordHash, password) {
		return nil, errInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}
	expiresAt := now.Add(a.sessionTTL)
	if err := a.store.CreateStaffSession(ctx, staff.ID, hashSessionToken(token), expiresAt, now); err != nil {
		return nil, err
	}

	return &staffLoginResult{Staff: staff, Token: token, ExpiresAt: expiresAt}, nil
}

func (a *AuthService) AuthenticateSessionToken(ctx context.Context, token string, now time.Time) (*models.Staff, error) {
	if a == nil || a.store == nil {
		return nil, nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	return a.store.GetStaffBySessionTokenHash(ctx, hashSessionToken(token), now)
}

func (a *AuthService) RevokeSessionToken(ctx context.Context, token string, now time.Time) error {
	if a == nil || a.store == nil {
		return nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return a.store.RevokeStaffSessionByTokenHash(ctx, hashSessionToken(token), now)
}

func hashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
