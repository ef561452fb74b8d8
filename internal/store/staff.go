package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"prodstore/internal/models"
)

const staffColumns = "id, username, display_name, password_hash, disabled, created_at, updated_at, last_login_at"

// CreateStaff inserts one staff account and fills in its generated id.
func (s *Store) CreateStaff(ctx context.Context, staff *models.Staff) error {
	if staff == nil {
		return fmt.Errorf("staff is required")
	}
	now := time.Now().UTC()
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = now
	}
	if staff.UpdatedAt.IsZero() {
		staff.UpdatedAt = staff.CreatedAt
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO staff (username, display_name, password_hash, disabled, created_at, updated_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		staff.Username,
		nullIfEmpty(staff.DisplayName),
		staff.PasswordHash,
		boolToInt(staff.Disabled),
		formatTime(staff.CreatedAt),
		formatTime(staff.UpdatedAt),
		nullTime(staff.LastLoginAt),
	)
	if err != nil {
		return err
	}
	staff.ID, err = res.LastInsertId()
	return err
}

// GetStaffByUsername returns one staff account, or nil when absent.
func (s *Store) GetStaffByUsername(ctx context.Context, username string) (*models.Staff, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+staffColumns+" FROM staff WHERE username = ?", username)
	return scanStaff(row)
}

// CountEnabledStaff counts staff accounts that can log in.
func (s *Store) CountEnabledStaff(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM staff WHERE disabled = 0").Scan(&count)
	return count, err
}

// CreateStaffSession records a login session keyed by hashed token.
func (s *Store) CreateStaffSession(ctx context.Context, staffID int64, tokenHash string, expiresAt, now time.Time) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO staff_sessions (token_hash, staff_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, tokenHash, staffID, formatTime(now), formatTime(expiresAt)); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE staff SET last_login_at = ? WHERE id = ?", formatTime(now), staffID)
	return err
}

// GetStaffBySessionTokenHash resolves a live session to its staff account.
// Expired, revoked, and unknown sessions all resolve to nil.
func (s *Store) GetStaffBySessionTokenHash(ctx context.Context, tokenHash string, now time.Time) (*models.Staff, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+prefixedStaffColumns("st")+`
		FROM staff st
		JOIN staff_sessions ss ON ss.staff_id = st.id
		WHERE ss.token_hash = ?
		  AND ss.revoked_at IS NULL
		  AND ss.expires_at > ?
		  AND st.disabled = 0
	`, tokenHash, formatTime(now))
	return scanStaff(row)
}

// RevokeStaffSessionByTokenHash marks one session revoked.
func (s *Store) RevokeStaffSessionByTokenHash(ctx context.Context, tokenHash string, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE staff_sessions SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL",
		formatTime(now), tokenHash)
	return err
}

func prefixedStaffColumns(alias string) string {
	return alias + ".id, " + alias + ".username, " + alias + ".display_name, " +
		alias + ".password_hash, " + alias + ".disabled, " + alias + ".created_at, " +
		alias + ".updated_at, " + alias + ".last_login_at"
}

func scanStaff(scanner interface {
	Scan(dest ...any) error
}) (*models.Staff, error) {
	var staff models.Staff
	var displayName, lastLogin sql.NullString
	var disabled int
	var createdAt, updatedAt string

	err := scanner.Scan(&staff.ID, &staff.Username, &displayName, &staff.PasswordHash,
		&disabled, &createdAt, &updatedAt, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	staff.DisplayName = displayName.String
	staff.Disabled = disabled != 0
	if staff.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if staff.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t, err := parseTime(lastLogin.String)
		if err != nil {
			return nil, err
		}
		staff.LastLoginAt = &t
	}
	return &staff, nil
}
