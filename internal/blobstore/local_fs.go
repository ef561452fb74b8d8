package blobstore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	nameTokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	nameTokenLength   = 6
	maxNameLength     = 160
)

// LocalFS stores image blobs as flat files under a single root directory.
// Stored names carry a timestamp plus random token prefix, so a shared
// namespace cannot collide even for repeated original filenames.
type LocalFS struct {
	root string
}

// NewLocalFS creates a local blob store rooted at root. The root and its
// staging directory are created if absent.
func NewLocalFS(root string) (*LocalFS, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &LocalFS{root: abs}, nil
}

// Store streams payload bytes to a staging file and moves it into place under
// a fresh unique name.
func (s *LocalFS) Store(ctx context.Context, r io.Reader, suggestedName string) (string, error) {
	if s == nil {
		return "", writeError(fmt.Errorf("blob store is not configured"))
	}
	if r == nil {
		return "", writeError(fmt.Errorf("reader is required"))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	storedName, err := uniqueStoredName(suggestedName)
	if err != nil {
		return "", writeError(err)
	}

	tmp, err := os.CreateTemp(filepath.Join(s.root, "tmp"), "store-*")
	if err != nil {
		return "", writeError(err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		cleanup()
		return "", writeError(err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", writeError(err)
	}

	dst := filepath.Join(s.root, storedName)
	if err := os.Rename(tmpPath, dst); err != nil {
		cleanup()
		return "", writeError(err)
	}

	return storedName, nil
}

// Open returns a reader for a stored blob.
func (s *LocalFS) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	if s == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFromName(storedName)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes a stored blob. Missing files are ignored so double deletes
// and crash-replay cleanup stay error free.
func (s *LocalFS) Delete(ctx context.Context, storedName string) error {
	if s == nil {
		return deleteError(fmt.Errorf("blob store is not configured"))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFromName(storedName)
	if err != nil {
		return deleteError(err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return deleteError(err)
	}
	return nil
}

// uniqueStoredName derives a collision-resistant flat-namespace name:
// <unix-millis>_<token>_<sanitized original name>.
func uniqueStoredName(suggestedName string) (string, error) {
	token, err := randomToken(nameTokenLength)
	if err != nil {
		return "", err
	}
	base := sanitizeName(suggestedName)
	name := fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), token, base)
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return name, nil
}

func sanitizeName(raw string) string {
	base := filepath.Base(strings.TrimSpace(raw))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "blob"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "blob"
	}
	return out
}

func randomToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i := range buf {
		out[i] = nameTokenAlphabet[int(buf[i])%len(nameTokenAlphabet)]
	}
	return string(out), nil
}

func (s *LocalFS) pathFromName(storedName string) (string, error) {
	storedName = strings.TrimSpace(storedName)
	if storedName == "" {
		return "", fmt.Errorf("stored name is required")
	}
	if ValidStoredName(storedName) != nil {
		return "", fmt.Errorf("invalid stored name")
	}
	return filepath.Join(s.root, storedName), nil
}

// ValidStoredName rejects names that could escape the blob root.
func ValidStoredName(storedName string) error {
	if storedName == "" {
		return fmt.Errorf("stored name is required")
	}
	if strings.ContainsAny(storedName, "/\\") {
		return fmt.Errorf("stored name must not contain path separators")
	}
	clean := filepath.Clean(storedName)
	if clean != storedName || clean == "." || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("invalid stored name")
	}
	return nil
}
