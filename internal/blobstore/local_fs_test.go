package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testStore(t *testing.T) *LocalFS {
	t.Helper()
	s, err := NewLocalFS(filepath.Join(t.TempDir(), "blobs"))
	if err != nil {
		t.Fatalf("new local fs: %v", err)
	}
	return s
}

func TestStoreReturnsUniqueNames(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.Store(ctx, strings.NewReader("payload-one"), "cover.png")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	second, err := s.Store(ctx, strings.NewReader("payload-two"), "cover.png")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct stored names, got %q twice", first)
	}
	if !strings.HasSuffix(first, "_cover.png") {
		t.Fatalf("expected sanitized suffix, got %q", first)
	}

	rc, err := s.Open(ctx, first)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "payload-one" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestStoreSanitizesHostileNames(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	name, err := s.Store(ctx, strings.NewReader("x"), "../../etc/passwd")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		t.Fatalf("stored name %q is not flat", name)
	}
	if err := ValidStoredName(name); err != nil {
		t.Fatalf("stored name %q failed validation: %v", name, err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	name, err := s.Store(ctx, strings.NewReader("x"), "img.jpg")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Delete(ctx, name); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.root, name)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected blob removed, stat err=%v", err)
	}
	if err := s.Delete(ctx, name); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	if err := s.Delete(ctx, "1700000000000_zzzzzz_never-existed.png"); err != nil {
		t.Fatalf("delete of absent blob should succeed, got %v", err)
	}
}

func TestDeleteRejectsTraversal(t *testing.T) {
	s := testStore(t)
	err := s.Delete(context.Background(), "../outside.txt")
	if err == nil {
		t.Fatal("expected error for traversal name")
	}
	if !errors.Is(err, ErrDelete) {
		t.Fatalf("expected ErrDelete kind, got %v", err)
	}
}

func TestOpenMissingBlob(t *testing.T) {
	s := testStore(t)
	_, err := s.Open(context.Background(), "1700000000000_aaaaaa_missing.png")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
