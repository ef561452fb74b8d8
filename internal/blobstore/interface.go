package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrWrite and ErrDelete classify genuine I/O failures so callers can report
// a failed write distinctly from a failed post-commit delete.
var (
	ErrWrite  = errors.New("blob write failed")
	ErrDelete = errors.New("blob delete failed")
)

// BlobStore is the byte-storage abstraction used by the product catalog for
// image payloads. Stored names are globally unique across all products.
type BlobStore interface {
	// Store writes payload bytes under a new collision-resistant name derived
	// from suggestedName and returns that name.
	Store(ctx context.Context, r io.Reader, suggestedName string) (string, error)
	// Open returns a reader for a stored blob.
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
	// Delete removes a blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, storedName string) error
}

func writeError(err error) error {
	return fmt.Errorf("%w: %v", ErrWrite, err)
}

func deleteError(err error) error {
	return fmt.Errorf("%w: %v", ErrDelete, err)
}
