package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"prodstore/internal/blobstore"
)

// handleGetImage streams one stored image blob. Stored names are validated
// before touching the filesystem; a missing blob is a plain 404.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	if s.blobs == nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, internalError(fmt.Errorf("blob store is not configured")))
		return
	}

	name := strings.TrimSpace(r.PathValue("name"))
	if err := blobstore.ValidStoredName(name); err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(err, ErrCodeInvalidID))
		return
	}

	rc, err := s.blobs.Open(r.Context(), name)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(fmt.Errorf("image not found"), ErrCodeImageNotFound))
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")

	if _, err := io.Copy(w, rc); err != nil {
		s.log().Debug("stream image interrupted", "stored_name", name, "error", err)
	}
}
