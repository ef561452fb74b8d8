package server

import (
	"net/http"

	"prodstore/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.store.StoreInfo(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	resp := api.InfoResponse{
		Version:       s.version,
		DBPath:        s.dbPath,
		SchemaVersion: info.SchemaVersion,
		ProductCount:  info.ProductCount,
		ActiveCount:   info.ActiveCount,
		BrandCount:    info.BrandCount,
		CategoryCount: info.CategoryCount,
		ImageCount:    info.ImageCount,
	}

	s.writeJSON(w, http.StatusOK, resp)
}
