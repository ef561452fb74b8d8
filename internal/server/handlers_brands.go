package server

import (
	"net/http"

	"prodstore/internal/api"
)

func (s *Server) handleCreateBrand(w http.ResponseWriter, r *http.Request) {
	var req api.BrandCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	brand, err := s.catalog.CreateBrand(r.Context(), req.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toBrandResponse(*brand))
}

func (s *Server) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	brand, err := s.catalog.GetBrand(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toBrandResponse(*brand))
}

func (s *Server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.catalog.ListBrands(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]api.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, toBrandResponse(b))
	}
	s.writeJSON(w, http.StatusOK, out)
}
