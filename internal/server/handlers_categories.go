package server

import (
	"net/http"

	"prodstore/internal/api"
)

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req api.CategoryCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	category, err := s.catalog.CreateCategory(r.Context(), req.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toCategoryResponse(*category))
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	category, err := s.catalog.GetCategory(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toCategoryResponse(*category))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]api.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	s.writeJSON(w, http.StatusOK, out)
}
