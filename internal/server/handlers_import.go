package server

import (
	"net/http"

	"prodstore/internal/api"
)

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	s.withLimiter(w, r, s.importLimiter, "import", func() {
		var seed api.CatalogSeed
		if !s.decodeJSONReq(w, r, &seed) {
			return
		}

		result, err := s.importSeed(r.Context(), seed)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		s.log().Info("catalog seed imported",
			"brands", result.BrandsCreated,
			"categories", result.CategoriesCreated,
			"products", result.ProductsCreated,
			"staff", result.StaffCreated,
			"skipped", result.Skipped)
		s.writeJSON(w, http.StatusOK, result)
	})
}
