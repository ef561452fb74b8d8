package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"prodstore/internal/config"
)

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	s.withLimiter(w, r, s.uploadLimiter, "upload", func() {
		form, ok := s.parseProductForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		product, err := s.catalog.Create(r.Context(), form.input, form.uploads)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, toProductResponse(product))
	})
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	s.withLimiter(w, r, s.uploadLimiter, "upload", func() {
		id, ok := s.pathIDOrBadRequest(w, r)
		if !ok {
			return
		}
		form, ok := s.parseProductForm(w, r)
		if !ok {
			return
		}
		defer form.close()

		product, err := s.catalog.Update(r.Context(), id, form.input, form.keepImageIDs, form.uploads)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, toProductResponse(product))
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	product, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := queryBool(r, "active")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}
	products, err := s.catalog.List(r.Context(), activeOnly)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	categoryIDs, err := parseIDList(r.URL.Query().Get("category_ids"))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}
	brandID, err := queryInt64(r, "brand_id")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	products, err := s.catalog.Search(r.Context(), keyword, categoryIDs, brandID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (s *Server) handleActivateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	product, err := s.catalog.Activate(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) handleDeactivateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	product, err := s.catalog.Deactivate(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}

// productForm is a parsed multipart product payload. The upload readers stay
// open until close is called, after the service has drained them.
type productForm struct {
	input        ProductInput
	keepImageIDs []int64
	uploads      []ImageUpload
	files        []multipart.File
}

func (f *productForm) close() {
	for _, file := range f.files {
		file.Close()
	}
}

func (s *Server) parseProductForm(w http.ResponseWriter, r *http.Request) (*productForm, bool) {
	maxBytes := s.uploads.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultUploadMaxBytes
	}
	maxMemory := s.uploads.MultipartMaxMemory
	if maxMemory <= 0 {
		maxMemory = config.DefaultUploadMultipartMemory
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeErrorReq(w, r, http.StatusBadRequest,
				badRequestCode(fmt.Errorf("upload exceeds %d bytes", maxBytes), ErrCodeRequestTooLarge))
			return nil, false
		}
		s.writeErrorReq(w, r, http.StatusBadRequest,
			badRequestCode(fmt.Errorf("invalid multipart payload: %v", err), ErrCodeInvalidUpload))
		return nil, false
	}

	form := &productForm{}
	var err error
	form.input, err = productInputFromForm(r)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	form.keepImageIDs, err = parseIDList(r.FormValue("keep_image_ids"))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return nil, false
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				form.close()
				s.writeErrorReq(w, r, http.StatusBadRequest,
					badRequestCode(fmt.Errorf("open uploaded file %q: %v", header.Filename, err), ErrCodeInvalidUpload))
				return nil, false
			}
			form.files = append(form.files, file)
			form.uploads = append(form.uploads, ImageUpload{Filename: header.Filename, Content: file})
		}
	}

	return form, true
}

func productInputFromForm(r *http.Request) (ProductInput, error) {
	var in ProductInput

	in.Name = strings.TrimSpace(r.FormValue("name"))
	in.Description = r.FormValue("description")

	var err error
	if in.ListedPrice, err = formFloat(r, "listed_price"); err != nil {
		return in, err
	}
	if in.SellingPrice, err = formFloat(r, "selling_price"); err != nil {
		return in, err
	}
	if in.Stock, err = formInt(r, "stock"); err != nil {
		return in, err
	}
	if in.BrandID, err = formInt64(r, "brand_id"); err != nil {
		return in, err
	}
	if in.CategoryIDs, err = parseIDList(r.FormValue("category_ids")); err != nil {
		return in, err
	}

	if raw := strings.TrimSpace(r.FormValue("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return in, badRequestCode(fmt.Errorf("invalid active"), ErrCodeInvalidArgument)
		}
		in.Active = &active
	}

	return in, nil
}

func formFloat(r *http.Request, key string) (float64, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badRequestCode(fmt.Errorf("invalid %s", key), ErrCodeInvalidPrice)
	}
	return value, nil
}

func formInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequestCode(fmt.Errorf("invalid %s", key), ErrCodeInvalidArgument)
	}
	return value, nil
}

func formInt64(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badRequestCode(fmt.Errorf("invalid %s", key), ErrCodeInvalidArgument)
	}
	return value, nil
}
