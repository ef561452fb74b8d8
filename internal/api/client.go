package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	httpTimeoutEnvKey  = "PRODSTORE_HTTP_TIMEOUT"
	apiTokenEnvKey     = "PRODSTORE_API_TOKEN"
)

// ImageFile is one image part for a multipart product upload. Name is the
// client-side filename, Reader supplies the bytes.
type ImageFile struct {
	Name   string
	Reader io.Reader
}

// ProductUpload carries the fields of a multipart product create or update.
// KeepImageIDs only matters on update: images not listed there are removed.
type ProductUpload struct {
	Name         string
	ListedPrice  float64
	SellingPrice float64
	Description  string
	Stock        int
	Active       *bool
	BrandID      int64
	CategoryIDs  []int64
	KeepImageIDs []int64
	Images       []ImageFile
}

// Client is a simple HTTP client for the prodstore API.
type Client struct {
	baseURL   string
	http      *http.Client
	authToken string
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: httpTimeoutFromEnv()},
		authToken: strings.TrimSpace(os.Getenv(apiTokenEnvKey)),
	}
}

// SetToken overrides the session token read from the environment.
func (c *Client) SetToken(token string) {
	c.authToken = strings.TrimSpace(token)
}

// Ping checks whether the API server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) GetInfo(ctx context.Context) (InfoResponse, error) {
	var resp InfoResponse
	err := c.do(ctx, http.MethodGet, "/v1/info", nil, nil, &resp)
	return resp, err
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", nil, req, &resp)
	return resp, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil, nil)
}

func (c *Client) CreateProduct(ctx context.Context, upload ProductUpload) (ProductResponse, error) {
	var resp ProductResponse
	err := c.doMultipart(ctx, http.MethodPost, "/v1/products", upload, &resp)
	return resp, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, upload ProductUpload) (ProductResponse, error) {
	var resp ProductResponse
	err := c.doMultipart(ctx, http.MethodPut, "/v1/products/"+strconv.FormatInt(id, 10), upload, &resp)
	return resp, err
}

func (c *Client) GetProduct(ctx context.Context, id int64) (ProductResponse, error) {
	var resp ProductResponse
	err := c.do(ctx, http.MethodGet, "/v1/products/"+strconv.FormatInt(id, 10), nil, nil, &resp)
	return resp, err
}

func (c *Client) ListProducts(ctx context.Context, query url.Values) ([]ProductResponse, error) {
	var resp []ProductResponse
	err := c.do(ctx, http.MethodGet, "/v1/products", query, nil, &resp)
	return resp, err
}

func (c *Client) SearchProducts(ctx context.Context, query url.Values) ([]ProductResponse, error) {
	var resp []ProductResponse
	err := c.do(ctx, http.MethodGet, "/v1/products/search", query, nil, &resp)
	return resp, err
}

func (c *Client) ActivateProduct(ctx context.Context, id int64) (ProductResponse, error) {
	var resp ProductResponse
	err := c.do(ctx, http.MethodPost, "/v1/products/"+strconv.FormatInt(id, 10)+"/activate", nil, nil, &resp)
	return resp, err
}

func (c *Client) DeactivateProduct(ctx context.Context, id int64) (ProductResponse, error) {
	var resp ProductResponse
	err := c.do(ctx, http.MethodPost, "/v1/products/"+strconv.FormatInt(id, 10)+"/deactivate", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateBrand(ctx context.Context, req BrandCreateRequest) (BrandResponse, error) {
	var resp BrandResponse
	err := c.do(ctx, http.MethodPost, "/v1/brands", nil, req, &resp)
	return resp, err
}

func (c *Client) GetBrand(ctx context.Context, id int64) (BrandResponse, error) {
	var resp BrandResponse
	err := c.do(ctx, http.MethodGet, "/v1/brands/"+strconv.FormatInt(id, 10), nil, nil, &resp)
	return resp, err
}

func (c *Client) ListBrands(ctx context.Context) ([]BrandResponse, error) {
	var resp []BrandResponse
	err := c.do(ctx, http.MethodGet, "/v1/brands", nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateCategory(ctx context.Context, req CategoryCreateRequest) (CategoryResponse, error) {
	var resp CategoryResponse
	err := c.do(ctx, http.MethodPost, "/v1/categories", nil, req, &resp)
	return resp, err
}

func (c *Client) GetCategory(ctx context.Context, id int64) (CategoryResponse, error) {
	var resp CategoryResponse
	err := c.do(ctx, http.MethodGet, "/v1/categories/"+strconv.FormatInt(id, 10), nil, nil, &resp)
	return resp, err
}

func (c *Client) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	var resp []CategoryResponse
	err := c.do(ctx, http.MethodGet, "/v1/categories", nil, nil, &resp)
	return resp, err
}

// Import sends a catalog seed to the import endpoint.
func (c *Client) Import(ctx context.Context, seed CatalogSeed) (ImportResponse, error) {
	var resp ImportResponse
	err := c.do(ctx, http.MethodPost, "/v1/import", nil, seed, &resp)
	return resp, err
}

// DownloadImage streams one stored image to a writer.
func (c *Client) DownloadImage(ctx context.Context, storedName string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/images/"+url.PathEscape(storedName), nil)
	if err != nil {
		return err
	}
	c.setAuthHeader(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, upload ProductUpload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := writeUploadFields(mw, upload); err != nil {
		return err
	}
	for _, img := range upload.Images {
		part, err := mw.CreateFormFile("images", img.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, img.Reader); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuthHeader(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func writeUploadFields(mw *multipart.Writer, upload ProductUpload) error {
	fields := map[string]string{
		"name":          upload.Name,
		"listed_price":  strconv.FormatFloat(upload.ListedPrice, 'f', -1, 64),
		"selling_price": strconv.FormatFloat(upload.SellingPrice, 'f', -1, 64),
		"stock":         strconv.Itoa(upload.Stock),
		"brand_id":      strconv.FormatInt(upload.BrandID, 10),
	}
	if upload.Description != "" {
		fields["description"] = upload.Description
	}
	if upload.Active != nil {
		fields["active"] = strconv.FormatBool(*upload.Active)
	}
	if len(upload.CategoryIDs) > 0 {
		fields["category_ids"] = joinIDs(upload.CategoryIDs)
	}
	if len(upload.KeepImageIDs) > 0 {
		fields["keep_image_ids"] = joinIDs(upload.KeepImageIDs)
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return err
		}
	}
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return &APIError{
			Status:    resp.StatusCode,
			Code:      errResp.Code,
			ErrorCode: errResp.ErrorCode,
			Message:   errResp.Error,
		}
	}
	return fmt.Errorf("api error: %s", resp.Status)
}

func (c *Client) setAuthHeader(req *http.Request) {
	if c.authToken == "" || req == nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
