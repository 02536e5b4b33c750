package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// Client is the typed wrapper over the EcoWave REST backend. It is the only
// component that performs network I/O; every operation is a single
// request/response round trip with no retries and no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the given base origin,
// e.g. "http://localhost:5001/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithHTTP creates a client with a caller-supplied http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListProducts fetches products, optionally narrowed by category and search
// text. An empty or "all" category is omitted from the query, as is an
// empty search.
func (c *Client) ListProducts(ctx context.Context, filters ProductFilters) ([]Product, error) {
	params := url.Values{}
	if filters.Category != "" && filters.Category != "all" {
		params.Set("category", filters.Category)
	}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}

	endpoint := c.baseURL + "/products"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var resp struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return resp.Products, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var resp struct {
		Product *Product `json:"product"`
	}
	err := c.do(ctx, http.MethodGet, c.baseURL+"/products/"+url.PathEscape(id), "", nil, &resp)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return resp.Product, nil
}

// CreateProduct creates a new listing and returns it with the
// backend-assigned ID.
func (c *Client) CreateProduct(ctx context.Context, product NewProduct) (*Product, error) {
	var resp struct {
		Product *Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/products", "", product, &resp); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return resp.Product, nil
}

// UpdateProduct applies a partial update. Only non-nil fields are sent;
// omitted fields are left untouched server-side.
func (c *Client) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*Product, error) {
	var resp struct {
		Product *Product `json:"product"`
	}
	err := c.do(ctx, http.MethodPut, c.baseURL+"/products/"+url.PathEscape(id), "", update, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return resp.Product, nil
}

// DeleteProduct removes a listing. The backend rejects the call when the
// caller is not the owner.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, c.baseURL+"/products/"+url.PathEscape(id), "", nil, nil); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// MarkProductSold marks a listing as sold, crediting impact to seller and
// buyer. Requires a bearer token; the backend's error message is surfaced
// when it rejects the call.
func (c *Client) MarkProductSold(ctx context.Context, id, buyerEmail, token string) error {
	body := map[string]string{"buyer_email": buyerEmail}
	endpoint := c.baseURL + "/products/" + url.PathEscape(id) + "/sold"
	if err := c.do(ctx, http.MethodPost, endpoint, token, body, nil); err != nil {
		return err
	}
	return nil
}

// ListProductsBySeller fetches all listings belonging to a seller email.
func (c *Client) ListProductsBySeller(ctx context.Context, email string) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"`
	}
	endpoint := c.baseURL + "/products/seller/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch seller products: %w", err)
	}
	return resp.Products, nil
}

// GetImpactStats fetches the authenticated user's aggregate impact stats.
// Requires a bearer token.
func (c *Client) GetImpactStats(ctx context.Context, token string) (*ImpactStats, error) {
	var resp struct {
		Impact *ImpactStats `json:"impact"`
	}
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/user/impact", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Impact, nil
}

// CreateInquiry submits a buyer inquiry and reports whether the seller
// notification email was actually dispatched.
func (c *Client) CreateInquiry(ctx context.Context, req InquiryRequest) (*Inquiry, bool, error) {
	var resp struct {
		Inquiry   *Inquiry `json:"inquiry"`
		EmailSent bool     `json:"email_sent"`
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/inquiries", "", req, &resp); err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Message != "" {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("failed to submit inquiry: %w", err)
	}
	return resp.Inquiry, resp.EmailSent, nil
}

// HTTPError is a non-success response, optionally carrying the backend's
// human-readable message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// do performs one round trip: encode the body, attach the bearer token when
// present, decode the response into out.
func (c *Client) do(ctx context.Context, method, endpoint, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeErrorMessage extracts the backend's error text. Product and inquiry
// endpoints use "error"; the auth middleware uses "message".
func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
