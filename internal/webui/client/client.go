// Package client implements the HTTP client for the product catalog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"
)

// Product mirrors the wire shape of a catalog product.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
}

// ProductFields carries the four business fields for create and update requests.
type ProductFields struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
}

// APIError is a non-2xx response from the catalog API, carrying the
// decoded error message and the HTTP status code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API returned %d: %s", e.Status, e.Message)
}

// Client talks to the catalog REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL. Every request carries the
// given timeout so that a stalled server cannot leave the UI pending forever.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List fetches all products.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create adds a new product and returns the record the server created.
func (c *Client) Create(ctx context.Context, fields ProductFields) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, "/products", fields, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces all business fields of the product with the given ID.
func (c *Client) Update(ctx context.Context, id int64, fields ProductFields) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), fields, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes the product with the given ID.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

// do performs one API round trip, decoding a successful response into out
// (when out is non-nil) and mapping error responses to *APIError.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to catalog API failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: decodeErrorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}

// decodeErrorMessage extracts a human-readable message from an API error
// body, which is either {"error": ...} or {"validation_errors": {field: reason}}.
func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Error            string            `json:"error"`
		ValidationErrors map[string]string `json:"validation_errors"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return "unexpected error"
	}
	if payload.Error != "" {
		return payload.Error
	}
	if len(payload.ValidationErrors) > 0 {
		parts := make([]string, 0, len(payload.ValidationErrors))
		for field, reason := range payload.ValidationErrors {
			parts = append(parts, field+" "+reason)
		}
		slices.Sort(parts)
		return "validation failed: " + strings.Join(parts, "; ")
	}
	return "unexpected error"
}
