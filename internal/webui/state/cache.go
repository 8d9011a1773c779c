// Package state holds the web UI's local mirror of the product collection.
package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/acmeshop/catalog/internal/webui/client"
)

// API is the subset of the catalog client the cache needs.
type API interface {
	List(ctx context.Context) ([]client.Product, error)
	Create(ctx context.Context, fields client.ProductFields) (*client.Product, error)
	Update(ctx context.Context, id int64, fields client.ProductFields) (*client.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductCache is an ordered, single-owner mirror of the catalog's products.
// All mutations are gated on a confirmed API response, so the cache never
// shows state the server has rejected. Operations are serialized under one
// mutex, including their network round trip.
type ProductCache struct {
	mu       sync.Mutex
	api      API
	logger   *slog.Logger
	products []client.Product
	loaded   bool
}

// NewProductCache creates a cache over the given API client.
func NewProductCache(api API, logger *slog.Logger) *ProductCache {
	return &ProductCache{
		api:    api,
		logger: logger.With("component", "cache"),
	}
}

// Products returns a copy of the cached products in order.
func (c *ProductCache) Products() []client.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := make([]client.Product, len(c.products))
	copy(list, c.products)
	return list
}

// Get returns the cached product with the given ID.
func (c *ProductCache) Get(id int64) (client.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return client.Product{}, false
}

// Reload replaces the entire cache with the API's current product list.
// Listing is a best-effort refresh: on failure the existing cache is left
// unchanged and the error is only logged.
func (c *ProductCache) Reload(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.api.List(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Error fetching products", "error", err)
		return
	}
	c.products = products
	c.loaded = true
}

// EnsureLoaded reloads the cache if it has never been successfully loaded.
func (c *ProductCache) EnsureLoaded(ctx context.Context) {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()

	if !loaded {
		c.Reload(ctx)
	}
}

// Submit creates or updates a product through the API. With a non-nil
// editID it updates that product and patches the cached entry matched by
// ID; otherwise it creates and appends. The cache is untouched on failure
// and the API's error propagates to the caller.
func (c *ProductCache) Submit(ctx context.Context, fields client.ProductFields, editID *int64) (*client.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if editID != nil {
		updated, err := c.api.Update(ctx, *editID, fields)
		if err != nil {
			return nil, err
		}
		for i, p := range c.products {
			if p.ID == updated.ID {
				c.products[i] = *updated
				return updated, nil
			}
		}
		// The row exists server-side but a reload dropped it locally.
		c.products = append(c.products, *updated)
		return updated, nil
	}

	created, err := c.api.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	c.products = append(c.products, *created)
	return created, nil
}

// Remove deletes a product through the API and, on confirmed success,
// drops every cached entry with that ID.
func (c *ProductCache) Remove(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.api.Delete(ctx, id); err != nil {
		return err
	}
	kept := c.products[:0]
	for _, p := range c.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.products = kept
	return nil
}
