// Package store provides an interface for product storage operations.
package store

import "context"

// Product represents a product row in the store.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int64
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindAll returns all available products ordered by ID.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Create adds a new product to the system. The store assigns the ID.
	// Returns an error if the product cannot be created.
	Create(ctx context.Context, name, description string, price float64, quantity int64) (*Product, error)

	// Update replaces all business fields of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, name, description string, price float64, quantity int64) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}
