package store

import (
	"context"
	"slices"
	"sync"

	caterrors "github.com/acmeshop/catalog/internal/catalog/errors"
)

// inMemory implements ProductStore using an in-memory map.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindAll retrieves all products ordered by ID.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return list, nil
}

// Create creates a new product and returns it. IDs are never reused.
func (s *inMemory) Create(_ context.Context, name, description string, price float64, quantity int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:          s.nextID,
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	}
	s.nextID++
	s.products[product.ID] = product

	return &product, nil
}

// Update replaces all business fields of an existing product.
func (s *inMemory) Update(_ context.Context, id int64, name, description string, price float64, quantity int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return nil, caterrors.ErrProductNotFound
	}
	product := Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	}
	s.products[id] = product
	return &product, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return caterrors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}
