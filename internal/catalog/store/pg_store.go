package store

import (
	"context"
	"errors"
	"fmt"

	caterrors "github.com/acmeshop/catalog/internal/catalog/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	findAllQuery = `SELECT id, name, description, price, quantity FROM products ORDER BY id`
	createQuery  = `INSERT INTO products (name, description, price, quantity)
	                VALUES ($1, $2, $3, $4)
	                RETURNING id, name, description, price, quantity`
	updateQuery = `UPDATE products
	               SET name = $2, description = $3, price = $4, quantity = $5
	               WHERE id = $1
	               RETURNING id, name, description, price, quantity`
	deleteQuery = `DELETE FROM products WHERE id = $1`
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

// FindAll retrieves all available products ordered by ID.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx, findAllQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var product Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}

// Create adds a new product to the system. The database assigns the ID.
// Returns an error if the product cannot be created.
func (p *PgStore) Create(ctx context.Context, name, description string, price float64, quantity int64) (*Product, error) {
	var product Product
	err := p.db.QueryRow(ctx, createQuery, name, description, price, quantity).
		Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update replaces all business fields of an existing product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, id int64, name, description string, price float64, quantity int64) (*Product, error) {
	var product Product
	err := p.db.QueryRow(ctx, updateQuery, id, name, description, price, quantity).
		Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, caterrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, deleteQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return caterrors.ErrProductNotFound
	}
	return nil
}
