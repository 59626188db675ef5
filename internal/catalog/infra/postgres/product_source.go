package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	price       BIGINT NOT NULL CHECK (price >= 0),
	position    INTEGER NOT NULL
)`

// ProductRepo stores the catalog in a products table. Position keeps the
// source order the filter falls back to when unsorted.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo creates the products table when missing.
func NewProductRepo(ctx context.Context, db *sql.DB) (*ProductRepo, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create products: %w", err)
	}
	return &ProductRepo{db: db}, nil
}

// Load returns every product in position order.
func (r *ProductRepo) Load(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, category, price
		FROM products
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

// Replace swaps the whole catalog for products in one transaction.
func (r *ProductRepo) Replace(ctx context.Context, products []domain.Product) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, name, description, category, price, position)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range products {
		if _, err = stmt.ExecContext(ctx, p.ID, p.Name, p.Description, p.Category, p.Price, i); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
