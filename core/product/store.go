package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("product not found")

func Create(ctx context.Context, db sqlx.ExtContext, p Product) error {
	const q = `
	INSERT INTO products
		(product_id, category_id, title, slug, description, image_url, price, available, created_at, updated_at, version)
	VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)`

	_, err := db.ExecContext(ctx, q,
		p.ID, p.CategoryID, p.Title, p.Slug, p.Description,
		p.ImageURL, p.Price, p.Available, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func Update(ctx context.Context, db sqlx.ExtContext, p Product) error {
	const q = `
	UPDATE products SET
		category_id = $2,
		title       = $3,
		slug        = $4,
		description = $5,
		image_url   = $6,
		price       = $7,
		available   = $8,
		updated_at  = $9,
		version     = version + 1
	WHERE product_id = $1`

	_, err := db.ExecContext(ctx, q,
		p.ID, p.CategoryID, p.Title, p.Slug, p.Description,
		p.ImageURL, p.Price, p.Available, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating product[%s]: %w", p.ID, err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	const q = `SELECT * FROM products WHERE product_id = $1`

	var p Product
	if err := sqlx.GetContext(ctx, db, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("selecting product[%s]: %w", id, err)
	}

	return p, nil
}

func FetchBySlug(ctx context.Context, db sqlx.ExtContext, slug string) (Product, error) {
	const q = `SELECT * FROM products WHERE slug = $1`

	var p Product
	if err := sqlx.GetContext(ctx, db, &p, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("selecting product[%s]: %w", slug, err)
	}

	return p, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]Product, error) {
	const q = `SELECT * FROM products ORDER BY title`

	ps := []Product{}
	if err := sqlx.SelectContext(ctx, db, &ps, q); err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}

	return ps, nil
}

func FetchByCategory(ctx context.Context, db sqlx.ExtContext, categoryID string) ([]Product, error) {
	const q = `SELECT * FROM products WHERE category_id = $1 ORDER BY title`

	ps := []Product{}
	if err := sqlx.SelectContext(ctx, db, &ps, q, categoryID); err != nil {
		return nil, fmt.Errorf("selecting products of category[%s]: %w", categoryID, err)
	}

	return ps, nil
}

// Search matches the text anywhere in the title, ignoring case.
func Search(ctx context.Context, db sqlx.ExtContext, text string) ([]Product, error) {
	const q = `SELECT * FROM products WHERE title ILIKE '%' || $1 || '%' ORDER BY title`

	ps := []Product{}
	if err := sqlx.SelectContext(ctx, db, &ps, q, text); err != nil {
		return nil, fmt.Errorf("searching products[%s]: %w", text, err)
	}

	return ps, nil
}
