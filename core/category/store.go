package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("category not found")

func Create(ctx context.Context, db sqlx.ExtContext, cat Category) error {
	const q = `
	INSERT INTO categories (category_id, name, slug, created_at)
	VALUES ($1, $2, $3, $4)`

	if _, err := db.ExecContext(ctx, q, cat.ID, cat.Name, cat.Slug, cat.CreatedAt); err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}

	return nil
}

func FetchBySlug(ctx context.Context, db sqlx.ExtContext, slug string) (Category, error) {
	const q = `SELECT * FROM categories WHERE slug = $1`

	var cat Category
	if err := sqlx.GetContext(ctx, db, &cat, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("selecting category[%s]: %w", slug, err)
	}

	return cat, nil
}

func List(ctx context.Context, db sqlx.ExtContext) ([]Category, error) {
	const q = `SELECT * FROM categories ORDER BY name`

	cats := []Category{}
	if err := sqlx.SelectContext(ctx, db, &cats, q); err != nil {
		return nil, fmt.Errorf("selecting categories: %w", err)
	}

	return cats, nil
}
