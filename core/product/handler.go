package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/ventrolabs/ventro/api/web"
	"github.com/ventrolabs/ventro/api/weberr"
	"github.com/ventrolabs/ventro/core/category"
	"github.com/ventrolabs/ventro/database"
	"github.com/ventrolabs/ventro/random"
	"github.com/ventrolabs/ventro/validate"
)

// HandleHome lists the whole catalog together with the categories, the
// payload of the storefront landing page.
func HandleHome(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ps, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing products: %w", err)
		}

		cats, err := category.List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing categories: %w", err)
		}

		resp := struct {
			Products   []Product           `json:"products"`
			Categories []category.Category `json:"categories"`
		}{ps, cats}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

func HandleSearch(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		results := []Product{}
		if query != "" {
			var err error
			results, err = Search(ctx, db, query)
			if err != nil {
				return fmt.Errorf("searching products: %w", err)
			}
		}

		resp := struct {
			Query   string    `json:"query"`
			Results []Product `json:"results"`
		}{query, results}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

func HandleCategory(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		slug := web.Param(r, "slug")

		cat, err := category.FetchBySlug(ctx, db, slug)
		if err != nil {
			if errors.Is(err, category.ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching category[%s]: %w", slug, err)
		}

		ps, err := FetchByCategory(ctx, db, cat.ID)
		if err != nil {
			return fmt.Errorf("listing category products: %w", err)
		}

		resp := struct {
			Category category.Category `json:"category"`
			Products []Product         `json:"products"`
		}{cat, ps}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		slug := web.Param(r, "slug")

		p, err := FetchBySlug(ctx, db, slug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product[%s]: %w", slug, err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleAdminList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ps, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing products: %w", err)
		}

		return web.Respond(ctx, w, ps, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn ProductNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		slug := pn.Slug
		if slug == "" {
			slug = Slugify(pn.Title)
		}

		now := time.Now().UTC()
		p := Product{
			ID:          validate.GenerateID(),
			Title:       pn.Title,
			Slug:        slug,
			Description: pn.Description,
			ImageURL:    pn.ImageURL,
			Price:       pn.Price,
			Available:   true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			cat, err := category.FetchBySlug(ctx, tx, pn.CategorySlug)
			if errors.Is(err, category.ErrNotFound) {
				cat = category.Category{
					ID:        validate.GenerateID(),
					Name:      capitalize(pn.CategorySlug),
					Slug:      pn.CategorySlug,
					CreatedAt: now,
				}
				if err := category.Create(ctx, tx, cat); err != nil {
					return fmt.Errorf("creating category[%s]: %w", pn.CategorySlug, err)
				}
			} else if err != nil {
				return fmt.Errorf("fetching category[%s]: %w", pn.CategorySlug, err)
			}

			p.CategoryID = cat.ID
			if err := Create(ctx, tx, p); err != nil {
				return fmt.Errorf("creating product: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, p, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var up ProductUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product[%s]: %w", id, err)
		}

		if up.Title != nil {
			p.Title = *up.Title
		}
		if up.Slug != nil {
			p.Slug = *up.Slug
		}
		if up.Description != nil {
			p.Description = *up.Description
		}
		if up.ImageURL != nil {
			p.ImageURL = *up.ImageURL
		}
		if up.Price != nil {
			p.Price = *up.Price
		}
		if up.Available != nil {
			p.Available = *up.Available
		}
		p.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, p); err != nil {
			return fmt.Errorf("updating product[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Slugify derives a URL slug from the title. A short random suffix keeps
// regenerated slugs from colliding with ones built from the same title.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return strings.ToLower(random.String(8))
	}
	return slug + "-" + strings.ToLower(random.String(4))
}
