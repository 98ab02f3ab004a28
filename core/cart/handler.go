package cart

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/ventrolabs/ventro/api/flash"
	"github.com/ventrolabs/ventro/api/web"
	"github.com/ventrolabs/ventro/api/weberr"
)

// HandleAdd handles POST /add-to-cart/{product_id} with an optional qty
// form field. A missing or malformed quantity counts as 1. Unknown
// product ids are accepted here and drop out at totals time.
func HandleAdd(carts *Store, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "product_id")
		if id == "" {
			return weberr.BadRequest(fmt.Errorf("missing product id"))
		}

		qty, err := ParseQuantity(r.FormValue("qty"))
		if err != nil {
			qty = 1
		}

		c := carts.Get(ctx)
		c.Add(id, qty)
		carts.Put(ctx, c)

		flash.Add(ctx, sm, flash.Success, "Added to cart")

		back := r.Referer()
		if back == "" {
			back = "/"
		}
		return web.Redirect(ctx, w, back, http.StatusSeeOther)
	}
}

// HandleShow handles GET /cart.
func HandleShow(carts *Store, lookup Lookup) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := carts.Get(ctx)

		total, lines, err := Totals(ctx, c, lookup)
		if err != nil {
			return fmt.Errorf("computing cart totals: %w", err)
		}

		resp := struct {
			Total int    `json:"total"`
			Items []Line `json:"items"`
		}{total, lines}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

// HandleUpdate handles POST /cart/update. Quantities arrive as form
// fields named qty_<product_id>.
func HandleUpdate(carts *Store, sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		form, err := web.Form(r)
		if err != nil {
			return weberr.BadRequest(err)
		}

		updates := make(map[string]string)
		for field, raw := range form {
			if id := strings.TrimPrefix(field, "qty_"); id != field && id != "" {
				updates[id] = raw
			}
		}

		c := carts.Get(ctx)
		c.SetQuantities(updates)
		carts.Put(ctx, c)

		flash.Add(ctx, sm, flash.Success, "Cart updated")

		return web.Redirect(ctx, w, "/cart", http.StatusSeeOther)
	}
}
