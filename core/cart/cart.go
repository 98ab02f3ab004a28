// Package cart implements the session-scoped shopping cart: a mapping
// from product id to requested quantity, joined against the catalog
// whenever totals are needed.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ventrolabs/ventro/core/product"
)

// Cart maps a product id to its requested quantity. Stored quantities
// are always >= 1; an update that drops a quantity to zero or below
// removes the entry instead.
//
// A cart belongs to one browsing session. Overlapping requests in the
// same session are not synchronized: the last write to the session wins
// and may drop a concurrent update.
type Cart map[string]int

// Add increments the entry for id, creating it if needed. Quantities
// below 1 count as 1. No upper bound is applied.
func (c Cart) Add(id string, qty int) {
	if qty < 1 {
		qty = 1
	}
	c[id] += qty
}

// ParseQuantity parses a raw form value into a quantity. Callers decide
// what to do when the value does not parse.
func ParseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number", raw)
	}
	return n, nil
}

// SetQuantities overwrites entries from raw form values. A value that
// does not parse falls back to 1. A parsed value of zero or less
// removes the entry.
func (c Cart) SetQuantities(updates map[string]string) {
	for id, raw := range updates {
		qty, err := ParseQuantity(raw)
		if err != nil {
			qty = 1
		}

		if qty <= 0 {
			delete(c, id)
			continue
		}
		c[id] = qty
	}
}

// Line is one priced row of the cart, recomputed on every read.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal int             `json:"subtotal"`
}

// Lookup resolves a product id against the catalog.
type Lookup func(ctx context.Context, id string) (product.Product, error)

// Totals joins the cart against the catalog and sums the subtotals.
// Entries whose product no longer exists are skipped. Lines come back
// ordered by product id. Amounts are whole currency units.
func Totals(ctx context.Context, c Cart, lookup Lookup) (int, []Line, error) {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var total int
	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		p, err := lookup(ctx, id)
		if errors.Is(err, product.ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, nil, fmt.Errorf("resolving product[%s]: %w", id, err)
		}

		sub := p.Price * c[id]
		lines = append(lines, Line{Product: p, Quantity: c[id], Subtotal: sub})
		total += sub
	}

	return total, lines, nil
}
