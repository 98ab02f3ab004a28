package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ventrolabs/ventro/core/product"
)

func catalog(products map[string]product.Product) Lookup {
	return func(ctx context.Context, id string) (product.Product, error) {
		p, ok := products[id]
		if !ok {
			return product.Product{}, product.ErrNotFound
		}
		return p, nil
	}
}

func TestAddAccumulates(t *testing.T) {
	c := Cart{}

	c.Add("prod-a", 2)
	c.Add("prod-a", 3)

	if got := c["prod-a"]; got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}
	if len(c) != 1 {
		t.Fatalf("expected a single entry, got %d", len(c))
	}
}

func TestAddDefaultsToOne(t *testing.T) {
	c := Cart{}

	c.Add("prod-a", 0)
	c.Add("prod-b", -4)

	if diff := cmp.Diff(Cart{"prod-a": 1, "prod-b": 1}, c); diff != "" {
		t.Fatalf("unexpected cart (-want +got):\n%s", diff)
	}
}

func TestSetQuantities(t *testing.T) {
	tests := []struct {
		name    string
		start   Cart
		updates map[string]string
		want    Cart
	}{
		{
			name:    "overwrites instead of incrementing",
			start:   Cart{"prod-a": 2},
			updates: map[string]string{"prod-a": "7"},
			want:    Cart{"prod-a": 7},
		},
		{
			name:    "zero removes the entry",
			start:   Cart{"prod-a": 2, "prod-b": 1},
			updates: map[string]string{"prod-a": "0"},
			want:    Cart{"prod-b": 1},
		},
		{
			name:    "negative removes the entry",
			start:   Cart{"prod-a": 2},
			updates: map[string]string{"prod-a": "-3"},
			want:    Cart{},
		},
		{
			name:    "unparsable falls back to one",
			start:   Cart{"prod-a": 5},
			updates: map[string]string{"prod-a": "lots"},
			want:    Cart{"prod-a": 1},
		},
		{
			name:    "surrounding spaces are tolerated",
			start:   Cart{"prod-a": 1},
			updates: map[string]string{"prod-a": " 3 "},
			want:    Cart{"prod-a": 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.start.SetQuantities(tt.updates)
			if diff := cmp.Diff(tt.want, tt.start); diff != "" {
				t.Fatalf("unexpected cart (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	if _, err := ParseQuantity("banana"); err == nil {
		t.Fatal("expected an error for a non-numeric quantity")
	}
	n, err := ParseQuantity("12")
	if err != nil {
		t.Fatalf("parsing a valid quantity: %v", err)
	}
	if n != 12 {
		t.Fatalf("expected 12, got %d", n)
	}
}

func TestTotals(t *testing.T) {
	lookup := catalog(map[string]product.Product{
		"prod-a": {ID: "prod-a", Title: "A", Price: 500},
		"prod-b": {ID: "prod-b", Title: "B", Price: 300},
	})

	c := Cart{"prod-a": 2, "prod-b": 1}

	total, lines, err := Totals(context.Background(), c, lookup)
	if err != nil {
		t.Fatalf("computing totals: %v", err)
	}

	if total != 1300 {
		t.Fatalf("expected total 1300, got %d", total)
	}

	want := []Line{
		{Product: product.Product{ID: "prod-a", Title: "A", Price: 500}, Quantity: 2, Subtotal: 1000},
		{Product: product.Product{ID: "prod-b", Title: "B", Price: 300}, Quantity: 1, Subtotal: 300},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestTotalsSkipsUnknownProducts(t *testing.T) {
	lookup := catalog(map[string]product.Product{
		"prod-a": {ID: "prod-a", Title: "A", Price: 500},
	})

	c := Cart{"prod-a": 1, "prod-gone": 4}

	total, lines, err := Totals(context.Background(), c, lookup)
	if err != nil {
		t.Fatalf("computing totals: %v", err)
	}

	if total != 500 {
		t.Fatalf("expected total 500, got %d", total)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
}

func TestTotalsPropagatesLookupFailures(t *testing.T) {
	boom := errors.New("catalog down")
	lookup := func(ctx context.Context, id string) (product.Product, error) {
		return product.Product{}, boom
	}

	if _, _, err := Totals(context.Background(), Cart{"prod-a": 1}, lookup); !errors.Is(err, boom) {
		t.Fatalf("expected the lookup error, got %v", err)
	}
}
