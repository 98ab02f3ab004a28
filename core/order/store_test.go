package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ventrolabs/ventro/core/order"
	"github.com/ventrolabs/ventro/database/dbtest"
	"github.com/ventrolabs/ventro/validate"
)

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := dbtest.New(t)
	ctx := context.Background()

	now := time.Now().UTC()
	ord := order.Order{
		ID:         validate.GenerateID(),
		ProviderID: "cs_test_abc",
		Amount:     1300,
		Status:     order.Pending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := order.Create(ctx, db, ord); err != nil {
		t.Fatalf("creating order: %v", err)
	}

	got, err := order.FetchByProviderID(ctx, db, "cs_test_abc")
	if err != nil {
		t.Fatalf("fetching order: %v", err)
	}

	if diff := cmp.Diff(ord, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	up := order.StatusUp{
		ID:        ord.ID,
		Status:    order.Paid,
		UpdatedAt: time.Now().UTC(),
	}
	if err := order.UpdateStatus(ctx, db, up); err != nil {
		t.Fatalf("updating status: %v", err)
	}

	got, err = order.FetchByProviderID(ctx, db, "cs_test_abc")
	if err != nil {
		t.Fatalf("fetching order after update: %v", err)
	}
	if got.Status != order.Paid {
		t.Fatalf("expected status paid, got %s", got.Status)
	}

	if _, err := order.FetchByProviderID(ctx, db, "cs_unknown"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	later := order.Order{
		ID:         validate.GenerateID(),
		ProviderID: "cs_test_def",
		Amount:     500,
		Status:     order.Pending,
		CreatedAt:  now.Add(time.Minute),
		UpdatedAt:  now.Add(time.Minute),
	}
	if err := order.Create(ctx, db, later); err != nil {
		t.Fatalf("creating second order: %v", err)
	}

	ords, err := order.List(ctx, db)
	if err != nil {
		t.Fatalf("listing orders: %v", err)
	}
	if len(ords) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(ords))
	}
	if ords[0].ProviderID != "cs_test_def" {
		t.Fatalf("expected newest order first, got %s", ords[0].ProviderID)
	}
}
