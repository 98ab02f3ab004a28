package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
	"github.com/ventrolabs/ventro/api/weberr"
	"github.com/ventrolabs/ventro/config"
	"github.com/ventrolabs/ventro/database/dbtest"
	"github.com/ventrolabs/ventro/validate"
)

const testWebhookSecret = "whsec_test_secret"

func signedEvent(t *testing.T, eventType string, session map[string]any) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	raw, err := json.Marshal(session)
	if err != nil {
		t.Fatal(err)
	}

	evt := stripe.Event{
		APIVersion: "2022-11-15",
		Type:       eventType,
		Data: &stripe.EventData{
			Raw: json.RawMessage(raw),
		},
	}

	b, err := json.Marshal(evt)
	if err != nil {
		t.Fatal(err)
	}

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   b,
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})

	r := httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewBuffer(b))
	r.Header.Set("Stripe-Signature", signed.Header)
	return r, httptest.NewRecorder()
}

func TestWebhookRejectsUnsignedEvents(t *testing.T) {
	h := HandleStripeWebhook(nil, config.Stripe{WebhookSecret: testWebhookSecret})

	r := httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()

	err := h(r.Context(), w, r)
	if err == nil {
		t.Fatal("expected an error for an unsigned event")
	}
	if _, status, ok := weberr.Response(err); !ok || status != http.StatusBadRequest {
		t.Fatalf("expected a 400 response error, got %v", err)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	h := HandleStripeWebhook(nil, config.Stripe{WebhookSecret: testWebhookSecret})

	r := httptest.NewRequest(http.MethodPost, "/webhook/stripe", bytes.NewBufferString("{}"))
	r.Header.Set("Stripe-Signature", "t=123,v1=bogus")
	w := httptest.NewRecorder()

	err := h(r.Context(), w, r)
	if err == nil {
		t.Fatal("expected an error for a badly signed event")
	}
	if _, status, ok := weberr.Response(err); !ok || status != http.StatusBadRequest {
		t.Fatalf("expected a 400 response error, got %v", err)
	}
}

func TestWebhookIgnoresUnrelatedEvents(t *testing.T) {
	h := HandleStripeWebhook(nil, config.Stripe{WebhookSecret: testWebhookSecret})

	r, w := signedEvent(t, "payment_intent.created", map[string]any{"id": "pi_1"})

	if err := h(r.Context(), w, r); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestWebhookSettlesOrders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := dbtest.New(t)
	ctx := context.Background()

	h := HandleStripeWebhook(db, config.Stripe{WebhookSecret: testWebhookSecret})

	now := time.Now().UTC()
	seed := func(providerID string) {
		t.Helper()
		ord := Order{
			ID:         validate.GenerateID(),
			ProviderID: providerID,
			Amount:     1300,
			Status:     Pending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := Create(ctx, db, ord); err != nil {
			t.Fatalf("creating order: %v", err)
		}
	}
	seed("cs_done_1")
	seed("cs_late_1")

	r, w := signedEvent(t, "checkout.session.completed", map[string]any{
		"id":   "cs_done_1",
		"mode": "payment",
	})
	if err := h(r.Context(), w, r); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	got, err := FetchByProviderID(ctx, db, "cs_done_1")
	if err != nil {
		t.Fatalf("fetching settled order: %v", err)
	}
	if got.Status != Paid {
		t.Fatalf("expected status paid, got %s", got.Status)
	}

	r, w = signedEvent(t, "checkout.session.expired", map[string]any{
		"id":   "cs_late_1",
		"mode": "payment",
	})
	if err := h(r.Context(), w, r); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	got, err = FetchByProviderID(ctx, db, "cs_late_1")
	if err != nil {
		t.Fatalf("fetching expired order: %v", err)
	}
	if got.Status != Expired {
		t.Fatalf("expected status expired, got %s", got.Status)
	}

	// An event for an order that was never recorded is a failure, not a
	// silent ack.
	r, w = signedEvent(t, "checkout.session.completed", map[string]any{
		"id":   "cs_unknown_1",
		"mode": "payment",
	})
	if err := h(r.Context(), w, r); err == nil {
		t.Fatal("expected an error for an unknown provider id")
	}
}

func TestWebhookIgnoresNonPaymentSessions(t *testing.T) {
	h := HandleStripeWebhook(nil, config.Stripe{WebhookSecret: testWebhookSecret})

	r, w := signedEvent(t, "checkout.session.completed", map[string]any{
		"id":   "cs_sub_1",
		"mode": "subscription",
	})

	if err := h(r.Context(), w, r); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}
