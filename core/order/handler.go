package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
	"github.com/ventrolabs/ventro/api/web"
	"github.com/ventrolabs/ventro/api/weberr"
	"github.com/ventrolabs/ventro/config"
)

// HandleStripeWebhook settles order status from verified processor
// events. The success page the customer lands on never proves payment;
// this is the only place an order becomes paid.
func HandleStripeWebhook(db *sqlx.DB, cfg config.Stripe) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot read the request body: %w", err))
		}

		sig := r.Header.Get("Stripe-Signature")
		if sig == "" {
			return weberr.BadRequest(errors.New("received stripe event is not signed"))
		}

		event, err := webhook.ConstructEvent(b, sig, cfg.WebhookSecret)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("cannot construct stripe event: %w", err))
		}

		var status Status
		switch event.Type {
		case "checkout.session.completed":
			status = Paid
		case "checkout.session.expired":
			status = Expired
		default:
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		var session stripe.CheckoutSession
		if err = json.Unmarshal(event.Data.Raw, &session); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode stripe event: %w", err))
		}

		if session.Mode != stripe.CheckoutSessionModePayment {
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		if err := settle(ctx, db, session.ID, status); err != nil {
			return fmt.Errorf("settling the order bound to payment[%s]: %w", session.ID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func settle(ctx context.Context, db *sqlx.DB, providerID string, status Status) error {
	ord, err := FetchByProviderID(ctx, db, providerID)
	if err != nil {
		return fmt.Errorf("fetching order: %w", err)
	}

	up := StatusUp{
		ID:        ord.ID,
		Status:    status,
		UpdatedAt: time.Now().UTC(),
	}

	if err := UpdateStatus(ctx, db, up); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return nil
}

// HandleList returns every order, newest first.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ords, err := List(ctx, db)
		if err != nil {
			return fmt.Errorf("listing orders: %w", err)
		}

		return web.Respond(ctx, w, ords, http.StatusOK)
	}
}
