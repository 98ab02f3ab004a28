package checkout

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/ventrolabs/ventro/api/flash"
	"github.com/ventrolabs/ventro/api/web"
	"github.com/ventrolabs/ventro/api/weberr"
	"github.com/ventrolabs/ventro/config"
	"github.com/ventrolabs/ventro/core/cart"
	"github.com/ventrolabs/ventro/core/order"
	"github.com/ventrolabs/ventro/validate"
)

// OrderStore records the pending order bound to a payment session.
type OrderStore interface {
	Create(ctx context.Context, ord order.Order) error
}

// HandleShow handles GET /checkout: the order review payload. An empty
// effective cart bounces the customer home.
func HandleShow(carts *cart.Store, sm *scs.SessionManager, lookup cart.Lookup) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := carts.Get(ctx)

		total, lines, err := cart.Totals(ctx, c, lookup)
		if err != nil {
			return fmt.Errorf("computing cart totals: %w", err)
		}

		if len(lines) == 0 {
			flash.Add(ctx, sm, flash.Warning, "Your cart is empty.")
			return web.Redirect(ctx, w, "/", http.StatusFound)
		}

		resp := struct {
			Total int         `json:"total"`
			Items []cart.Line `json:"items"`
		}{total, lines}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

// HandleBegin handles POST /checkout. It creates the processor session,
// records the pending order against the session id, and redirects the
// customer to the hosted payment page. When the cart has no resolvable
// lines it redirects home without touching the processor or creating an
// order. The cart itself is left intact so a cancelled payment can be
// retried.
func HandleBegin(carts *cart.Store, sm *scs.SessionManager, lookup cart.Lookup, orders OrderStore, sc SessionClient, cfg config.Stripe) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := carts.Get(ctx)

		total, lines, err := cart.Totals(ctx, c, lookup)
		if err != nil {
			return fmt.Errorf("computing cart totals: %w", err)
		}

		if len(lines) == 0 {
			flash.Add(ctx, sm, flash.Warning, "Your cart is empty.")
			return web.Redirect(ctx, w, "/", http.StatusSeeOther)
		}

		s, err := sc.New(SessionParams(lines, cfg))
		if err != nil {
			// No order exists for a session that was never created, so
			// the customer can simply retry.
			flash.Add(ctx, sm, flash.Danger, "Payment could not be started, please try again.")
			return weberr.Unavailable(fmt.Errorf("creating checkout session: %w", err))
		}

		now := time.Now().UTC()
		ord := order.Order{
			ID:         validate.GenerateID(),
			ProviderID: s.ID,
			Amount:     total,
			Status:     order.Pending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := orders.Create(ctx, ord); err != nil {
			return fmt.Errorf("creating the order bound to payment[%s]: %w", s.ID, err)
		}

		return web.Redirect(ctx, w, s.URL, http.StatusSeeOther)
	}
}

// Summary is what the success page can show about the payment session.
type Summary struct {
	ID            string `json:"id"`
	AmountTotal   int64  `json:"amountTotal"`
	Currency      string `json:"currency"`
	PaymentStatus string `json:"paymentStatus"`
}

// HandleSuccess handles GET /order_success?session_id=. The session is
// retrieved only to show details; a failed retrieval costs nothing but
// the details. The cart is cleared no matter what: arriving here ends
// the browsing session's purchase, while the order's real status is
// settled by the webhook.
func HandleSuccess(carts *cart.Store, sc SessionClient) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var sum *Summary
		if id := r.URL.Query().Get("session_id"); id != "" {
			if s, err := sc.Get(id, nil); err == nil {
				sum = &Summary{
					ID:            s.ID,
					AmountTotal:   s.AmountTotal,
					Currency:      string(s.Currency),
					PaymentStatus: string(s.PaymentStatus),
				}
			}
		}

		carts.Clear(ctx)

		resp := struct {
			Message string   `json:"message"`
			Session *Summary `json:"session"`
		}{"thank you for your purchase", sum}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

// HandleCancel handles GET /payment_redirect, the cancel address handed
// to the processor. The cart was never cleared, so the customer can go
// back and retry.
func HandleCancel() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		resp := struct {
			Message string `json:"message"`
		}{"payment not completed"}

		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}
