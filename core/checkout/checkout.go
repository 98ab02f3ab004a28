// Package checkout drives a cart through the hosted payment flow: build
// a processor session from the cart lines, record a pending order, hand
// the customer to the hosted page, and receive them back.
package checkout

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/ventrolabs/ventro/config"
	"github.com/ventrolabs/ventro/core/cart"
)

// SessionClient is the slice of the processor API the checkout flow
// needs. *session.Client from stripe-go satisfies it.
type SessionClient interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// sessionIDPlaceholder is substituted by the processor when it
// redirects the customer back to the success page.
const sessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// LineItems prices the cart lines for the processor. Catalog prices are
// whole currency units; the processor wants minor units, so amounts are
// scaled by 100 here and nowhere else.
func LineItems(lines []cart.Line, currency string) []*stripe.CheckoutSessionLineItemParams {
	li := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, l := range lines {
		pd := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(l.Product.Title),
		}
		if l.Product.Description != "" {
			pd.Description = stripe.String(l.Product.Description)
		}

		li = append(li, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(l.Quantity)),

			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				UnitAmount:  stripe.Int64(int64(l.Product.Price) * 100),
				ProductData: pd,
			},
		})
	}
	return li
}

// SessionParams assembles a one-time payment session request for the
// given cart lines.
func SessionParams(lines []cart.Line, cfg config.Stripe) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  LineItems(lines, cfg.Currency),
		SuccessURL: stripe.String(cfg.SuccessURL + "?session_id=" + sessionIDPlaceholder),
		CancelURL:  stripe.String(cfg.CancelURL),
	}
}
