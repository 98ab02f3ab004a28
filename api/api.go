package api

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/ventrolabs/ventro/api/flash"
	"github.com/ventrolabs/ventro/api/middleware"
	"github.com/ventrolabs/ventro/api/web"
	"github.com/ventrolabs/ventro/config"
	"github.com/ventrolabs/ventro/core/cart"
	"github.com/ventrolabs/ventro/core/checkout"
	"github.com/ventrolabs/ventro/core/order"
	"github.com/ventrolabs/ventro/core/product"
	"github.com/ventrolabs/ventro/database"
	"github.com/ventrolabs/ventro/rate"
)

type APIConfig struct {
	Log           logrus.FieldLogger
	DB            *sqlx.DB
	Session       *scs.SessionManager
	Stripe        checkout.SessionClient
	StripeCfg     config.Stripe
	AdminToken    string
	CheckoutLimit *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, middleware.Session(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	carts := cart.NewStore(cfg.Session)
	orders := order.NewStore(cfg.DB)
	lookup := func(ctx context.Context, id string) (product.Product, error) {
		return product.Fetch(ctx, cfg.DB, id)
	}

	admin := middleware.Admin(cfg.AdminToken)
	limited := middleware.RateLimit(cfg.CheckoutLimit)

	a.Handle(http.MethodGet, "/health", handleHealth(cfg.DB))
	a.Handle(http.MethodGet, "/flash", handleFlash(cfg.Session))

	a.Handle(http.MethodGet, "/search", product.HandleSearch(cfg.DB))
	a.Handle(http.MethodGet, "/category/{slug}", product.HandleCategory(cfg.DB))
	a.Handle(http.MethodGet, "/product/{slug}", product.HandleShow(cfg.DB))

	a.Handle(http.MethodPost, "/add-to-cart/{product_id}", cart.HandleAdd(carts, cfg.Session))
	a.Handle(http.MethodGet, "/cart", cart.HandleShow(carts, lookup))
	a.Handle(http.MethodPost, "/cart/update", cart.HandleUpdate(carts, cfg.Session))

	a.Handle(http.MethodGet, "/checkout", checkout.HandleShow(carts, cfg.Session, lookup))
	a.Handle(http.MethodPost, "/checkout", checkout.HandleBegin(carts, cfg.Session, lookup, orders, cfg.Stripe, cfg.StripeCfg), limited)
	a.Handle(http.MethodGet, "/payment_redirect", checkout.HandleCancel())
	a.Handle(http.MethodGet, "/order_success", checkout.HandleSuccess(carts, cfg.Stripe))

	a.Handle(http.MethodPost, "/webhook/stripe", order.HandleStripeWebhook(cfg.DB, cfg.StripeCfg))

	a.Handle(http.MethodGet, "/admin/orders", order.HandleList(cfg.DB), admin)
	a.Handle(http.MethodGet, "/admin/products", product.HandleAdminList(cfg.DB), admin)
	a.Handle(http.MethodPost, "/admin/products", product.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/admin/products/{id}", product.HandleUpdate(cfg.DB), admin)

	a.Handle(http.MethodGet, "/", product.HandleHome(cfg.DB))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}

func handleHealth(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		status := "ok"
		statusCode := http.StatusOK
		if err := database.StatusCheck(ctx, db); err != nil {
			status = "database not ready"
			statusCode = http.StatusInternalServerError
		}

		health := struct {
			Status string `json:"status"`
		}{status}

		return web.Respond(ctx, w, health, statusCode)
	}
}

// handleFlash drains the pending notices for the session.
func handleFlash(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, flash.Pop(ctx, sm), http.StatusOK)
	}
}
