package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/ventrolabs/ventro/api/web"
	"github.com/ventrolabs/ventro/api/weberr"
	"github.com/ventrolabs/ventro/rate"
)

// RateLimit rejects requests above the per-client budget, keyed by the
// remote address.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !lim.Check(host) {
				err := errors.New("client exceeded the request budget")
				return weberr.NewError(err, "too many requests, slow down", http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
