package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/ventrolabs/ventro/api/web"
	"github.com/ventrolabs/ventro/api/weberr"
)

// Admin guards a route with the static admin API token. It stands in
// for a full authentication system, which this service does not carry.
func Admin(token string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			if token == "" {
				return weberr.NotAuthorized(errors.New("admin access is not configured"))
			}

			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return weberr.NotAuthorized(errors.New("invalid admin token"))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
