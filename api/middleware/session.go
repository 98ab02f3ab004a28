package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/ventrolabs/ventro/api/web"
)

// Session loads and commits the scs session around the handler. The
// session data travels in the request context, so the wrapped handler
// must be called with the context scs installed.
func Session(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			var err error
			wrapped := http.HandlerFunc(func(ww http.ResponseWriter, rr *http.Request) {
				err = handler(rr.Context(), ww, rr)
			})

			sm.LoadAndSave(wrapped).ServeHTTP(w, r)
			return err
		}
		return h
	}
	return m
}
