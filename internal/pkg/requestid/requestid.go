// Package requestid tags every HTTP request with an identifier that is echoed back to the client and
// attached to log lines.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request identifier.
const Header = "X-Request-ID"

type contextKey struct{}

// Middleware reuses an incoming X-Request-ID or generates a new UUID for the request.
func Middleware() func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(Header, id)
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
		}
		return http.HandlerFunc(fn)
	}
}

// FromContext returns the request identifier stored by Middleware, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
