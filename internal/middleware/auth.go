// Package middleware provides HTTP middlewares for identity resolution and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/playbackhq/playback/internal/identity"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity resolves the request's bearer token into an explicit
// identity value and stores it in the request context. A missing token
// resolves to the anonymous demo identity so the editor keeps working
// in preview mode; a present-but-invalid token is rejected.
func WithIdentity(resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			ident, err := resolver.FromToken(raw)
			if err != nil {
				http.Error(w, identity.RejectionMessage(err.Error()), http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the resolved identity from the request
// context. Requests that bypassed WithIdentity count as anonymous.
func IdentityFromContext(ctx context.Context) identity.Identity {
	if ident, ok := ctx.Value(identityKey).(identity.Identity); ok {
		return ident
	}
	return identity.Anon()
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
