package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/panel/pkg/slogx"
)

// Authenticator resolves a raw bearer token into a Principal. Any error is
// treated as unauthenticated.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// TokenFromRequest returns the bearer token from the Authorization header,
// falling back to the named cookie.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		scheme, token, ok := strings.Cut(authz, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			return strings.TrimSpace(c.Value)
		}
	}
	return ""
}

// AuthnMiddleware rejects requests without a valid token and stores the
// resolved Principal in the request context.
func AuthnMiddleware(a Authenticator, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := TokenFromRequest(r, cookieName)
			if raw == "" {
				writeBearerError(w, r, "missing bearer token")
				return
			}

			p, err := a.Authenticate(ctx, raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("authentication failed", "error", err)
				writeBearerError(w, r, "invalid or expired token")
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.With(ctx, "user_id", p.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750 challenge plus the JSON error envelope.
func writeBearerError(w http.ResponseWriter, r *http.Request, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, r, http.StatusUnauthorized, "Unauthorized")
}
