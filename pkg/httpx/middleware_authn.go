package httpx

import (
	"context"
	"net/http"
	"strings"
)

// Authenticator resolves a raw bearer token into an enriched context. It
// receives an empty token when the header is absent so it can decide how
// to report that.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (context.Context, error)
}

// ErrorWriter renders an error response.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// AuthnMiddleware asks the Authenticator about the bearer token before every
// protected handler. Failures go to onError and the handler is skipped.
func AuthnMiddleware(a Authenticator, onError ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := a.Authenticate(r.Context(), BearerToken(r))
			if err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// BearerInvalidToken is the RFC 6750 error code for a rejected token.
const BearerInvalidToken = "invalid_token"

// SetBearerChallenge adds the RFC 6750 challenge header for 401 replies.
// An empty code means no credentials were sent, which gets a bare
// challenge without error attributes.
func SetBearerChallenge(w http.ResponseWriter, code, desc string) {
	if code == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
		return
	}
	w.Header().Set("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
}
