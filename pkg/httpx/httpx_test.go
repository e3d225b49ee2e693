package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var seen []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { seen = append(seen, "handler") }),
		mark("first"), mark("second"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second", "handler"}, seen)
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"Bearer abc.def.ghi": "abc.def.ghi",
		"bearer   xyz ":      "xyz",
		"Basic dXNlcjpwYXNz": "",
		"Bearer":             "",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		require.Equal(t, want, httpx.BearerToken(req), header)
	}
}

type stubAuthenticator struct{ err error }

func (s stubAuthenticator) Authenticate(ctx context.Context, token string) (context.Context, error) {
	if s.err != nil {
		return nil, s.err
	}
	return httpx.WithUserID(ctx, "user-"+token), nil
}

func TestSetBearerChallenge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want string
	}{
		{"no credentials", "", "Bearer"},
		{"rejected token", httpx.BearerInvalidToken, `Bearer error="invalid_token", error_description="Token expired"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			httpx.SetBearerChallenge(rec, tt.code, "Token expired")
			require.Equal(t, tt.want, rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestAuthnMiddleware(t *testing.T) {
	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := httpx.UserIDFromContext(r.Context())
		_, _ = w.Write([]byte(id))
	})
	onError := func(w http.ResponseWriter, r *http.Request, err error) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
	}

	t.Run("accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer t1")
		rec := httptest.NewRecorder()

		httpx.AuthnMiddleware(stubAuthenticator{}, onError)(protected).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-t1", rec.Body.String())
	})

	t.Run("rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(stubAuthenticator{err: errors.New("nope")}, onError)(protected).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.True(t, strings.HasPrefix(rec.Body.String(), "nope"))
	})
}

func TestBaseURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/x", nil)
	require.Equal(t, "http://api.example.com", httpx.BaseURL(req))

	req.Header.Set("X-Forwarded-Proto", "https, http")
	require.Equal(t, "https://api.example.com", httpx.BaseURL(req))
}

func TestCORS(t *testing.T) {
	h := httpx.CORS(httpx.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})(okHandler)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/properties", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("other origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
