package httpx_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("remote addr", func(t *testing.T) {
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(requestFrom("192.168.1.1:12345")))
	})

	t.Run("first forwarded hop wins", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("x-real-ip", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	extract := httpx.JSONFieldKeyExtractor("phone")

	t.Run("reads field and restores body", func(t *testing.T) {
		body := `{"phone":" 9876543210 ","role":"buyer"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		require.Equal(t, "9876543210", extract(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.JSONEq(t, body, string(rest))
	})

	t.Run("missing or non-string field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":9876543210}`))
		require.Empty(t, extract(req))
	})

	t.Run("not json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`phone=9876543210`))
		require.Empty(t, extract(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"9876543210"}`))
	req.RemoteAddr = "192.168.1.1:12345"

	key := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.UserIDKeyExtractor, httpx.JSONFieldKeyExtractor("phone"))(req)
	require.Equal(t, "192.168.1.1:9876543210", key)

	req = req.WithContext(httpx.WithUserID(req.Context(), "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"))
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV:192.168.1.1",
		httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor)(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks over burst", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}, httpx.IPKeyExtractor)(okHandler)

		for i := range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.168.1.1:1"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1:1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, false, body["success"])
		require.NotEmpty(t, body["message"])
	})

	t.Run("keys are independent", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})(okHandler)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.2:1"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty key passes through", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1},
			func(*http.Request) string { return "" })(okHandler)

		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("10.0.0.1:1"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("by json field ignores address", func(t *testing.T) {
		h := httpx.RateLimitByJSONField(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}, "phone")(okHandler)

		send := func(addr, phone string) int {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"`+phone+`"}`))
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec.Code
		}

		require.Equal(t, http.StatusOK, send("10.0.0.1:1", "9876543210"))
		require.Equal(t, http.StatusTooManyRequests, send("10.0.0.2:1", "9876543210"))
		require.Equal(t, http.StatusOK, send("10.0.0.2:1", "9123456789"))
	})
}

func TestRateLimitProfiles(t *testing.T) {
	for name, cfg := range map[string]httpx.RateLimitConfig{
		"strict":   httpx.StrictLimit,
		"moderate": httpx.ModerateLimit,
		"lenient":  httpx.LenientLimit,
		"public":   httpx.PublicLimit,
	} {
		t.Run(name, func(t *testing.T) {
			require.Positive(t, cfg.RequestsPerWindow)
			require.Positive(t, cfg.Window)
			require.Positive(t, cfg.Burst)
		})
	}
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	t.Run("defaults", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("UNSET_PROFILE", def))
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_TEST_BURST", "7")

		require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 50, Window: 30 * time.Second, Burst: 7},
			httpx.ParseRateLimitFromEnv("TEST", def))
	})

	t.Run("ignores junk", func(t *testing.T) {
		t.Setenv("RATELIMIT_JUNK_REQUESTS", "-3")
		t.Setenv("RATELIMIT_JUNK_BURST", "lots")

		require.Equal(t, def, httpx.ParseRateLimitFromEnv("JUNK", def))
	})
}

func BenchmarkRateLimitMiddleware(b *testing.B) {
	h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1000000, Window: time.Minute, Burst: 1000})(okHandler)
	req := requestFrom("192.168.1.1:12345")

	for b.Loop() {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}
