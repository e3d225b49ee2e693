package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/estate/internal/marketplace/http"
	"github.com/aussiebroadwan/estate/internal/marketplace/store/drivers/sqlite"
	"github.com/aussiebroadwan/estate/pkg/estatesdk"
	"github.com/stretchr/testify/require"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/api", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Backend API running successfully"}`, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	live := decode[estatesdk.HealthResponse](t, rec)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	rec = h.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decode[estatesdk.HealthResponse](t, rec)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Ledger)
	require.Equal(t, "n/a", ready.Checks.Storage)

	rec = h.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Estate Marketplace API")
}

func TestReadyzDegraded(t *testing.T) {
	t.Parallel()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	handler := httpapi.ReadyzHandler(time.Now(), "test", st, ok, down)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	ready := decode[estatesdk.HealthResponse](t, rec)
	require.Equal(t, "degraded", ready.Status)
	require.Equal(t, "ok", ready.Checks.Ledger)
	require.Equal(t, "error: connection refused", ready.Checks.Storage)
}

func TestCORS(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/properties", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.handler.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight(allowOrigin)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, allowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	rec = preflight("https://evil.example")
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Origin", allowOrigin)
	rec = httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, allowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
}
