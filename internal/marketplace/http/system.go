package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/pkg/estatesdk"
	"github.com/aussiebroadwan/estate/pkg/httpx"
)

// Pinger is anything readiness depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RootHandler godoc
//
//	@Summary	API banner
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/api [get].
func RootHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Backend API running successfully"})
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning status, uptime and version. Always 200 while the process serves requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	estatesdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, estatesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database, the OTP ledger backend and object storage when configured.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	estatesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	estatesdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, ledger Pinger, storage Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &estatesdk.HealthChecks{Database: "ok", Ledger: "ok", Storage: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		fail := func(field *string, err error) {
			*field = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := st.Ping(r.Context()); err != nil {
			fail(&checks.Database, err)
		}
		if err := ledger.Ping(r.Context()); err != nil {
			fail(&checks.Ledger, err)
		}
		if storage == nil {
			checks.Storage = "n/a"
		} else if err := storage.Ping(r.Context()); err != nil {
			fail(&checks.Storage, err)
		}

		httpx.WriteJSON(w, statusCode, estatesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
