package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	httpapi "github.com/aussiebroadwan/estate/internal/marketplace/http"
	"github.com/aussiebroadwan/estate/internal/marketplace/media"
	"github.com/aussiebroadwan/estate/internal/marketplace/notify"
	"github.com/aussiebroadwan/estate/internal/marketplace/otp"
	"github.com/aussiebroadwan/estate/internal/marketplace/payment"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
	"github.com/aussiebroadwan/estate/internal/marketplace/service"
	"github.com/aussiebroadwan/estate/internal/marketplace/store/drivers/sqlite"
	"github.com/aussiebroadwan/estate/pkg/estatesdk"
	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/aussiebroadwan/estate/pkg/jwtx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	adminPhone  = "9000000001"
	buyerPhone  = "9876543210"
	sellerPhone = "9123456780"
	allowOrigin = "http://localhost:3000"
)

type stubGateway struct{}

func (stubGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (payment.Order, error) {
	return payment.Order{ID: "order_" + receipt, Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == orderID+"|"+paymentID
}

func (stubGateway) PublicKey() string { return "rzp_test_key" }

type harness struct {
	handler http.Handler
	events  *events.Recorder
}

type harnessOption func(*service.PropertyService, *service.ConsultantService, *httpapi.Router)

// withDiskUploads stores uploads under dir and serves them at /uploads/.
func withDiskUploads(t *testing.T) harnessOption {
	t.Helper()
	dir := t.TempDir()
	disk, err := media.NewDisk(dir)
	require.NoError(t, err)
	return func(p *service.PropertyService, c *service.ConsultantService, r *httpapi.Router) {
		p.Media = disk
		c.Media = disk
		r.UploadDir = dir
	}
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	ledger := otp.NewLedger(otp.NewMemory(), otp.WithDigestKey([]byte("test-key")))
	signer, err := jwtx.NewHS256([]byte("test-secret"), "estate-test", 0)
	require.NoError(t, err)

	pol := policy.Policy{AdminPhone: adminPhone}
	rec := &events.Recorder{}
	tokens := &service.TokenService{
		Signer:     signer,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}

	props := &service.PropertyService{Store: st, Media: media.Disabled{}, Policy: pol, Events: rec}
	consultants := &service.ConsultantService{Store: st, Media: media.Disabled{}, Policy: pol}

	router := httpapi.NewRouter("test", st, ledger, nil, httpx.CORSConfig{
		AllowedOrigins: []string{allowOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}, slogx.Discard())

	router.Guard = &service.Guard{Tokens: tokens, Store: st}
	router.AuthService = &service.AuthService{
		Store:       st,
		Ledger:      ledger,
		SMS:         notify.LogSender{},
		Tokens:      tokens,
		Policy:      pol,
		Events:      rec,
		ExposeCodes: true,
	}
	router.UserService = &service.UserService{Store: st, Policy: pol, Events: rec}
	router.PropertyService = props
	router.AgentService = &service.AgentService{Store: st, Policy: pol}
	router.ConsultantService = consultants
	router.PaymentService = &service.PaymentService{Store: st, Gateway: stubGateway{}, Policy: pol, Events: rec}

	for _, opt := range opts {
		opt(props, consultants, router)
	}
	router.ApplyRoutes()

	return &harness{handler: router, events: rec}
}

// do sends a JSON request. A nil body sends nothing.
func (h *harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

// login runs send-otp and verify-otp and returns the verify response.
func (h *harness) login(t *testing.T, phone, role string) estatesdk.VerifyOTPResponse {
	t.Helper()

	rec := h.do(t, http.MethodPost, "/api/auth/send-otp", "", estatesdk.SendOTPRequest{Phone: phone, Role: role})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sent := decode[estatesdk.SendOTPResponse](t, rec)
	require.NotEmpty(t, sent.DebugOTP)

	rec = h.do(t, http.MethodPost, "/api/auth/verify-otp", "", estatesdk.VerifyOTPRequest{Phone: phone, OTP: sent.DebugOTP, Role: role})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[estatesdk.VerifyOTPResponse](t, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
