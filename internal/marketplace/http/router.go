package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/service"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/aussiebroadwan/estate/pkg/slogx"

	_ "github.com/aussiebroadwan/estate/api/marketplace" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	ledger  Pinger
	storage Pinger // nil unless the storage backend can be pinged

	// UploadDir is served at /uploads/ when set.
	UploadDir string

	Guard             *service.Guard
	AuthService       *service.AuthService
	UserService       *service.UserService
	PropertyService   *service.PropertyService
	AgentService      *service.AgentService
	ConsultantService *service.ConsultantService
	PaymentService    *service.PaymentService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	ledger, storage Pinger,
	cors httpx.CORSConfig,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		ledger:       ledger,
		storage:      storage,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cors),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProperties()
	r.registerAgents()
	r.registerConsultants()
	r.registerPayments()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Estate Marketplace API
//	@version		0.1.0
//	@description	Property listings, agents, consultants and payments behind a phone + OTP login.
//	@description
//	@description				Access tokens are HS256 JWTs returned by /api/auth/verify-otp.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/estate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.Guard, writeError)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, UserService: r.UserService}

	// Code requests are limited per IP and per phone so one client cannot
	// spray SMS across numbers and one number cannot be flooded.
	byIPAndPhone := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.JSONFieldKeyExtractor("phone"))
	r.Mux.Handle("POST /api/auth/send-otp",
		httpx.Chain(http.HandlerFunc(h.HandleSendOTP),
			httpx.RateLimitMiddleware(httpx.StrictLimit, byIPAndPhone),
		),
	)
	r.Mux.Handle("POST /api/auth/resend-otp",
		httpx.Chain(http.HandlerFunc(h.HandleResendOTP),
			httpx.RateLimitMiddleware(httpx.StrictLimit, byIPAndPhone),
		),
	)

	// Verification is brute-forceable, limit per phone regardless of IP
	r.Mux.Handle("POST /api/auth/verify-otp",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyOTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.RateLimitByJSONField(httpx.StrictLimit, "phone"),
		),
	)
	r.Mux.Handle("POST /api/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/profile",
		httpx.Chain(http.HandlerFunc(h.HandleProfile),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("DELETE /api/auth/delete/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDeleteAccount),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProperties() {
	h := &PropertiesHandler{PropertyService: r.PropertyService}

	// Public reads
	r.Mux.Handle("GET /api/properties",
		httpx.Chain(http.HandlerFunc(h.HandleList), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /api/properties/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), httpx.RateLimitByIP(httpx.PublicLimit)),
	)

	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.authn(), httpx.RateLimitByUser(httpx.ModerateLimit))
	}
	r.Mux.Handle("POST /api/properties", write(h.HandleCreate))
	r.Mux.Handle("PUT /api/properties/{id}", write(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/properties/{id}", write(h.HandleDelete))
	r.Mux.Handle("POST /api/properties/{id}/approve", write(h.HandleApprove))
}

func (r *Router) registerAgents() {
	h := &AgentsHandler{AgentService: r.AgentService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.authn(), httpx.RateLimitByUser(httpx.LenientLimit))
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.authn(), httpx.RateLimitByUser(httpx.ModerateLimit))
	}

	r.Mux.Handle("GET /api/agents", read(h.HandleList))
	r.Mux.Handle("GET /api/agents/{id}", read(h.HandleGet))
	r.Mux.Handle("POST /api/agents", write(h.HandleRegister))
	r.Mux.Handle("PUT /api/agents/{id}", write(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/agents/{id}", write(h.HandleDelete))
}

func (r *Router) registerConsultants() {
	h := &ConsultantsHandler{ConsultantService: r.ConsultantService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.authn(), httpx.RateLimitByUser(httpx.LenientLimit))
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.authn(), httpx.RateLimitByUser(httpx.ModerateLimit))
	}

	r.Mux.Handle("GET /api/consultants", read(h.HandleList))
	r.Mux.Handle("GET /api/consultants/{id}", read(h.HandleGet))
	r.Mux.Handle("POST /api/consultants", write(h.HandleAdd))
	r.Mux.Handle("PUT /api/consultants/{id}", write(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/consultants/{id}", write(h.HandleDelete))
}

func (r *Router) registerPayments() {
	h := &PaymentsHandler{PaymentService: r.PaymentService}

	r.Mux.Handle("POST /api/payments/order",
		httpx.Chain(http.HandlerFunc(h.HandleCreateOrder),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/payments/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			r.authn(),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /api",
		httpx.Chain(http.HandlerFunc(RootHandler), httpx.RateLimitByIP(httpx.PublicLimit)),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.ledger, r.storage),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.UploadDir != "" {
		r.Mux.Handle("GET /uploads/",
			httpx.Chain(http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.UploadDir))),
				httpx.RateLimitByIP(httpx.PublicLimit),
			),
		)
	}
}
