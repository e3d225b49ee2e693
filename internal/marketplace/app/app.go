package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/events"
	httpapi "github.com/aussiebroadwan/estate/internal/marketplace/http"
	"github.com/aussiebroadwan/estate/internal/marketplace/media"
	"github.com/aussiebroadwan/estate/internal/marketplace/notify"
	"github.com/aussiebroadwan/estate/internal/marketplace/otp"
	"github.com/aussiebroadwan/estate/internal/marketplace/payment"
	"github.com/aussiebroadwan/estate/internal/marketplace/policy"
	"github.com/aussiebroadwan/estate/internal/marketplace/service"
	"github.com/aussiebroadwan/estate/internal/marketplace/store"
	"github.com/aussiebroadwan/estate/internal/marketplace/store/drivers/sqlite"
	"github.com/aussiebroadwan/estate/pkg/cryptox"
	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/aussiebroadwan/estate/pkg/jwtx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	tokenIssuer = "estate-api"
)

// Application encapsulates the marketplace API with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	redis   *redis.Client // nil unless OTP_BACKEND=redis
	ledger  *otp.Ledger
	events  events.Publisher
	storage media.Storage
	signer  *jwtx.HS256

	// Services
	tokenService        *service.TokenService
	authService         *service.AuthService
	userService         *service.UserService
	propertyService     *service.PropertyService
	agentService        *service.AgentService
	consultantService   *service.ConsultantService
	paymentService      *service.PaymentService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "estate-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()
	steps := []func(context.Context) error{
		app.initDatabase,
		app.initLedger,
		app.initSigner,
		app.initEvents,
		app.initStorage,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			app.closeDependencies()
			return nil, err
		}
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("estate api starting", "port", app.cfg.Port, "version", BuildVersion, "env", app.cfg.Env)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.housekeepingService.Stop()
			app.closeDependencies()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down estate api...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	if err := app.closeDependencies(); err != nil {
		return err
	}

	app.logger.Info("estate api stopped")
	return nil
}

// closeDependencies releases whatever init steps managed to open. The
// database goes last; its error is the one returned.
func (app *Application) closeDependencies() error {
	if app.events != nil {
		if err := app.events.Close(); err != nil {
			app.logger.Error("error closing event publisher", "error", err)
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			return err
		}
	}
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase(context.Context) error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initLedger picks the OTP backend and loads the digest key.
func (app *Application) initLedger(ctx context.Context) error {
	key, err := cryptox.LoadOrCreateSecret(app.cfg.OTPDigestKeyFile)
	if err != nil {
		return fmt.Errorf("failed to load otp digest key: %w", err)
	}

	var backend otp.Backend
	switch app.cfg.OTPBackend {
	case "redis":
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := app.redis.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("failed to reach redis at %s: %w", app.cfg.RedisAddr, err)
		}
		backend = otp.NewRedis(app.redis, otp.DefaultRedisPrefix)
	default:
		backend = otp.NewMemory()
	}

	app.ledger = otp.NewLedger(backend,
		otp.WithTTL(app.cfg.OTPTTL),
		otp.WithResendInterval(app.cfg.OTPResendInterval),
		otp.WithDigestKey(key),
	)
	app.logger.Info("otp ledger ready", "backend", app.cfg.OTPBackend, "ttl", app.cfg.OTPTTL)
	return nil
}

// initSigner sets up HS256 signing. Outside production a missing secret is
// replaced by a random one, so tokens do not survive a restart.
func (app *Application) initSigner(context.Context) error {
	secret := app.cfg.JWTSecret
	if secret == "" {
		generated, err := cryptox.GenerateToken(32)
		if err != nil {
			return fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		secret = generated
		app.logger.Warn("JWT_SECRET not set, using an ephemeral secret")
	}

	signer, err := jwtx.NewHS256([]byte(secret), tokenIssuer, 30*time.Second)
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer
	return nil
}

func (app *Application) initEvents(context.Context) error {
	if app.cfg.AMQPURL == "" {
		app.events = events.Log{}
		return nil
	}

	pub, err := events.NewAMQP(app.cfg.AMQPURL, app.cfg.AMQPExchange)
	if err != nil {
		return fmt.Errorf("failed to connect event publisher: %w", err)
	}
	app.events = pub
	app.logger.Info("publishing domain events", "exchange", app.cfg.AMQPExchange)
	return nil
}

func (app *Application) initStorage(ctx context.Context) error {
	switch {
	case app.cfg.UploadsDisabled:
		app.storage = media.Disabled{}
	case app.cfg.StorageBackend == "s3":
		s3, err := media.NewS3(ctx, media.S3Config{
			Endpoint:  app.cfg.S3Endpoint,
			AccessKey: app.cfg.S3AccessKey,
			SecretKey: app.cfg.S3SecretKey,
			Bucket:    app.cfg.S3Bucket,
			UseSSL:    app.cfg.S3UseSSL,
			PublicURL: app.cfg.S3PublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		app.storage = s3
	default:
		disk, err := media.NewDisk(app.cfg.UploadDir)
		if err != nil {
			return fmt.Errorf("failed to initialize upload directory: %w", err)
		}
		app.storage = disk
	}

	app.logger.Info("upload storage ready", "backend", app.storage.Name())
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	pol := policy.Policy{AdminPhone: app.cfg.AdminPhone}

	var sms notify.SMSSender = notify.LogSender{}
	if app.cfg.EnableSMS {
		sms = notify.NewFast2SMS(app.cfg.Fast2SMSAPIKey, app.cfg.Fast2SMSSenderID, app.cfg.Fast2SMSURL)
	}

	app.tokenService = &service.TokenService{
		Signer:     app.signer,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}

	app.authService = &service.AuthService{
		Store:            app.db,
		Ledger:           app.ledger,
		SMS:              sms,
		Tokens:           app.tokenService,
		Policy:           pol,
		Events:           app.events,
		ExposeCodes:      !app.cfg.IsProduction(),
		AllowDebugBypass: !app.cfg.IsProduction(),
		AdminTOTPSecret:  app.cfg.AdminTOTPSecret,
	}
	app.userService = &service.UserService{Store: app.db, Policy: pol, Events: app.events}
	app.propertyService = &service.PropertyService{
		Store:  app.db,
		Media:  app.storage,
		Policy: pol,
		Events: app.events,
	}
	app.agentService = &service.AgentService{Store: app.db, Policy: pol}
	app.consultantService = &service.ConsultantService{Store: app.db, Media: app.storage, Policy: pol}
	app.paymentService = &service.PaymentService{
		Store:   app.db,
		Gateway: payment.NewRazorpay(app.cfg.RazorpayKeyID, app.cfg.RazorpayKeySecret, app.cfg.RazorpayURL),
		Policy:  pol,
		Events:  app.events,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.ledger,
		app.logger,
		app.cfg.OTPSweepInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	// Only object storage has a remote end worth probing
	var storage httpapi.Pinger
	if s3, ok := app.storage.(*media.S3); ok {
		storage = s3
	}

	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.ledger,
		storage,
		httpx.CORSConfig{
			AllowedOrigins: app.cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		app.logger,
	)

	if _, ok := app.storage.(*media.Disk); ok {
		router.UploadDir = app.cfg.UploadDir
	}

	// Wire services to router
	router.Guard = &service.Guard{Tokens: app.tokenService, Store: app.db}
	router.AuthService = app.authService
	router.UserService = app.userService
	router.PropertyService = app.propertyService
	router.AgentService = app.agentService
	router.ConsultantService = app.consultantService
	router.PaymentService = app.paymentService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
