package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/notify"
	"github.com/aussiebroadwan/estate/internal/marketplace/otp"
	"github.com/aussiebroadwan/estate/internal/marketplace/payment"
	"github.com/aussiebroadwan/estate/pkg/jwtx"
	"github.com/joho/godotenv"
)

const (
	EnvDev        = "dev"
	EnvTest       = "test"
	EnvProduction = "production"
)

var defaultCORSOrigins = []string{
	"https://playstore-application.vercel.app",
	"http://localhost:3000",
}

type Config struct {
	Env                 string        // Environment (dev, test, production) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 5000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	AdminPhone      string        // Required: the one super-admin phone
	AdminTOTPSecret string        // Optional: base32 TOTP secret, enables a second factor for admin logins
	JWTSecret       string        // Required in production: HS256 signing secret
	AccessTokenTTL  time.Duration // Access token lifetime (default: 48h)
	RefreshTokenTTL time.Duration // Refresh token lifetime (default: 168h)

	DatabaseFile string // Path to SQLite database file (default: ./estate.db)

	OTPBackend        string        // memory or redis (default: memory)
	OTPTTL            time.Duration // Code lifetime (default: 10m)
	OTPResendInterval time.Duration // Minimum gap between codes for one phone (default: 30s)
	OTPSweepInterval  time.Duration // Expired code sweep interval (default: 60s)
	OTPDigestKeyFile  string        // Path to the code digest key, created when missing (default: ./otp.key)
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	EnableSMS        bool // Send codes through Fast2SMS; otherwise log them
	Fast2SMSAPIKey   string
	Fast2SMSSenderID string
	Fast2SMSURL      string

	AMQPURL      string // Optional: publish domain events to RabbitMQ
	AMQPExchange string

	StorageBackend  string // local or s3 (default: local)
	UploadDir       string // Directory for the local backend (default: ./uploads)
	UploadsDisabled bool   // Reject uploads, for read-only filesystems
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3UseSSL        bool
	S3PublicURL     string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayURL       string

	CORSAllowedOrigins []string
}

func LoadConfig() Config {
	// A missing .env is fine; variables already in the environment win.
	_ = godotenv.Load()

	cfg := Config{
		Env:                 getEnvOrDefault("ENV", EnvDev),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		AdminPhone:      os.Getenv("ADMIN_PHONE"),
		AdminTOTPSecret: os.Getenv("ADMIN_TOTP_SECRET"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "estate.db"),

		OTPBackend:        getEnvOrDefault("OTP_BACKEND", "memory"),
		OTPTTL:            getEnvDurationOrDefault("OTP_TTL", otp.DefaultTTL),
		OTPResendInterval: getEnvDurationOrDefault("OTP_RESEND_INTERVAL", otp.DefaultResendInterval),
		OTPSweepInterval:  getEnvDurationOrDefault("OTP_SWEEP_INTERVAL", otp.DefaultSweepInterval),
		OTPDigestKeyFile:  getEnvOrDefault("OTP_DIGEST_KEY_FILE", "otp.key"),
		RedisAddr:         getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvIntOrDefault("REDIS_DB", 0),

		EnableSMS:        getEnvBoolOrDefault("ENABLE_SMS", false),
		Fast2SMSAPIKey:   os.Getenv("FAST2SMS_API_KEY"),
		Fast2SMSSenderID: getEnvOrDefault("FAST2SMS_SENDER_ID", "MYPROPT"),
		Fast2SMSURL:      getEnvOrDefault("FAST2SMS_URL", notify.DefaultFast2SMSURL),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnvOrDefault("AMQP_EXCHANGE", "estate.events"),

		StorageBackend:  getEnvOrDefault("STORAGE_BACKEND", "local"),
		UploadDir:       getEnvOrDefault("UPLOAD_DIR", "uploads"),
		UploadsDisabled: getEnvBoolOrDefault("UPLOADS_DISABLED", false) || os.Getenv("VERCEL") == "1",
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3UseSSL:        getEnvBoolOrDefault("S3_USE_SSL", true),
		S3PublicURL:     os.Getenv("S3_PUBLIC_URL"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayURL:       getEnvOrDefault("RAZORPAY_URL", payment.DefaultRazorpayURL),

		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
	}

	if cfg.AdminPhone != "" {
		cfg.AdminPhone = domain.NormalizePhone(cfg.AdminPhone)
	}

	return cfg
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.AdminPhone == "" {
		errs = append(errs, errors.New("ADMIN_PHONE is required"))
	} else if !domain.ValidPhone(c.AdminPhone) {
		errs = append(errs, fmt.Errorf("ADMIN_PHONE %q is not a 10 digit mobile number", c.AdminPhone))
	}
	if c.JWTSecret == "" && c.IsProduction() {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	switch c.OTPBackend {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("OTP_BACKEND must be memory or redis, got %q", c.OTPBackend))
	}
	switch c.StorageBackend {
	case "local":
	case "s3":
		if c.S3Endpoint == "" || c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_ENDPOINT and S3_BUCKET are required for the s3 storage backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be local or s3, got %q", c.StorageBackend))
	}
	if c.EnableSMS && c.Fast2SMSAPIKey == "" {
		errs = append(errs, errors.New("FAST2SMS_API_KEY is required when ENABLE_SMS is set"))
	}

	return errors.Join(errs...)
}

func (c Config) IsProduction() bool { return c.Env == EnvProduction }

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
