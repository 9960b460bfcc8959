package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/joho/godotenv"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Config struct {
	StoreDriver    string   // Store backend, mongo or sqlite (default: mongo)
	MongoURI       string   // MongoDB connection string (default: mongodb://localhost:27017)
	MongoDatabase  string   // MongoDB database name (default: loginApp)
	DatabaseFile   string   // SQLite database file (default: ./tally.db)
	JWTSecret      string   // HS256 secret; a random one is generated when empty
	Issuer         string   // Issuer claim for tokens (default: tally)
	RequireAuth    bool     // Require a matching bearer token on finance routes (default: false)
	CORSOrigins    []string // Allowed origins (default: *)
	TrustedProxies string   // CIDRs whose X-Forwarded-For is believed (default: none)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 5000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	StoreTimeout        time.Duration // Bound on startup store calls (default: 5s)
	SchemaRetryInterval time.Duration // Delay between background migration attempts (default: 30s)

	AuthLimit    httpx.RateLimitConfig // RATELIMIT_AUTH_*
	FinanceLimit httpx.RateLimitConfig // RATELIMIT_FINANCE_*
	SystemLimit  httpx.RateLimitConfig // RATELIMIT_SYSTEM_*
}

// LoadConfig reads the environment, after loading a .env file if present.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		StoreDriver:    strings.ToLower(getEnvOrDefault("TALLY_STORE_DRIVER", DriverMongo)),
		MongoURI:       getEnvOrDefault("TALLY_MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnvOrDefault("TALLY_MONGO_DATABASE", "loginApp"),
		DatabaseFile:   getEnvOrDefault("TALLY_DATABASE_FILE", "tally.db"),
		JWTSecret:      os.Getenv("TALLY_JWT_SECRET"),
		Issuer:         getEnvOrDefault("TALLY_ISSUER", "tally"),
		RequireAuth:    getEnvBoolOrDefault("TALLY_REQUIRE_AUTH", false),
		CORSOrigins:    httpx.ParseOrigins(getEnvOrDefault("TALLY_CORS_ORIGINS", "*")),
		TrustedProxies: os.Getenv("TALLY_TRUSTED_PROXIES"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		StoreTimeout:        getEnvDurationOrDefault("STORE_TIMEOUT", 5*time.Second),
		SchemaRetryInterval: getEnvDurationOrDefault("SCHEMA_RETRY_INTERVAL", 30*time.Second),

		AuthLimit:    httpx.ParseRateLimitFromEnv("AUTH", httpx.AuthLimit),
		FinanceLimit: httpx.ParseRateLimitFromEnv("FINANCE", httpx.FinanceLimit),
		SystemLimit:  httpx.ParseRateLimitFromEnv("SYSTEM", httpx.SystemLimit),
	}
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMongo, DriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q (want %s or %s)", c.StoreDriver, DriverMongo, DriverSQLite)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("store timeout must be positive, got %s", c.StoreTimeout)
	}
	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		return err
	}
	return nil
}

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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
