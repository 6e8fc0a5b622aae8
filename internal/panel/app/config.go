package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/panel/pkg/jwtx"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env       string // dev, test, prod (default: dev)
	LogLevel  string // debug, info, warn, error (default: info)
	LogFormat string // json, text (default: json)
	Port      int    // HTTP port (default: 3001)

	DatabaseDriver   string // sqlite or postgres (default: sqlite)
	DatabaseFile     string // SQLite file (default: panel.db)
	DatabaseURL      string // Postgres DSN, required for the postgres driver
	DatabaseMaxConns int    // Postgres pool size (default: pgxpool's)

	PepperFile string // Password pepper, created on first start (default: ./pepper)

	JWTAlgorithm string // HS256 or EdDSA (default: HS256)
	JWTSecret    string // HS256 secret, at least 32 characters
	JWTKeyFile   string // EdDSA PKCS8 PEM; empty means an ephemeral key
	JWTKeyID     string
	JWTIssuer    string        // default: panel-emb
	JWTAudience  []string      // default: emb-team
	SessionTTL   time.Duration // default: 24h

	BootstrapToken string   // Optional: enables POST /bootstrap
	CORSOrigins    []string // default: http://localhost:3000
	TOTPIssuer     string   // Issuer shown in authenticator apps (default: Panel)

	// Optional: when set the rate limiters share state through redis.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StatsCacheTTL        time.Duration // default: 30s, 0 disables
	ShutdownGracePeriod  time.Duration // default: 10s
	HousekeepingInterval time.Duration // default: 1h
}

// LoadConfig reads the environment after loading the .env file named by
// ENV_FILE (default .env) when it exists. Real environment variables win
// over the file.
func LoadConfig() Config {
	loadDotEnv(getEnvOrDefault("ENV_FILE", ".env"))

	return Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 3001),

		DatabaseDriver:   strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:     getEnvOrDefault("DATABASE_FILE", "panel.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DatabaseMaxConns: getEnvIntOrDefault("DATABASE_MAX_CONNS", 0),

		PepperFile: getEnvOrDefault("PEPPER_FILE", "pepper"),

		JWTAlgorithm: getEnvOrDefault("JWT_ALGORITHM", "HS256"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTKeyFile:   os.Getenv("JWT_KEY_FILE"),
		JWTKeyID:     getEnvOrDefault("JWT_KEY_ID", "panel-1"),
		JWTIssuer:    getEnvOrDefault("JWT_ISSUER", "panel-emb"),
		JWTAudience:  getEnvListOrDefault("JWT_AUDIENCE", []string{"emb-team"}),
		SessionTTL:   getEnvDurationOrDefault("SESSION_TTL", jwtx.DefaultSessionTTL),

		BootstrapToken: os.Getenv("BOOTSTRAP_TOKEN"),
		CORSOrigins:    getEnvListOrDefault("CORS_ORIGINS", []string{"http://localhost:3000"}),
		TOTPIssuer:     getEnvOrDefault("TOTP_ISSUER", "Panel"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),

		StatsCacheTTL:        getEnvDurationOrDefault("STATS_CACHE_TTL", 30*time.Second),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch strings.ToUpper(c.JWTAlgorithm) {
	case "HS256":
		if len(c.JWTSecret) < jwtx.MinSecretLength {
			errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", jwtx.MinSecretLength))
		}
	case "EDDSA":
	default:
		errs = append(errs, fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWTAlgorithm))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

func (c Config) IsProd() bool { return strings.EqualFold(c.Env, "prod") || strings.EqualFold(c.Env, "production") }

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
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

// getEnvDurationOrDefault accepts Go durations ("90s", "1h") or plain
// integer minutes.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
