package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// devJWTSecret is only accepted outside production.
const devJWTSecret = "fallback-secret-key"

type Config struct {
	HTTPAddr             string
	Env                  string
	LogLevel             string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	StoreDriver string
	DatabaseURL string

	JWTSecret    string
	JWTExpiresIn time.Duration
	BcryptCost   int
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":3000"),
		Env:                  strings.ToLower(getenv("APP_ENV", EnvDevelopment)),
		LogLevel:             getenv("LOG_LEVEL", "info"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "true") == "true",
		StoreDriver:          strings.ToLower(getenv("STORE_DRIVER", StoreMemory)),
		DatabaseURL:          getenv("DATABASE_URL", ""),
		JWTSecret:            getenv("JWT_SECRET", ""),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	ttl, err := ParseDuration(getenv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	cfg.JWTExpiresIn = ttl

	cost, err := strconv.Atoi(getenv("BCRYPT_COST", "10"))
	if err != nil {
		return Config{}, fmt.Errorf("BCRYPT_COST: %w", err)
	}
	cfg.BcryptCost = cost

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, errors.New("missing env: JWT_SECRET")
		}
		cfg.JWTSecret = devJWTSecret
	}

	switch cfg.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("missing env: DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

// ParseDuration accepts Go durations ("90m", "24h") and whole days ("7d").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		if n <= 0 {
			return 0, fmt.Errorf("duration must be positive, got %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", s)
	}
	return d, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
