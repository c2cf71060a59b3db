package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=franchise port=5432 sslmode=disable"

type Config struct {
	Env            string
	HTTPPort       string
	DBDriver       string // postgres | sqlite
	DatabaseDSN    string
	SessionSecret  string
	SessionTTL     time.Duration
	SessionCookie  string
	CookieSecure   bool
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CORSOrigins    string
	LoginRateLimit int
}

// Load reads the environment (and .env when present) and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPPort:       getEnv("HTTP_PORT", "5000"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDSN),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		SessionCookie:  getEnv("SESSION_COOKIE", "franchise_session"),
		CookieSecure:   getBool("COOKIE_SECURE", false),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getInt("REDIS_DB", 0),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		LoginRateLimit: getInt("LOGIN_RATE_LIMIT", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DBDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		slog.Warn("DATABASE_DSN not set, using local default")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		slog.Warn("CORS_ALLOWED_ORIGINS not set, allowing the local frontend only")
	}
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR not set, sessions are kept in process memory")
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if len(c.SessionSecret) < 32 {
		return errors.New("SESSION_SECRET must be at least 32 characters")
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return errors.New("DB_DRIVER must be postgres or sqlite")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// bare integers are seconds
		if secs, convErr := strconv.Atoi(v); convErr == nil {
			return time.Duration(secs) * time.Second
		}
		return def
	}
	return d
}
