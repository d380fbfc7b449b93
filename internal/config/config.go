package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module exposes the loaded configuration to the fx graph.
var Module = fx.Provide(Load)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	TokenSecret     string
	RedisAddress    string
	RedisPassword   string
	CatalogCacheTTL time.Duration
	ShutdownTimeout time.Duration
	LoginRateLimit  float64
	LoginRateBurst  int
	AdminName       string
	AdminEmail      string
	AdminPassword   string
	LogLevel        string
	// PasswordCost is the bcrypt work factor; zero selects the library default.
	PasswordCost int
}

const (
	defaultRunAddress      = ":8000"
	defaultTokenSecret     = "change-me-in-production"
	defaultCatalogCacheTTL = 5 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
	defaultLoginRateLimit  = 5
	defaultLoginRateBurst  = 10
	defaultDBPort          = "5432"
	defaultLogLevel        = "info"
)

// AdminConfigured reports whether a bootstrap superuser is requested.
func (c *Config) AdminConfigured() bool {
	return c.AdminName != "" && c.AdminEmail != "" && c.AdminPassword != ""
}

// Load parses configuration from a .env file, environment variables and flags.
// Variables already present in the environment win over the .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		TokenSecret:     getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		RedisAddress:    getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:   getString(lookup, "REDIS_PASSWORD", ""),
		CatalogCacheTTL: getDuration(lookup, "CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LoginRateLimit:  getFloat(lookup, "LOGIN_RATE_LIMIT", defaultLoginRateLimit),
		LoginRateBurst:  getInt(lookup, "LOGIN_RATE_BURST", defaultLoginRateBurst),
		AdminName:       getString(lookup, "ADMIN_NAME", ""),
		AdminEmail:      getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:   getString(lookup, "ADMIN_PASSWORD", ""),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		PasswordCost:    getInt(lookup, "PASSWORD_COST", 0),
	}

	fs := flag.NewFlagSet("flowershop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		cacheTTLStr        = cfg.CatalogCacheTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing session tokens")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the catalog cache")
	fs.StringVar(&cacheTTLStr, "catalog-ttl", cacheTTLStr, "Catalog cache entry lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.Float64Var(&cfg.LoginRateLimit, "login-rps", cfg.LoginRateLimit, "Allowed login attempts per second")
	fs.IntVar(&cfg.LoginRateBurst, "login-burst", cfg.LoginRateBurst, "Login attempts burst size")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level: debug, info, warn or error")
	fs.IntVar(&cfg.PasswordCost, "password-cost", cfg.PasswordCost, "bcrypt cost for password hashes, 0 for default")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.CatalogCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid catalog cache ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = defaultCatalogCacheTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.LoginRateLimit <= 0 {
		cfg.LoginRateLimit = defaultLoginRateLimit
	}

	if cfg.LoginRateBurst <= 0 {
		cfg.LoginRateBurst = defaultLoginRateBurst
	}

	if cfg.PasswordCost < 0 {
		cfg.PasswordCost = 0
	}

	if cfg.DatabaseURI == "" {
		cfg.DatabaseURI = databaseURIFromParts(lookup)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

// databaseURIFromParts assembles a DSN from DB_HOST, DB_PORT, DB_USER,
// DB_PASSWORD and DB_NAME. It returns "" when DB_HOST is not set.
func databaseURIFromParts(lookup envLookup) string {
	host := getString(lookup, "DB_HOST", "")
	if host == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, getString(lookup, "DB_PORT", defaultDBPort)),
		Path:   "/" + getString(lookup, "DB_NAME", "postgres"),
	}
	if user := getString(lookup, "DB_USER", ""); user != "" {
		if password, ok := lookup("DB_PASSWORD"); ok && password != "" {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
