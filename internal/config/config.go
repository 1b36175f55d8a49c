// Package config reads the server's settings from the environment.
//
// A .env file in the working directory is loaded first when present, so local
// development needs no exported variables. Values already set in the real
// environment win over the file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port int

	StoreDriver string // memory, sqlite or postgres
	DBPath      string // sqlite file
	DatabaseURL string // postgres DSN

	// JWTSecret enables the /api/admin routes when non-empty.
	JWTSecret     string
	AdminUsername string
	AdminPassword string

	CORSAllowedOrigins []string
	SeedOnStart        bool

	LogLevel  slog.Level
	LogFormat string // text or json
}

// Load reads .env (if any) and the environment.
func Load() (*Config, error) {
	// A missing .env is the normal case in production.
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

// fromEnv builds a Config from getenv and validates it.
func fromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		StoreDriver:   strings.ToLower(get("STORE_DRIVER", StoreMemory)),
		DBPath:        get("DB_PATH", "data/kormi.db"),
		DatabaseURL:   get("DATABASE_URL", ""),
		JWTSecret:     get("JWT_SECRET", ""),
		AdminUsername: get("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD"),
		LogFormat:     strings.ToLower(get("LOG_FORMAT", "text")),
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid PORT: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("config: PORT must be between 1 and 65535, got %d", port)
	}
	cfg.Port = port

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("config: STORE_DRIVER must be memory, sqlite or postgres, got %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 16 {
		return nil, fmt.Errorf("config: JWT_SECRET must be at least 16 characters")
	}

	for _, origin := range strings.Split(get("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.SeedOnStart, err = strconv.ParseBool(get("SEED_ON_START", "false")); err != nil {
		return nil, fmt.Errorf("config: invalid SEED_ON_START: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("config: invalid LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}
