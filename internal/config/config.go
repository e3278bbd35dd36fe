package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	defaultAccessSecret  = "dev-access-secret"
	defaultRefreshSecret = "dev-refresh-secret"
)

type Config struct {
	Port            string
	Env             string
	DatabaseDSN     string
	CORSOrigin      string
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		// clientFoundRows makes UPDATE report matched rows instead of changed
		// rows, which the ownership guards rely on.
		DatabaseDSN:     getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/taskfeed?parseTime=true&clientFoundRows=true"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:3000"),
		AccessSecret:    getEnv("ACCESS_TOKEN_SECRET", defaultAccessSecret),
		RefreshSecret:   getEnv("REFRESH_TOKEN_SECRET", defaultRefreshSecret),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	if cfg.Env == "production" && (cfg.AccessSecret == defaultAccessSecret || cfg.RefreshSecret == defaultRefreshSecret) {
		slog.Error("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set in production environment")
		os.Exit(1)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		slog.Error("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be distinct")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
