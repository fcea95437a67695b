package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every knob the service reads at startup. It is built once in
// main and passed by reference; request handlers never read the environment.
type Config struct {
	Port string

	DBDriver string // "sqlite" or "postgres"
	DBDSN    string

	JWTSecret       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Load reads .env (if present) and the process environment into a Config.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBDSN:           getEnv("DATABASE_DSN", "fudpin.db"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "fudpin_super_secret_2024")),
		AccessTokenTTL:  getEnvHours("ACCESS_TOKEN_TTL_HOURS", 7*24),
		RefreshTokenTTL: getEnvHours("REFRESH_TOKEN_TTL_HOURS", 30*24),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvHours(key string, fallback int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
	}
	return time.Duration(fallback) * time.Hour
}
