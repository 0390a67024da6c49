package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/vkuzn/unimarket/pkg/auth"
)

type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	JWTIssuer          string
	JWTTTLHours        int
	AllowedEmailDomain string
}

// Load reads environment variables, optionally from a .env file if present.
// JWTSecret deliberately has no default: the caller must treat an empty
// value as a fatal startup condition.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTIssuer:          getEnv("JWT_ISSUER", "unimarket-api"),
		JWTTTLHours:        getEnvInt("JWT_TTL_HOURS", 168),
		AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", auth.DefaultEmailDomain),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
