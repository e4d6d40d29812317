package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	ServerPort          string
	JWTSecret           string
	JWTExpiry           time.Duration
	AllowedOrigin       string
	Environment         string
	UploadDir           string
	StripeWebhookSecret string
}

func LoadConfig() (*Config, error) {
	// Tokens default to a seven day lifetime
	expiryStr := getEnv("JWT_EXPIRY", "168h")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil {
		return nil, errors.New("invalid JWT_EXPIRY format")
	}

	cfg := &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTExpiry:           expiry,
		AllowedOrigin:       getEnv("ALLOWED_ORIGIN", "*"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		UploadDir:           getEnv("UPLOAD_DIR", os.TempDir()),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// Helper: get env with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
