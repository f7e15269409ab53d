package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the service.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	OddsAPIKey       string
	SportsDataAPIKey string
	OddsPollInterval time.Duration

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads configuration from the environment. A .env file is loaded
// first when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	accessMinutes, err := intEnv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 120)
	if err != nil {
		return nil, err
	}
	refreshDays, err := intEnv("JWT_REFRESH_TOKEN_EXPIRE_DAYS", 7)
	if err != nil {
		return nil, err
	}
	if accessMinutes <= 0 || refreshDays <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}

	pollSeconds, err := intEnv("ODDS_POLL_INTERVAL_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	if pollSeconds <= 0 {
		return nil, fmt.Errorf("ODDS_POLL_INTERVAL_SECONDS must be positive")
	}

	cfg := &Config{
		DatabaseURL:  dbURL,
		JWTSecretKey: jwtKey,
		ServerPort:   port,

		AccessTokenTTL:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenTTL: time.Duration(refreshDays) * 24 * time.Hour,

		OddsAPIKey:       os.Getenv("ODDS_API_KEY"),
		SportsDataAPIKey: os.Getenv("SPORTSDATA_API_KEY"),
		OddsPollInterval: time.Duration(pollSeconds) * time.Second,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

// HasR2 reports whether object storage is configured. Headshot and logo
// uploads are disabled without it.
func (c *Config) HasR2() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" &&
		c.R2SecretAccessKey != "" && c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}
