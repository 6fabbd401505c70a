// Package config handles loading and validation of application configuration
// from environment variables. Supports .env files via godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        int
	Environment string // "development" | "staging" | "production"
	APIBaseURL  string // public base URL used to build evidence file links

	// Database
	DatabaseURL string

	// Security
	JWTSecret      string
	JWTExpiryHours int
	BcryptCost     int
	AllowedOrigins []string
	RateLimitRPM   int

	// Redis (rate limiting & stats caching; optional, falls back to in-memory)
	RedisURL string

	// Evidence storage
	BlobDriver           string // "fs" | "s3" | "memory"
	UploadPath           string
	S3Bucket             string
	S3Region             string
	S3Endpoint           string
	MaxFileSizeBytes     int64
	MaxFilesPerComplaint int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		Environment: getEnv("ENVIRONMENT", "development"),
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRES_HOURS", 168),
		BcryptCost:     getEnvInt("BCRYPT_COST", 12),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:8081,http://localhost:19006"), ","),
		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", 100),

		RedisURL: getEnv("REDIS_URL", ""),

		BlobDriver:           getEnv("BLOB_DRIVER", "fs"),
		UploadPath:           getEnv("UPLOAD_PATH", "./uploads"),
		S3Bucket:             getEnv("S3_BUCKET", ""),
		S3Region:             getEnv("S3_REGION", "af-south-1"),
		S3Endpoint:           getEnv("S3_ENDPOINT", ""),
		MaxFileSizeBytes:     int64(getEnvInt("MAX_FILE_SIZE", 10*1024*1024)),
		MaxFilesPerComplaint: getEnvInt("MAX_FILES_PER_COMPLAINT", 10),
	}

	// Validate required fields in production
	if cfg.Environment == "production" {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		if cfg.JWTSecret == "dev-secret-change-in-production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		if cfg.BlobDriver == "s3" && cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when BLOB_DRIVER=s3")
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
