package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for catalog-service.
type Config struct {
	Env        string // "production" or "development"
	Port       string // Service port (default: 8080)
	MongoURL   string // MongoDB connection string
	MongoDB    string // Database name
	RedisURL   string // Redis connection string
	AdminToken string // Shared token the admin routes are gated on

	AWSRegion   string
	AWSEndpoint string // Custom endpoint (e.g. LocalStack); empty for real AWS
	S3Bucket    string
	S3Prefix    string
	CDNDomain   string // CloudFront domain for public image URLs; optional
}

// LoadConfig loads environment variables into the Config struct, applying
// defaults and validating required fields.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		MongoURL:    getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "catalog"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
		AWSEndpoint: os.Getenv("AWS_ENDPOINT"),
		S3Bucket:    getEnv("AWS_S3_BUCKET", "catalog-images"),
		S3Prefix:    getEnv("AWS_S3_PREFIX", "products/"),
		CDNDomain:   os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
	}

	if cfg.AdminToken == "" {
		return nil, fmt.Errorf("ADMIN_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
