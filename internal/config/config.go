package config

import (
	"os"
	"strconv"
)

// MongoConfig holds document database connection settings.
type MongoConfig struct {
	URI      string
	Database string
}

// StorageConfig selects the file storage driver.
// Supported drivers: "disk" (local filesystem) and "s3" (S3-compatible).
type StorageConfig struct {
	Driver string
}

// MinIOConfig holds object storage settings for the s3 driver.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port      string
	BaseURL   string
	UploadDir string
	Storage   StorageConfig
	Mongo     MongoConfig
	MinIO     MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port: getEnv("PORT", "8080"),
		// BaseURL is the externally visible origin used to build image URLs.
		BaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "disk"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", ""),
			Database: getEnv("MONGODB_DATABASE", "mediaapi"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
