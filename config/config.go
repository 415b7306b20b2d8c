package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env           string
	Port          string
	BaseURL       string
	DatabaseURL   string
	Credentials   string
	DriveFolderID string
	ChromePath    string
	ImageCacheDir string
}

// LoadDotEnv loads .env outside production. Values in .env override the
// process environment so local runs are reproducible.
func LoadDotEnv() {
	if os.Getenv("APP_ENV") == "production" {
		return
	}
	envPath := ".env"
	if err := godotenv.Overload(envPath); err != nil {
		log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		return
	}
	log.Printf("Successfully loaded environment variables from %s", envPath)
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	dbURL, err := databaseURL()
	if err != nil {
		return nil, err
	}

	port := strings.TrimPrefix(getEnvOrDefault("PORT", "8080"), ":")

	return &Config{
		Env:           getEnvOrDefault("APP_ENV", "development"),
		Port:          port,
		BaseURL:       strings.TrimSuffix(getEnvOrDefault("BASE_URL", "http://localhost:"+port), "/"),
		DatabaseURL:   dbURL,
		Credentials:   os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID: os.Getenv("DRIVE_FOLDER_ID"),
		ChromePath:    os.Getenv("CHROME_PATH"),
		ImageCacheDir: getEnvOrDefault("IMAGE_CACHE_DIR", "cache/images"),
	}, nil
}

// IsProduction reports whether the service runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// databaseURL returns DATABASE_URL or builds a DSN from the DB_* variables
func databaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		getEnvOrDefault("DB_PORT", "5432"),
		user,
		os.Getenv("DB_PASSWORD"),
		dbname,
		getEnvOrDefault("DB_SSLMODE", "disable"),
	), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
