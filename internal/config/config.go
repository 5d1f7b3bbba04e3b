// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// DB
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	// Auth
	JWTSecret                string
	AccessTokenExpireMinutes int

	// Odoo
	OdooHost     string
	OdooPort     string
	OdooDatabase string
	OdooUser     string
	OdooAPIKey   string

	// Sync
	SyncIntervalSeconds int
	SyncFetchLimit      int

	// CORS
	AllowedOrigins string
}

func Load() *Config {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load() // optional .env for local
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	return &Config{
		ServerPort: port,

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    getEnv("DB_PASS", "postgres"),
		DBName:    getEnv("DB_NAME", "odoo_sync_db"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		JWTSecret:                getEnv("JWT_SECRET", "change-me-in-production"),
		AccessTokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),

		OdooHost:     os.Getenv("ODOO_HOST"),
		OdooPort:     getEnv("ODOO_PORT", "443"),
		OdooDatabase: os.Getenv("ODOO_DATABASE"),
		OdooUser:     os.Getenv("ODOO_USER"),
		OdooAPIKey:   os.Getenv("ODOO_API_KEY"),

		// Remote fetch batching and API pagination are unrelated knobs:
		// SYNC_FETCH_LIMIT caps one pipeline fetch, per_page is a query param.
		SyncIntervalSeconds: getEnvInt("SYNC_INTERVAL_SECONDS", 60),
		SyncFetchLimit:      getEnvInt("SYNC_FETCH_LIMIT", 100),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("❌ Invalid %s: %v", key, err)
	}
	return n
}
