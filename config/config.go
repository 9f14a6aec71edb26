package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ListingsURL          string
	ListingsLocation     string
	ListingsPropertyType string
	ReviewsURL           string
	MarketURL            string
	HTTPTimeout          time.Duration

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ListingsTable string
	ReviewsTable  string
	MarketTable   string

	SnapshotDir string
	LogLevel    string
	LogFile     string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ListingsURL:          getEnv("LISTINGS_URL", "https://api.condomarket.example/listings"),
		ListingsLocation:     getEnv("LISTINGS_LOCATION", "manhattan"),
		ListingsPropertyType: getEnv("LISTINGS_PROPERTY_TYPE", "condo"),
		ReviewsURL:           getEnv("REVIEWS_URL", "https://reviews.condomarket.example/condos"),
		MarketURL:            getEnv("MARKET_URL", "https://api.condomarket.example/trends"),
		HTTPTimeout:          time.Duration(getEnvInt("HTTP_TIMEOUT_SEC", 30)) * time.Second,

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "pipeline"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "pipeline123"),
		PostgresDB:       getEnv("POSTGRES_DB", "condo_market"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ListingsTable: getEnv("LISTINGS_TABLE", "condo_listings"),
		ReviewsTable:  getEnv("REVIEWS_TABLE", "condo_reviews"),
		MarketTable:   getEnv("MARKET_TABLE", "market_trends"),

		SnapshotDir: getEnv("SNAPSHOT_DIR", "./output"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
