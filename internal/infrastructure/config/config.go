// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion  string
	Environment string

	// Server
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Store
	StoreDriver   string
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Auth
	APIKey string

	// Metrics
	MetricsNamespace string
}

// IsProduction reports whether the service runs with production
// error-disclosure rules.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:  getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("APP_ENV", "development"),

		Port:            getEnv("PORT", "3300"),
		ReadTimeout:     time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:    time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT", 10)) * time.Second,

		StoreDriver:   getEnv("STORE_DRIVER", "mongo"),
		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "fuelStationsDatabase"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		APIKey: getEnv("API_KEY", "test_key"),

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "fuelstation"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
