package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// WeatherAPIKey authenticates outbound WeatherAPI.com calls.
	WeatherAPIKey string

	// DatabasePath locates the sqlite history database.
	DatabasePath string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// FrontendURL is the single origin allowed by CORS.
	FrontendURL string

	// MaintenanceInterval controls how often store housekeeping runs.
	MaintenanceInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
// The API key is the only required value.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHERAPI_API_KEY is required")
	}

	cfg.DatabasePath = getenvDefault("DATABASE_PATH", "skycast.db")
	cfg.FrontendURL = getenvDefault("FRONTEND_URL", "http://localhost:5173")
	cfg.Port = getenvDefault("PORT", "8080")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	maintStr := getenvDefault("MAINTENANCE_INTERVAL", "24h")
	maint, err := time.ParseDuration(maintStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MAINTENANCE_INTERVAL: %w", err)
	}
	cfg.MaintenanceInterval = maint

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
