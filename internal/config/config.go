package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port          int
	LogLevel      string
	LogFormat     string
	ServiceName   string
	Version       string
	Environment   string
	DataDir       string // directory holding the game data tables
	SchemaDir     string // directory holding JSON Schemas; empty disables schema validation
	ProfilePath   string // YAML file with character scoring profiles
	BaseStatsPath string // JSON file with character base stats
	APIKey        string // API key for authentication; empty disables auth

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honored
	TrustedProxies []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		ServiceName:   getEnv("SERVICE_NAME", "artifact-scouter"),
		Version:       getEnv("VERSION", "dev"),
		Environment:   getEnv("ENVIRONMENT", "dev"),
		DataDir:       getEnv("DATA_DIR", "configs/data"),
		SchemaDir:     getEnv("SCHEMA_DIR", "configs/schema"),
		ProfilePath:   getEnv("PROFILE_PATH", "configs/characters/profiles.yaml"),
		BaseStatsPath: getEnv("BASE_STATS_PATH", "configs/data/base_stats.json"),
		APIKey:        getEnv("API_KEY", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
