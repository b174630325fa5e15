package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Detection   DetectionConfig   `mapstructure:"detection"`
	Storage     StorageConfig     `mapstructure:"storage"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Suggestions SuggestionsConfig `mapstructure:"suggestions"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DetectionConfig holds parser and duplicate detector configuration
type DetectionConfig struct {
	Threshold    float64       `mapstructure:"threshold"`
	SpecCacheTTL time.Duration `mapstructure:"spec_cache_ttl"`
	DebugLogging bool          `mapstructure:"debug_logging"`
}

// StorageConfig holds inventory database configuration
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// SuggestionsConfig holds location suggestion configuration
type SuggestionsConfig struct {
	Limit int `mapstructure:"limit"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/inventory/")

	// Environment variable settings: INVENTORY_SERVER_PORT -> server.port
	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the environment when present. Variables
// already set are left alone.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Detection defaults
	v.SetDefault("detection.threshold", 0.70)
	v.SetDefault("detection.spec_cache_ttl", "1h")
	v.SetDefault("detection.debug_logging", false)

	// Storage defaults
	v.SetDefault("storage.path", "inventory.db")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Suggestion defaults
	v.SetDefault("suggestions.limit", 5)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Detection.Threshold < 0 || config.Detection.Threshold > 1 {
		return fmt.Errorf("detection threshold must be between 0 and 1, got: %v", config.Detection.Threshold)
	}

	if strings.TrimSpace(config.Storage.Path) == "" {
		return errors.New("storage path is required (set INVENTORY_STORAGE_PATH)")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Suggestions.Limit <= 0 {
		return fmt.Errorf("suggestion limit must be positive, got: %d", config.Suggestions.Limit)
	}

	return nil
}
