package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Search    SearchConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds the static dataset location
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds response-cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// SearchConfig holds fuzzy-matching tuning
type SearchConfig struct {
	MinSimilarity  float64 `mapstructure:"min_similarity"`
	MinMatchLength int     `mapstructure:"min_match_length"`
	MaxResults     int     `mapstructure:"max_results"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per second
	Burst int `mapstructure:"burst"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/kassaklap/")

	// Environment variable settings
	v.SetEnvPrefix("KASSAKLAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "https://kassaklap.nl"})

	// Catalog defaults
	v.SetDefault("catalog.path", "data/supermarkets.json")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Search defaults: tolerate 1-2 character typos, skip one-letter
	// fragments, cap the response size
	v.SetDefault("search.min_similarity", 0.7)
	v.SetDefault("search.min_match_length", 2)
	v.SetDefault("search.max_results", 50)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 20)
	v.SetDefault("ratelimit.burst", 40)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/kassaklap.log")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set KASSAKLAP_CATALOG_PATH)")
	}

	if config.Search.MinSimilarity <= 0 || config.Search.MinSimilarity > 1 {
		return fmt.Errorf("search min_similarity must be in (0, 1], got: %v", config.Search.MinSimilarity)
	}

	if config.Search.MinMatchLength < 1 {
		return fmt.Errorf("search min_match_length must be at least 1, got: %d", config.Search.MinMatchLength)
	}

	if config.RateLimit.PerIP < 1 {
		return fmt.Errorf("ratelimit per_ip must be at least 1, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
