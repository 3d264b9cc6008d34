package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Scraper    ScraperConfig
	Cache      CacheConfig
	Completion CompletionConfig
	Catalog    CatalogConfig
	Discovery  DiscoveryConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScraperConfig holds proxy fetch configuration
type ScraperConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	CountryCode string        `mapstructure:"country_code"`
	Render      bool          `mapstructure:"render"`
	DeviceType  string        `mapstructure:"device_type"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Retries     int           `mapstructure:"retries"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// CompletionConfig holds the chat-completion backend configuration
type CompletionConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// CatalogConfig holds the product catalog configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// DiscoveryConfig holds discovery orchestration knobs
type DiscoveryConfig struct {
	MaxSites   int `mapstructure:"max_sites"`
	MinPerSite int `mapstructure:"min_per_site"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/acebot/")

	// Environment variable settings
	v.SetEnvPrefix("ACEBOT")
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
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Scraper defaults
	v.SetDefault("scraper.base_url", "https://api.scraperapi.com/")
	v.SetDefault("scraper.country_code", "ng")
	v.SetDefault("scraper.render", true)
	v.SetDefault("scraper.device_type", "desktop")
	v.SetDefault("scraper.timeout", "70s")
	v.SetDefault("scraper.retries", 3)
	v.SetDefault("scraper.max_backoff", "5s")

	// Cache defaults
	v.SetDefault("cache.ttl", "30m")
	v.SetDefault("cache.max_entries", 1000)

	// Completion defaults
	v.SetDefault("completion.endpoint", "https://api.groq.com/openai/v1")
	v.SetDefault("completion.model", "llama-3.1-8b-instant")

	// Catalog defaults
	v.SetDefault("catalog.path", "data/catalog.json")

	// Discovery defaults
	v.SetDefault("discovery.max_sites", 3)
	v.SetDefault("discovery.min_per_site", 2)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Scraper.APIKey == "" {
		return fmt.Errorf("scraper API key is required (set ACEBOT_SCRAPER_API_KEY)")
	}

	if config.Completion.APIKey == "" {
		return fmt.Errorf("completion API key is required (set ACEBOT_COMPLETION_API_KEY)")
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.Discovery.MaxSites <= 0 || config.Discovery.MinPerSite <= 0 {
		return fmt.Errorf("discovery max_sites and min_per_site must be positive")
	}

	return nil
}
