package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("ACEBOT_SERVER_PORT")
		os.Unsetenv("ACEBOT_SERVER_ENVIRONMENT")
		os.Unsetenv("ACEBOT_SCRAPER_API_KEY")
		os.Unsetenv("ACEBOT_SCRAPER_BASE_URL")
		os.Unsetenv("ACEBOT_SCRAPER_COUNTRY_CODE")
		os.Unsetenv("ACEBOT_CACHE_TTL")
		os.Unsetenv("ACEBOT_CACHE_MAX_ENTRIES")
		os.Unsetenv("ACEBOT_COMPLETION_API_KEY")
		os.Unsetenv("ACEBOT_COMPLETION_MODEL")
		os.Unsetenv("ACEBOT_CATALOG_PATH")
		os.Unsetenv("ACEBOT_DISCOVERY_MAX_SITES")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required API keys
		os.Setenv("ACEBOT_SCRAPER_API_KEY", "test-scraper-key")
		os.Setenv("ACEBOT_COMPLETION_API_KEY", "test-completion-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Scraper.BaseURL != "https://api.scraperapi.com/" {
			t.Errorf("Scraper.BaseURL = %s, want https://api.scraperapi.com/", cfg.Scraper.BaseURL)
		}
		if cfg.Scraper.CountryCode != "ng" {
			t.Errorf("Scraper.CountryCode = %s, want ng", cfg.Scraper.CountryCode)
		}
		if !cfg.Scraper.Render {
			t.Error("Scraper.Render = false, want true")
		}
		if cfg.Cache.TTL != 30*time.Minute {
			t.Errorf("Cache.TTL = %v, want 30m", cfg.Cache.TTL)
		}
		if cfg.Completion.Model != "llama-3.1-8b-instant" {
			t.Errorf("Completion.Model = %s, want llama-3.1-8b-instant", cfg.Completion.Model)
		}
		if cfg.Discovery.MaxSites != 3 {
			t.Errorf("Discovery.MaxSites = %d, want 3", cfg.Discovery.MaxSites)
		}
		if cfg.Discovery.MinPerSite != 2 {
			t.Errorf("Discovery.MinPerSite = %d, want 2", cfg.Discovery.MinPerSite)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("ACEBOT_SERVER_PORT", "9090")
		os.Setenv("ACEBOT_SERVER_ENVIRONMENT", "production")
		os.Setenv("ACEBOT_SCRAPER_API_KEY", "custom-scraper-key")
		os.Setenv("ACEBOT_SCRAPER_BASE_URL", "https://proxy.example.com/")
		os.Setenv("ACEBOT_SCRAPER_COUNTRY_CODE", "us")
		os.Setenv("ACEBOT_CACHE_TTL", "5m")
		os.Setenv("ACEBOT_COMPLETION_API_KEY", "custom-completion-key")
		os.Setenv("ACEBOT_COMPLETION_MODEL", "llama-3.3-70b-versatile")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Scraper.APIKey != "custom-scraper-key" {
			t.Errorf("Scraper.APIKey = %s, want custom-scraper-key", cfg.Scraper.APIKey)
		}
		if cfg.Scraper.BaseURL != "https://proxy.example.com/" {
			t.Errorf("Scraper.BaseURL = %s, want https://proxy.example.com/", cfg.Scraper.BaseURL)
		}
		if cfg.Scraper.CountryCode != "us" {
			t.Errorf("Scraper.CountryCode = %s, want us", cfg.Scraper.CountryCode)
		}
		if cfg.Cache.TTL != 5*time.Minute {
			t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
		}
		if cfg.Completion.Model != "llama-3.3-70b-versatile" {
			t.Errorf("Completion.Model = %s, want llama-3.3-70b-versatile", cfg.Completion.Model)
		}
	})

	t.Run("fails validation when scraper API key is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("ACEBOT_COMPLETION_API_KEY", "test-completion-key")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing scraper API key")
		}
	})

	t.Run("fails validation when completion API key is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("ACEBOT_SCRAPER_API_KEY", "test-scraper-key")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing completion API key")
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Scraper:    ScraperConfig{APIKey: "scraper-key"},
			Completion: CompletionConfig{APIKey: "completion-key"},
			Cache:      CacheConfig{TTL: 30 * time.Minute},
			Discovery:  DiscoveryConfig{MaxSites: 3, MinPerSite: 2},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(base()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when scraper API key is empty", func(t *testing.T) {
		cfg := base()
		cfg.Scraper.APIKey = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty scraper API key")
		}
	})

	t.Run("fails when completion API key is empty", func(t *testing.T) {
		cfg := base()
		cfg.Completion.APIKey = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty completion API key")
		}
	})

	t.Run("fails for non-positive cache TTL", func(t *testing.T) {
		cfg := base()
		cfg.Cache.TTL = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero cache TTL")
		}
	})

	t.Run("fails for non-positive discovery limits", func(t *testing.T) {
		cfg := base()
		cfg.Discovery.MaxSites = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero max_sites")
		}
	})
}
