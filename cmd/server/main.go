package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/acebot/backend/config"
	httpDelivery "github.com/acebot/backend/internal/delivery/http"
	"github.com/acebot/backend/internal/infrastructure/cache"
	"github.com/acebot/backend/internal/infrastructure/catalog"
	"github.com/acebot/backend/internal/infrastructure/completion"
	"github.com/acebot/backend/internal/infrastructure/proxyfetch"
	"github.com/acebot/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("starting AceBot backend v1.0.0")

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cfg.Cache.MaxEntries)
	log.Info().Dur("ttl", cfg.Cache.TTL).Int("max_entries", cfg.Cache.MaxEntries).Msg("cache configured")

	fetcher := proxyfetch.NewClient(proxyfetch.Config{
		BaseURL:     cfg.Scraper.BaseURL,
		APIKey:      cfg.Scraper.APIKey,
		CountryCode: cfg.Scraper.CountryCode,
		Render:      cfg.Scraper.Render,
		DeviceType:  cfg.Scraper.DeviceType,
		Timeout:     cfg.Scraper.Timeout,
	}, proxyfetch.RetryPolicy{
		MaxAttempts: cfg.Scraper.Retries,
		MaxDelay:    cfg.Scraper.MaxBackoff,
	})
	log.Info().Str("base_url", cfg.Scraper.BaseURL).Str("country", cfg.Scraper.CountryCode).
		Msg("proxy fetch configured")

	completionClient := completion.NewClient(completion.Config{
		Endpoint: cfg.Completion.Endpoint,
		APIKey:   cfg.Completion.APIKey,
		Model:    cfg.Completion.Model,
	})
	log.Info().Str("endpoint", cfg.Completion.Endpoint).Str("model", cfg.Completion.Model).
		Msg("completion backend configured")

	catalogStore := catalog.NewFileStore(cfg.Catalog.Path)

	// Initialize usecase layer
	discoveryService := usecase.NewDiscoveryService(
		memoryCache,
		fetcher,
		usecase.DiscoveryConfig{
			CacheTTL:   cfg.Cache.TTL,
			MaxSites:   cfg.Discovery.MaxSites,
			MinPerSite: cfg.Discovery.MinPerSite,
		},
	)
	conversationService := usecase.NewConversationService(completionClient)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(conversationService, discoveryService, catalogStore)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server listening")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}
