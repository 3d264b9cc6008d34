package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/acebot/backend/internal/domain"
	"github.com/acebot/backend/internal/infrastructure/sites"
)

// DiscoveryConfig holds configuration for the discovery service
type DiscoveryConfig struct {
	CacheTTL   time.Duration
	MaxSites   int
	MinPerSite int
}

// DiscoveryService orchestrates multi-site product scraping: it routes a
// query to candidate sites, fetches and extracts per site, enforces the
// per-site yield threshold, falls back across pools, and memoizes results.
type DiscoveryService struct {
	cache      domain.CacheRepository
	fetcher    domain.FetchClient
	cacheTTL   time.Duration
	maxSites   int
	minPerSite int
}

// NewDiscoveryService creates a discovery service with dependencies
func NewDiscoveryService(
	cache domain.CacheRepository,
	fetcher domain.FetchClient,
	config DiscoveryConfig,
) *DiscoveryService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Minute
	}
	maxSites := config.MaxSites
	if maxSites <= 0 {
		maxSites = 3
	}
	minPerSite := config.MinPerSite
	if minPerSite <= 0 {
		minPerSite = 2
	}

	return &DiscoveryService{
		cache:      cache,
		fetcher:    fetcher,
		cacheTTL:   cacheTTL,
		maxSites:   maxSites,
		minPerSite: minPerSite,
	}
}

// Discover scrapes the routed sites for a query.
// Flow: check cache -> scrape primary pool -> one fallback pass over the
// opposite pool for the shortfall -> tag sources -> cache -> return.
// An empty result set is a valid outcome, not an error, and is cached so
// dead queries do not hammer the proxy until the TTL expires.
func (s *DiscoveryService) Discover(ctx context.Context, query string, mode domain.SearchMode) ([]domain.SiteResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	key := cacheKey(mode, query)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		log.Debug().Str("query", query).Str("mode", string(mode)).Msg("discovery cache hit")
		return cached, nil
	}

	primary, secondary := ratingRoute(), categoryRoute(query)
	if mode == domain.ModeNonRatings {
		primary, secondary = secondary, primary
	}

	results := s.scrapePool(ctx, query, primary, s.maxSites)
	if len(results) < s.maxSites {
		log.Info().Str("query", query).Int("contributed", len(results)).
			Msg("primary pool under-delivered, trying opposite pool")
		results = append(results, s.scrapePool(ctx, query, secondary, s.maxSites-len(results))...)
	}

	tagSources(results)

	if err := s.cache.Set(ctx, key, results, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache discovery results")
	}

	return results, nil
}

// FetchSingleSite scrapes exactly one user-selected site, bypassing routing,
// fallback and the cache entirely.
func (s *DiscoveryService) FetchSingleSite(ctx context.Context, query, siteID string) ([]domain.SiteResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	site, ok := sites.Lookup(siteID)
	if !ok {
		return nil, domain.ErrUnknownSite
	}

	records := s.scrapeSite(ctx, query, site)
	if len(records) == 0 {
		log.Info().Str("site", site.ID).Str("query", query).Msg("no products found on selected site")
		return []domain.SiteResult{}, nil
	}

	results := []domain.SiteResult{{Site: site.ID, Data: records}}
	tagSources(results)
	return results, nil
}

// scrapePool walks a site pool in priority order and collects contributions
// until maxSites sites have met the per-site threshold. Per-site failures and
// below-threshold yields skip the site, never abort the pass.
func (s *DiscoveryService) scrapePool(ctx context.Context, query string, pool []string, maxSites int) []domain.SiteResult {
	var contributions []domain.SiteResult
	for _, id := range pool {
		if len(contributions) >= maxSites {
			break
		}
		site, ok := sites.Lookup(id)
		if !ok {
			continue
		}

		log.Info().Str("site", site.ID).Str("query", query).Msg("scraping site")
		records := s.scrapeSite(ctx, query, site)
		if len(records) < s.minPerSite {
			log.Info().Str("site", site.ID).Int("yield", len(records)).
				Int("min", s.minPerSite).Msg("site below threshold, skipping")
			continue
		}

		contributions = append(contributions, domain.SiteResult{Site: site.ID, Data: records})
	}
	return contributions
}

// scrapeSite fetches and extracts one site. Fetch errors are site-level
// skips: the extractor only ever sees an already-fetched document.
func (s *DiscoveryService) scrapeSite(ctx context.Context, query string, site sites.Site) []domain.ProductRecord {
	searchURL := sites.BuildSearchURL(site, query)
	html, err := s.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		log.Warn().Err(err).Str("site", site.ID).Msg("fetch failed")
		return nil
	}
	return site.Extract(html, query)
}

// tagSources stamps each record with its contributing site for downstream
// consumers. Extractors never set the source themselves.
func tagSources(results []domain.SiteResult) {
	for _, siteResult := range results {
		for i := range siteResult.Data {
			siteResult.Data[i].Source = siteResult.Site
		}
	}
}

// cacheKey hashes (mode, normalized query) into a stable cache key.
func cacheKey(mode domain.SearchMode, query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := md5.Sum([]byte(string(mode) + ":" + normalized))
	return hex.EncodeToString(sum[:])
}
