package domain

// ProductRecord represents a single product listing scraped from an e-commerce site.
// A record is only ever constructed with name, price, url and image all present;
// partially parsed cards are discarded by the extractors, never surfaced.
type ProductRecord struct {
	Name   string  `json:"name"`
	Price  string  `json:"price"` // currency-formatted as sourced, no normalization
	Rating float64 `json:"rating"`
	URL    string  `json:"url"`
	Image  string  `json:"image"`
	Source string  `json:"source,omitempty"` // site identifier, attached by the orchestrator
}

// SiteResult holds the products one site contributed to a discovery call.
// Data is capped at 4 records and never mutated after the orchestrator returns it.
type SiteResult struct {
	Site string          `json:"site"`
	Data []ProductRecord `json:"data"`
}

// SearchMode selects which site pool a discovery call draws from.
type SearchMode string

const (
	// ModeRatings searches the rating-capable pool first.
	ModeRatings SearchMode = "ratings"
	// ModeNonRatings searches the category-priority pool first.
	ModeNonRatings SearchMode = "non-ratings"
	// ModeSpecificSites bypasses routing for a single user-selected site.
	ModeSpecificSites SearchMode = "specific-sites"
)

// SearchRequest is an inbound product-search request.
type SearchRequest struct {
	Query   string     `json:"query"`
	Mode    SearchMode `json:"category"`
	Site    string     `json:"specificSite,omitempty"`
	BotType string     `json:"bot_type,omitempty"` // "chat" or "voice"
}
