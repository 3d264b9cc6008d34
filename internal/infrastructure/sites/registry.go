package sites

import "strings"

// Site describes one scrape target in the registry.
type Site struct {
	ID        string
	SearchURL string // search endpoint; the query is appended with + separators
	Rated     bool   // exposes a star-rating signal
	Label     string // human-facing name
	Extract   Extractor
}

// ratingOrder and nonRatingOrder fix the iteration order of each pool.
var (
	ratingOrder    = []string{"jumia", "amazon"}
	nonRatingOrder = []string{"konga", "slot", "kara", "ajebomarket", "topsuccess", "jiji"}
)

var registry = map[string]Site{
	"jumia": {
		ID:        "jumia",
		SearchURL: "https://www.jumia.com.ng/catalog/?q=",
		Rated:     true,
		Label:     "Jumia",
		Extract:   ExtractJumia,
	},
	"amazon": {
		ID:        "amazon",
		SearchURL: "https://www.amazon.com/s?k=",
		Rated:     true,
		Label:     "Amazon",
		Extract:   ExtractAmazon,
	},
	"konga": {
		ID:        "konga",
		SearchURL: "https://www.konga.com/search?search=",
		Label:     "Konga",
		Extract:   ExtractKonga,
	},
	"slot": {
		ID:        "slot",
		SearchURL: "https://slot.ng/?s=",
		Label:     "Slot",
		Extract:   ExtractSlot,
	},
	"kara": {
		ID:        "kara",
		SearchURL: "https://www.kara.com.ng/catalogsearch/result/?q=",
		Label:     "Kara",
		Extract:   ExtractKara,
	},
	"ajebomarket": {
		ID:        "ajebomarket",
		SearchURL: "https://ajebomarket.com/?s=",
		Label:     "AjeboMarket",
		Extract:   ExtractAjeboMarket,
	},
	"topsuccess": {
		ID:        "topsuccess",
		SearchURL: "https://topsuccess.ng/?s=",
		Label:     "TopSuccess",
		Extract:   ExtractTopSuccess,
	},
	"jiji": {
		ID:        "jiji",
		SearchURL: "https://jiji.ng/search?query=",
		Label:     "Jiji",
		Extract:   ExtractJiji,
	},
}

// Lookup returns the registry entry for a site identifier.
func Lookup(id string) (Site, bool) {
	site, ok := registry[strings.ToLower(strings.TrimSpace(id))]
	return site, ok
}

// RatingPool returns the rating-capable site identifiers in priority order.
func RatingPool() []string {
	return append([]string(nil), ratingOrder...)
}

// NonRatingPool returns every non-rating site identifier in default order.
func NonRatingPool() []string {
	return append([]string(nil), nonRatingOrder...)
}

// BuildSearchURL composes the site's search URL for a product query.
func BuildSearchURL(site Site, query string) string {
	return site.SearchURL + strings.ReplaceAll(strings.TrimSpace(query), " ", "+")
}

// Label returns the human-facing site name, falling back to a capitalized id.
func Label(id string) string {
	if site, ok := Lookup(id); ok {
		return site.Label
	}
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}
