package sites

import "github.com/acebot/backend/internal/domain"

// jumiaSpec matches Jumia's catalog grid. Jumia exposes a visual star rating
// per card, so its results are ordered by rating band.
var jumiaSpec = cardSpec{
	card:    "article.prd",
	name:    "h3.name",
	price:   "div.prc",
	link:    "a.core",
	anyLink: true,
	base:    "https://www.jumia.com.ng",
	rated:   true,
}

// ExtractJumia extracts product records from a Jumia search-results page.
func ExtractJumia(html, query string) []domain.ProductRecord {
	return jumiaSpec.extract(html, query)
}
