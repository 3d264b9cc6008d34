package sites

import "github.com/acebot/backend/internal/domain"

// Konga renders hashed CSS module class names; these are the stable ones
// observed on its search results.
var kongaSpec = cardSpec{
	card:  "div.af885_2o6yN",
	name:  "a.cebca_1iPzH span",
	price: "span.f89e4_2D88J",
	link:  "a.cebca_1iPzH",
	base:  "https://www.konga.com",
}

// ExtractKonga extracts product records from a Konga search-results page.
func ExtractKonga(html, query string) []domain.ProductRecord {
	return kongaSpec.extract(html, query)
}
