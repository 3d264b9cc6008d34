package sites

import "github.com/acebot/backend/internal/domain"

// Kara's Magento catalog links products from the title anchor itself.
var karaSpec = cardSpec{
	card:  "li.item",
	name:  "h2.product-name a",
	price: "span.price",
	link:  "h2.product-name a",
	base:  "https://www.kara.com.ng",
}

// ExtractKara extracts product records from a Kara search-results page.
func ExtractKara(html, query string) []domain.ProductRecord {
	return karaSpec.extract(html, query)
}
