package sites

import "github.com/acebot/backend/internal/domain"

// amazonSpec matches Amazon's search result grid. Amazon belongs to the
// rating pool, but its review widget is not scraped here, so records carry
// a 0.0 rating and keep insertion order.
var amazonSpec = cardSpec{
	card:  "div.s-result-item",
	name:  "span.a-text-normal",
	price: "span.a-price > span.a-offscreen",
	image: "img.s-image",
	link:  "a.a-link-normal.a-text-normal",
	base:  "https://www.amazon.com",
}

// ExtractAmazon extracts product records from an Amazon search-results page.
func ExtractAmazon(html, query string) []domain.ProductRecord {
	return amazonSpec.extract(html, query)
}
