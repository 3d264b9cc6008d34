package sites

import "github.com/acebot/backend/internal/domain"

var topSuccessSpec = cardSpec{
	card:  "div.product-small",
	name:  "p.name.product-title",
	price: "span.woocommerce-Price-amount",
	link:  "a.woocommerce-LoopProduct-link",
	base:  "https://topsuccess.ng",
}

// ExtractTopSuccess extracts product records from a TopSuccess search-results page.
func ExtractTopSuccess(html, query string) []domain.ProductRecord {
	return topSuccessSpec.extract(html, query)
}
