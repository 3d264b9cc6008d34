package sites

import "github.com/acebot/backend/internal/domain"

var ajeboMarketSpec = cardSpec{
	card:  "li.product",
	name:  "h2.woocommerce-loop-product__title",
	price: "span.woocommerce-Price-amount",
	link:  "a.woocommerce-LoopProduct-link",
	base:  "https://ajebomarket.com",
}

// ExtractAjeboMarket extracts product records from an AjeboMarket search-results page.
func ExtractAjeboMarket(html, query string) []domain.ProductRecord {
	return ajeboMarketSpec.extract(html, query)
}
