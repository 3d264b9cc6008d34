package sites

import "github.com/acebot/backend/internal/domain"

// Slot runs a stock WooCommerce storefront.
var slotSpec = cardSpec{
	card:  "ul.products li",
	name:  "h2.woocommerce-loop-product__title",
	price: "span.woocommerce-Price-amount",
	link:  "a.woocommerce-LoopProduct-link",
	base:  "https://slot.ng",
}

// ExtractSlot extracts product records from a Slot search-results page.
func ExtractSlot(html, query string) []domain.ProductRecord {
	return slotSpec.extract(html, query)
}
