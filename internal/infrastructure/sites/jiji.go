package sites

import "github.com/acebot/backend/internal/domain"

var jijiSpec = cardSpec{
	card:  "div.b-list-advert__item",
	name:  "div.b-list-advert__title a",
	price: "div.b-list-advert__price",
	link:  "div.b-list-advert__title a",
	base:  "https://jiji.ng",
}

// ExtractJiji extracts product records from a Jiji listings page.
func ExtractJiji(html, query string) []domain.ProductRecord {
	return jijiSpec.extract(html, query)
}
