package usecase

import (
	"strings"

	"github.com/acebot/backend/internal/infrastructure/sites"
)

// categoryRule pairs a product taxonomy bucket with the keywords that detect
// it. Rules are evaluated in order; the first hit wins, "general" is the
// fallback. Order matters: "phone" must not be swallowed by broader buckets.
type categoryRule struct {
	category string
	keywords []string
}

var categoryRules = []categoryRule{
	{"fashion", []string{"shirt", "jeans", "trouser", "dress", "shoe", "wear", "jacket", "cap", "bag", "t-shirt"}},
	{"electronics", []string{"tv", "laptop", "monitor", "camera", "speaker", "bluetooth", "dvd", "decoder"}},
	{"phones & tablets", []string{"phone", "iphone", "android", "tablet", "ipad", "smartphone"}},
	{"appliances", []string{"fridge", "refrigerator", "microwave", "freezer", "ac", "air conditioner", "fan", "cooker", "blender", "washing machine"}},
	{"health & beauty", []string{"cream", "lotion", "soap", "shampoo", "toothpaste", "perfume", "skincare"}},
	{"home & office", []string{"sofa", "desk", "chair", "bed", "lamp", "cabinet", "table", "mattress"}},
	{"supermarket", []string{"milk", "rice", "noodles", "biscuit", "sugar", "beverage", "tea", "juice"}},
	{"computing", []string{"keyboard", "mouse", "cpu", "ram", "ssd", "hard disk", "computer", "pc", "macbook"}},
	{"baby products", []string{"diaper", "baby", "stroller", "wipes", "milk", "feeder"}},
	{"gaming", []string{"console", "ps5", "xbox", "gamepad", "controller", "joystick"}},
	{"musical instruments", []string{"guitar", "keyboard", "drum", "piano", "microphone", "violin"}},
}

// sitePriority maps each category to its ordered list of non-rating sites.
var sitePriority = map[string][]string{
	"fashion":             {"ajebomarket", "konga", "jiji"},
	"electronics":         {"slot", "kara", "topsuccess", "jiji"},
	"phones & tablets":    {"slot", "kara", "jiji"},
	"appliances":          {"kara", "topsuccess", "jiji"},
	"health & beauty":     {"konga", "jiji"},
	"home & office":       {"kara", "konga", "topsuccess", "jiji"},
	"supermarket":         {"konga", "jiji"},
	"computing":           {"slot", "kara", "jiji"},
	"baby products":       {"konga", "jiji"},
	"gaming":              {"kara", "jiji"},
	"musical instruments": {"kara", "jiji"},
	"general":             {"konga", "slot", "kara", "topsuccess", "ajebomarket", "jiji"},
}

// DetermineCategory classifies a product query into a taxonomy bucket.
func DetermineCategory(query string) string {
	q := strings.ToLower(query)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(q, keyword) {
				return rule.category
			}
		}
	}
	return "general"
}

// ratingRoute returns the rating-capable pool in priority order.
func ratingRoute() []string {
	return sites.RatingPool()
}

// categoryRoute returns the non-rating priority list for a query's category.
func categoryRoute(query string) []string {
	if priority, ok := sitePriority[DetermineCategory(query)]; ok {
		return append([]string(nil), priority...)
	}
	return append([]string(nil), sitePriority["general"]...)
}
