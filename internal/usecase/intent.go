package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	productPattern = regexp.MustCompile(`(?i)(?:i want to buy|i want|buy|purchase|order|find|get)\s+(?:an|a|the)?\s*([a-zA-Z0-9\s\-]+)`)
	leadingFillers = regexp.MustCompile(`(?i)^(?:(?:me|us|an|a|the)\s+)+`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// brandAliases maps brand keywords to their canonical names. Scanned in
// order, first hit wins; "iphone" is an alias for Apple, not a brand itself.
var brandAliases = []struct {
	token string
	brand string
}{
	{"samsung", "Samsung"},
	{"iphone", "Apple"},
	{"tecno", "Tecno"},
	{"infinix", "Infinix"},
	{"xiaomi", "Xiaomi"},
	{"lg", "LG"},
	{"sony", "Sony"},
	{"hp", "HP"},
	{"dell", "Dell"},
	{"apple", "Apple"},
	{"nokia", "Nokia"},
}

// nonElectronicsTerms detect apparel/footwear products. A remembered
// electronics brand is cleared when the newly stated product matches one of
// these and does not itself mention the brand.
var nonElectronicsTerms = []string{
	"shirt", "t-shirt", "shoe", "bag", "jacket", "watch", "cap", "jeans", "belt", "sneaker",
}

// phraseStopWords are dropped by the noun-phrase fallback when no shopping
// verb introduces the product. Site names and fetch verbs are included so
// that trigger utterances ("fetch it from jumia") never register as products.
var phraseStopWords = map[string]bool{
	"i": true, "me": true, "my": true, "we": true, "you": true, "your": true,
	"a": true, "an": true, "the": true, "this": true, "that": true, "it": true,
	"please": true, "can": true, "could": true, "would": true, "like": true,
	"want": true, "need": true, "to": true, "for": true, "of": true, "from": true,
	"is": true, "are": true, "do": true, "does": true, "have": true,
	"hello": true, "hi": true, "hey": true, "ok": true, "okay": true, "yes": true,
	"some": true, "any": true, "about": true, "what": true, "how": true,
	"fetch": true, "search": true,
	"jumia": true, "amazon": true, "konga": true, "slot": true, "kara": true,
	"ajebomarket": true, "ajebo": true, "topsuccess": true, "jiji": true,
}

// ExtractProduct pulls a product phrase out of an utterance. It first looks
// for a shopping verb followed by a noun phrase, then falls back to a
// noun-phrase heuristic over the whole utterance. Returns "" when nothing
// product-like is found.
func ExtractProduct(utterance string) string {
	if m := productPattern.FindStringSubmatch(utterance); m != nil {
		product := strings.TrimSpace(m[1])
		product = leadingFillers.ReplaceAllString(product, "")
		product = repeatedSpaces.ReplaceAllString(product, " ")
		return strings.TrimSpace(product)
	}
	return nounPhrase(utterance)
}

// StripBrandTokens removes known brand words from a product phrase so the
// remembered product names the thing, not the maker ("Samsung phone" ->
// "phone"). "iphone" is kept: it names a product line, not just a brand.
// The original phrase is returned when stripping would leave nothing.
func StripBrandTokens(product string) string {
	var kept []string
	for _, word := range strings.Fields(product) {
		lower := strings.ToLower(word)
		isBrand := false
		for _, alias := range brandAliases {
			if lower == alias.token && alias.token != "iphone" {
				isBrand = true
				break
			}
		}
		if !isBrand {
			kept = append(kept, word)
		}
	}
	if len(kept) == 0 {
		return product
	}
	return strings.Join(kept, " ")
}

// nounPhrase strips punctuation and function words and returns what remains,
// lower-cased. A crude stand-in for a real noun-phrase chunker, good enough
// for short shopping utterances.
func nounPhrase(utterance string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == ' ' || r == '-' {
			return r
		}
		return ' '
	}, strings.ToLower(utterance))

	var kept []string
	for _, word := range strings.Fields(cleaned) {
		if !phraseStopWords[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// ExtractBrand finds the first known brand keyword in the utterance,
// case-insensitive substring match, and returns its canonical name.
func ExtractBrand(utterance string) string {
	lower := strings.ToLower(utterance)
	for _, alias := range brandAliases {
		if strings.Contains(lower, alias.token) {
			return alias.brand
		}
	}
	return ""
}

// mentionsNonElectronics reports whether a product phrase matches the
// apparel/footwear keyword set.
func mentionsNonElectronics(product string) bool {
	lower := strings.ToLower(product)
	for _, term := range nonElectronicsTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
