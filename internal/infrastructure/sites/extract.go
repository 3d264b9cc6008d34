package sites

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/acebot/backend/internal/domain"
)

// Extractor turns an already-fetched search-results document into product records.
// Extractors are pure functions of their inputs and never return an error:
// a missing or unparsable document yields an empty slice, and any per-card
// parse problem drops that card only.
type Extractor func(html, query string) []domain.ProductRecord

const (
	// maxCards bounds how many result cards a single page is scanned for.
	maxCards = 30
	// maxRecords caps how many records one site contributes.
	maxRecords = 4
)

// exclusionTokens drop accessory listings that would otherwise pass the
// relevance filter (phone "case" matching a "phone" query, and so on).
var exclusionTokens = []string{
	"case", "cover", "protector", "charger", "cable", "screen guard", "pouch",
}

// cardSpec describes how one site lays out its result cards.
type cardSpec struct {
	card  string // selector for one product card
	name  string
	price string
	image string // empty means the card's first <img>
	link  string // selector for the anchor carrying the product URL
	// anyLink falls back to the card's first <a> when link matches nothing.
	anyLink bool
	// base prefixes site-relative hrefs; empty when the site emits absolute URLs.
	base string
	// rated enables star-rating parsing and rating-band ordering.
	rated bool
}

// extract runs the generic card pipeline for a site spec.
func (s cardSpec) extract(html, query string) []domain.ProductRecord {
	if strings.TrimSpace(html) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var products []domain.ProductRecord
	doc.Find(s.card).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= maxCards {
			return false
		}

		name := strings.TrimSpace(card.Find(s.name).First().Text())
		price := strings.TrimSpace(card.Find(s.price).First().Text())
		link := href(card, s.link)
		if link == "" && s.anyLink {
			link = href(card, "a")
		}
		image := imageSrc(card, s.image)

		if name == "" || price == "" || link == "" || image == "" {
			return true // incomplete card, skip
		}
		if !matchesQuery(name, query) || isAccessory(name) {
			return true
		}

		products = append(products, domain.ProductRecord{
			Name:   name,
			Price:  price,
			Rating: starRating(card),
			URL:    absoluteURL(s.base, link),
			Image:  absoluteURL(s.base, image),
		})
		return true
	})

	if s.rated {
		return rankByRating(products)
	}
	if len(products) > maxRecords {
		products = products[:maxRecords]
	}
	return products
}

// matchesQuery is the conjunctive relevance filter: every whitespace token of
// the lower-cased query must appear as a substring of the lower-cased name.
func matchesQuery(name, query string) bool {
	lowerName := strings.ToLower(name)
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(lowerName, token) {
			return false
		}
	}
	return true
}

// isAccessory reports whether the name contains any exclusion keyword.
func isAccessory(name string) bool {
	lower := strings.ToLower(name)
	for _, token := range exclusionTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// starRating reads a 0-5 rating from the proportional width of the card's
// stars indicator. Cards without one (or on sites without ratings) rate 0.0.
func starRating(card *goquery.Selection) float64 {
	style, ok := card.Find("div.stars div.in").First().Attr("style")
	if !ok || !strings.Contains(style, "width") {
		return 0.0
	}
	raw := style[strings.Index(style, "width:")+len("width:"):]
	if end := strings.IndexAny(raw, "%;"); end >= 0 {
		raw = raw[:end]
	}
	percent, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0.0
	}
	return math.Round(percent/100*5*10) / 10
}

// rankByRating orders a rated site's records: the 5.0 band first, then the
// [4.0, 5.0) band sorted descending. Lower-rated and unrated records are
// dropped, and the result is capped at maxRecords.
func rankByRating(products []domain.ProductRecord) []domain.ProductRecord {
	var fiveStar, fourStar []domain.ProductRecord
	for _, p := range products {
		switch {
		case p.Rating == 5.0:
			fiveStar = append(fiveStar, p)
		case p.Rating >= 4.0 && p.Rating < 5.0:
			fourStar = append(fourStar, p)
		}
	}
	sort.SliceStable(fourStar, func(i, j int) bool {
		return fourStar[i].Rating > fourStar[j].Rating
	})

	ranked := append(fiveStar, fourStar...)
	if len(ranked) > maxRecords {
		ranked = ranked[:maxRecords]
	}
	return ranked
}

// href returns the href attribute of the first element matching sel.
func href(card *goquery.Selection, sel string) string {
	link, _ := card.Find(sel).First().Attr("href")
	return strings.TrimSpace(link)
}

// imageSrc prefers the lazy-load data-src attribute over src.
func imageSrc(card *goquery.Selection, sel string) string {
	if sel == "" {
		sel = "img"
	}
	img := card.Find(sel).First()
	if src, ok := img.Attr("data-src"); ok && strings.TrimSpace(src) != "" {
		return strings.TrimSpace(src)
	}
	src, _ := img.Attr("src")
	return strings.TrimSpace(src)
}

// absoluteURL resolves a site-relative href against the site base.
func absoluteURL(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	if base == "" {
		return ref
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
}
