package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/acebot/backend/internal/domain"
)

// catalogKeywords classifies a product name into the catalog taxonomy.
// Evaluated in order, first hit wins, "general" is the fallback.
var catalogKeywords = []struct {
	category string
	keywords []string
}{
	{"phones", []string{"phone", "samsung", "iphone", "infinix", "xiaomi", "pixel", "tecno"}},
	{"laptops", []string{"laptop", "macbook", "thinkpad", "notebook", "zenbook", "aspire"}},
	{"fashion", []string{"shoe", "shirt", "bag", "sneaker", "suit", "t-shirt", "dress", "blazer"}},
	{"electronics", []string{"tv", "television", "headphone", "speaker", "camera", "earbud", "powerbank", "drone"}},
	{"home_appliances", []string{"fan", "microwave", "fridge", "air conditioner", "kettle", "freezer", "washing machine"}},
	{"beauty", []string{"cream", "lotion", "serum", "lipstick", "mascara", "foundation", "balm"}},
	{"gaming", []string{"playstation", "ps5", "xbox", "controller", "headset", "gaming"}},
	{"groceries", []string{"milk", "milo", "tea", "indomie", "spaghetti", "cereal", "oil", "beverage"}},
	{"baby_products", []string{"baby", "diaper", "infant", "stroller", "bottle", "lotion", "wipes"}},
	{"sports", []string{"shoe", "sneaker", "jersey", "dumbbell", "tennis", "swim", "watch"}},
	{"automotive", []string{"tyre", "battery", "oil", "filter", "engine", "wiper", "car"}},
}

// FileStore persists the product-name catalog as a single JSON document
// mapping category to product names. Names are deduplicated
// case-insensitively within their category.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

// NewFileStore creates a catalog store backed by the given JSON file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// AddProducts classifies each record's name and appends it to the catalog.
// Callers invoke this fire-and-forget after a discovery; failures are logged,
// never propagated into the discovery result.
func (s *FileStore) AddProducts(ctx context.Context, records []domain.ProductRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	categories, err := s.load()
	if err != nil {
		return err
	}

	updated := false
	for _, record := range records {
		name := strings.TrimSpace(record.Name)
		if name == "" {
			continue
		}

		category := DetectCategory(name)
		if !containsFold(categories[category], name) {
			categories[category] = append(categories[category], name)
			updated = true
			log.Debug().Str("name", name).Str("category", category).Msg("catalog entry added")
		}
	}

	if !updated {
		return nil
	}
	return s.save(categories)
}

// DetectCategory returns the catalog taxonomy bucket for a product name.
func DetectCategory(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range catalogKeywords {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return "general"
}

func (s *FileStore) load() (map[string][]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string][]string), nil
		}
		return nil, err
	}

	categories := make(map[string][]string)
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *FileStore) save(categories map[string][]string) error {
	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

func containsFold(names []string, name string) bool {
	for _, existing := range names {
		if strings.EqualFold(existing, name) {
			return true
		}
	}
	return false
}
