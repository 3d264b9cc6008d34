package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for memoizing discovery results
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]SiteResult, error)
	Set(ctx context.Context, key string, value []SiteResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// FetchClient retrieves a remote document through the proxy backend.
// It returns the document body, or an error once retries are exhausted;
// an empty-but-successful body is not an error at this boundary.
type FetchClient interface {
	Fetch(ctx context.Context, targetURL string) (string, error)
}

// CompletionClient streams an opaque sequence of text tokens for a prompt.
// The engine relays the tokens verbatim and never inspects them.
type CompletionClient interface {
	StreamCompletion(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, error)
}

// CatalogStore appends discovered product names to the persisted category index.
// Discovery never waits on or depends on this call's outcome.
type CatalogStore interface {
	AddProducts(ctx context.Context, records []ProductRecord) error
}
