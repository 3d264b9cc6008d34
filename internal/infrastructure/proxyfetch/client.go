package proxyfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/acebot/backend/internal/domain"
)

// Config holds the proxy backend parameters. Sites needing a different
// backend (or country/render settings) get their own Config; the client is
// configured per instance, not process-wide.
type Config struct {
	BaseURL     string
	APIKey      string
	CountryCode string
	Render      bool
	DeviceType  string
	Timeout     time.Duration
}

// Client fetches remote documents through a rendering proxy backend with
// bounded retries. Failures surface as errors carrying the last observed
// status, never as panics or raw transport errors.
type Client struct {
	httpClient  *http.Client
	cfg         Config
	policy      RetryPolicy
	rateLimiter *rate.Limiter
}

// NewClient creates a proxy fetch client with the given retry policy.
func NewClient(cfg Config, policy RetryPolicy) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 70 * time.Second // rendering proxies hold the connection while the page loads
	}
	if cfg.DeviceType == "" {
		cfg.DeviceType = "desktop"
	}
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy()
	}

	// Paid proxy plans meter by request; 1 rps with a small burst keeps a
	// three-site discovery pass inside the plan without stalling it.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		cfg:         cfg,
		policy:      policy,
		rateLimiter: limiter,
	}
}

// Fetch retrieves the document at targetURL through the proxy backend.
// It retries on transport failures and non-success statuses, and returns the
// body of the first successful response, empty or not.
func (c *Client) Fetch(ctx context.Context, targetURL string) (string, error) {
	reqURL := c.buildRequestURL(targetURL)

	var lastErr error
	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Str("url", targetURL).
				Msg("proxy fetch transport error")
			lastErr = err
		} else if c.policy.Retryable(status) {
			log.Warn().Int("status", status).Int("attempt", attempt).Str("url", targetURL).
				Msg("proxy fetch non-success status")
			lastErr = fmt.Errorf("%w: status %d: %s", domain.ErrFetchFailed, status, truncate(body, 200))
		} else {
			return body, nil
		}

		if attempt < c.policy.MaxAttempts {
			select {
			case <-time.After(c.policy.Backoff()):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	return "", fmt.Errorf("%w: %d attempts exhausted: %v", domain.ErrFetchFailed, c.policy.MaxAttempts, lastErr)
}

// buildRequestURL composes the proxy request for a target page.
func (c *Client) buildRequestURL(targetURL string) string {
	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("url", targetURL)
	params.Set("render", fmt.Sprintf("%t", c.cfg.Render))
	params.Set("autoparse", "false")
	if c.cfg.CountryCode != "" {
		params.Set("country_code", c.cfg.CountryCode)
	}
	params.Set("device_type", c.cfg.DeviceType)
	return c.cfg.BaseURL + "?" + params.Encode()
}

func (c *Client) doRequest(ctx context.Context, reqURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return string(body), resp.StatusCode, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
