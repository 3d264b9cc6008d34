package proxyfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acebot/backend/internal/domain"
)

func parseQuery(raw string) (url.Values, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return u.Query(), nil
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://proxy.example.com/", APIKey: "k"}, RetryPolicy{})

	assert.NotNil(t, client)
	assert.Equal(t, 70*time.Second, client.httpClient.Timeout)
	assert.Equal(t, "desktop", client.cfg.DeviceType)
	assert.Equal(t, 3, client.policy.MaxAttempts)
	assert.NotNil(t, client.rateLimiter)
}

func TestBuildRequestURL(t *testing.T) {
	client := NewClient(Config{
		BaseURL:     "https://proxy.example.com/",
		APIKey:      "test-key",
		CountryCode: "ng",
		Render:      true,
	}, DefaultRetryPolicy())

	reqURL := client.buildRequestURL("https://www.jumia.com.ng/catalog/?q=phone")

	parsed, err := parseQuery(reqURL)
	require.NoError(t, err)
	assert.Equal(t, "test-key", parsed.Get("api_key"))
	assert.Equal(t, "https://www.jumia.com.ng/catalog/?q=phone", parsed.Get("url"))
	assert.Equal(t, "true", parsed.Get("render"))
	assert.Equal(t, "false", parsed.Get("autoparse"))
	assert.Equal(t, "ng", parsed.Get("country_code"))
	assert.Equal(t, "desktop", parsed.Get("device_type"))
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "https://www.jumia.com.ng/catalog/?q=phone", r.URL.Query().Get("url"))

		w.Write([]byte("<html>results</html>"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"}, DefaultRetryPolicy())

	body, err := client.Fetch(context.Background(), "https://www.jumia.com.ng/catalog/?q=phone")

	require.NoError(t, err)
	assert.Equal(t, "<html>results</html>", body)
}

func TestFetch_EmptyBodyIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"}, DefaultRetryPolicy())

	body, err := client.Fetch(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestFetch_RetriesNonSuccessStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"},
		RetryPolicy{MaxAttempts: 2, MaxDelay: time.Second})

	body, err := client.Fetch(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Equal(t, "recovered", body)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetch_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"},
		RetryPolicy{MaxAttempts: 1, MaxDelay: time.Second})

	_, err := client.Fetch(context.Background(), "https://example.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFetchFailed))
	assert.Contains(t, err.Error(), "502")
}

func TestFetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"},
		RetryPolicy{MaxAttempts: 3, MaxDelay: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, "https://example.com")
	require.Error(t, err)
}

func TestRetryPolicy_Retryable(t *testing.T) {
	policy := DefaultRetryPolicy()

	assert.False(t, policy.Retryable(http.StatusOK))
	assert.True(t, policy.Retryable(http.StatusInternalServerError))
	assert.True(t, policy.Retryable(http.StatusForbidden))
	assert.True(t, policy.Retryable(http.StatusTooManyRequests))
}

func TestRetryPolicy_BackoffBounds(t *testing.T) {
	policy := DefaultRetryPolicy()

	for i := 0; i < 50; i++ {
		delay := policy.Backoff()
		assert.GreaterOrEqual(t, delay, 1*time.Second)
		assert.LessOrEqual(t, delay, 5*time.Second)
	}
}
