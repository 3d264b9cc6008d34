package proxyfetch

import (
	"math/rand"
	"net/http"
	"time"
)

// RetryPolicy bounds fetch attempts and shapes the sleep between them.
// The proxy backends fail transiently under load, so the delay is a uniform
// random draw between one second and MaxDelay rather than an exponential ramp.
type RetryPolicy struct {
	MaxAttempts int
	MaxDelay    time.Duration
}

// DefaultRetryPolicy mirrors the proxy plan's guidance: three attempts with
// up to five seconds between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		MaxDelay:    5 * time.Second,
	}
}

// Retryable reports whether a response status warrants another attempt.
// Anything other than a structurally successful response is retried;
// emptiness of a 200 body is an extractor concern, not a fetch concern.
func (p RetryPolicy) Retryable(statusCode int) bool {
	return statusCode != http.StatusOK
}

// Backoff returns the randomized sleep before the next attempt.
func (p RetryPolicy) Backoff() time.Duration {
	maxSeconds := int(p.MaxDelay / time.Second)
	if maxSeconds <= 1 {
		return time.Second
	}
	return time.Duration(1+rand.Intn(maxSeconds)) * time.Second
}
