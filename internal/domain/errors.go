package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownSite is returned when an explicit site is not a registry key
	ErrUnknownSite = errors.New("unsupported site")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrFetchFailed is returned when the proxy fetch exhausts its retries
	ErrFetchFailed = errors.New("proxy fetch failed")

	// ErrCompletionFailure is returned when the completion collaborator request fails
	ErrCompletionFailure = errors.New("completion request failed")
)
