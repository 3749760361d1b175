package service

import (
	"errors"

	"coindash/internal/client/coingecko"
)

// RateLimitAdvisory is the fixed caller-facing message for upstream rate
// limits. The refresh is never retried internally; the caller decides.
const RateLimitAdvisory = "API rate limit exceeded. Please try again in 30-60 seconds."

var (
	// ErrNotFound means the requested coin, ranking, or global snapshot has
	// never been populated. Distinct from an empty successful result.
	ErrNotFound = errors.New("not found in cache")

	// ErrRateLimited means the upstream refused the fetch for quota.
	ErrRateLimited = errors.New("upstream rate limited")

	// ErrUnknownRanking means the ranking name is not one of the four the
	// pipeline maintains.
	ErrUnknownRanking = errors.New("unknown ranking")
)

// UpstreamError wraps any non-rate-limit upstream fetch or decode failure.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "upstream failure: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstreamErr(err error) error {
	var apiErr *coingecko.APIError
	if errors.As(err, &apiErr) && apiErr.IsRateLimit() {
		return ErrRateLimited
	}
	return &UpstreamError{Err: err}
}
