package legisdoc

import "context"

// Fetcher retrieves raw bytes from URLs. Implementations handle timeouts,
// retries, and connection reuse; the context controls cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// DomainLimiter throttles outbound requests per target domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, domain string) error
}
