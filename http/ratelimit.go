package http

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/legisdoc"
	"golang.org/x/time/rate"
)

var _ legisdoc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-host rate limiting using token buckets with a
// burst of 1, so concurrent bill resolutions can't hammer the legislature
// site even when they hit different pages. Hosts are normalized before
// lookup: bill pages link to the site as both "malegislature.gov" and
// "www.malegislature.gov", and both must drain the same bucket.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter with the given requests per
// second limit per host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := normalizeHost(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// normalizeHost folds case, an explicit port, and a www prefix so aliases
// of the same site share one bucket.
func normalizeHost(domain string) string {
	host := strings.ToLower(strings.TrimSpace(domain))
	if i := strings.LastIndex(host, ":"); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return strings.TrimPrefix(host, "www.")
}
