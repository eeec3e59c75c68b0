package doccache

import (
	"context"
	"sort"
	"sync"
	"time"
)

const defaultPageCacheBytes = 512 << 20

// pageCache is a byte-bounded in-memory cache of fetched HTML pages.
// When it fills past 90% of its budget, entries are evicted lowest
// score first until it is back under 70%, where score is access count
// decayed by seconds since last access. A page hammered a minute ago
// outlives one read once a week ago.
type pageCache struct {
	mu       sync.Mutex
	maxBytes int64
	size     int64
	entries  map[string]*pageEntry
}

type pageEntry struct {
	body       string
	hits       int64
	lastAccess time.Time
}

func newPageCache(maxBytes int64) *pageCache {
	return &pageCache{
		maxBytes: maxBytes,
		entries:  make(map[string]*pageEntry),
	}
}

func (c *pageCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	e.hits++
	e.lastAccess = time.Now()
	return e.body, true
}

func (c *pageCache) put(key, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.entries[key]; ok {
		c.size -= int64(len(old.body))
	}
	c.entries[key] = &pageEntry{body: body, hits: 1, lastAccess: time.Now()}
	c.size += int64(len(body))
	if c.size > c.maxBytes*9/10 {
		c.evictLocked()
	}
}

func (c *pageCache) evictLocked() {
	type scored struct {
		key   string
		score float64
	}
	now := time.Now()
	ranked := make([]scored, 0, len(c.entries))
	for key, e := range c.entries {
		age := now.Sub(e.lastAccess).Seconds() + 1
		ranked = append(ranked, scored{key: key, score: float64(e.hits) / age})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	target := c.maxBytes * 7 / 10
	for _, r := range ranked {
		if c.size <= target {
			break
		}
		c.size -= int64(len(c.entries[r.key].body))
		delete(c.entries, r.key)
	}
}

func (c *pageCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// FetchPage returns the HTML body of a page, serving repeat requests from
// the in-memory page cache and deduplicating concurrent fetches of the
// same URL. Pages are not written to the document cache; they are cheap
// to re-fetch and go stale quickly.
func (s *Service) FetchPage(ctx context.Context, rawURL string) (string, error) {
	if body, ok := s.pages.get(rawURL); ok {
		s.metrics.hit()
		return body, nil
	}
	s.metrics.miss()

	ch := s.pageFlights.DoChan(rawURL, func() (any, error) {
		if s.limiter != nil {
			if u, err := urlHost(rawURL); err == nil {
				if err := s.limiter.Wait(ctx, u); err != nil {
					return nil, err
				}
			}
		}
		data, _, err := s.fetcher.Fetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		s.metrics.fetch()
		body := string(data)
		s.pages.put(rawURL, body)
		return body, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.metrics.dedupWait()
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
