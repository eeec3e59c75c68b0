// Package doccache provides content-addressed caching of downloaded
// documents and their extracted text, with single-flight deduplication of
// concurrent downloads and staleness-based eviction.
//
// Two cooperating caches share the content-hash keyspace: the raw document
// cache (blob per hash, metadata per URL in the state store) and the
// extracted-text cache (one text file per hash, so two URLs with identical
// bytes reuse one extraction).
package doccache

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/legisdoc"
	"golang.org/x/sync/singleflight"
)

// Service owns the document and text caches. Construct it once and share
// it; it owns all of its synchronization (no package-level state).
type Service struct {
	store      legisdoc.StateStore
	fetcher    legisdoc.Fetcher
	limiter    legisdoc.DomainLimiter
	extractors map[legisdoc.DocumentFormat]legisdoc.TextExtractor
	logger     *slog.Logger

	cacheDir      string
	textDir       string
	validateAfter time.Duration
	maxAge        time.Duration

	// waitTimeout bounds how long a deduplicated caller waits on another
	// caller's in-flight extraction (fetch timeout + a fixed grace).
	waitTimeout time.Duration

	flights     singleflight.Group
	pageFlights singleflight.Group
	pages       *pageCache
	metrics     metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLimiter sets a per-domain rate limiter applied before each fetch.
func WithLimiter(l legisdoc.DomainLimiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithExtractor registers the text extractor for a document format.
func WithExtractor(format legisdoc.DocumentFormat, e legisdoc.TextExtractor) Option {
	return func(s *Service) { s.extractors[format] = e }
}

// WithDirs sets the blob and extracted-text directories.
func WithDirs(cacheDir, textDir string) Option {
	return func(s *Service) {
		s.cacheDir = cacheDir
		s.textDir = textDir
	}
}

// WithValidateAfter sets how long a cache entry is served without
// re-fetching. Defaults to 7 days.
func WithValidateAfter(d time.Duration) Option {
	return func(s *Service) { s.validateAfter = d }
}

// WithMaxAge sets the eviction age for unused entries. Defaults to 180 days.
func WithMaxAge(d time.Duration) Option {
	return func(s *Service) { s.maxAge = d }
}

// WithWaitTimeout sets the single-flight waiter bound. Defaults to
// DefaultConfig's FetchTimeout + SingleFlightGrace.
func WithWaitTimeout(d time.Duration) Option {
	return func(s *Service) { s.waitTimeout = d }
}

// WithLogger sets the logger for swallowed cache failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithPageCacheBytes bounds the in-memory HTML page cache. Defaults to 512 MB.
func WithPageCacheBytes(n int64) Option {
	return func(s *Service) { s.pages = newPageCache(n) }
}

// NewService creates a Service backed by the given state store and fetcher.
func NewService(store legisdoc.StateStore, fetcher legisdoc.Fetcher, opts ...Option) *Service {
	cfg := legisdoc.DefaultConfig()
	s := &Service{
		store:         store,
		fetcher:       fetcher,
		extractors:    make(map[legisdoc.DocumentFormat]legisdoc.TextExtractor),
		logger:        slog.Default(),
		cacheDir:      cfg.CacheDir,
		textDir:       cfg.TextDir,
		validateAfter: time.Duration(cfg.ValidateAfterDays) * 24 * time.Hour,
		maxAge:        time.Duration(cfg.MaxAgeDays) * 24 * time.Hour,
		waitTimeout:   cfg.FetchTimeout + cfg.SingleFlightGrace,
		pages:         newPageCache(defaultPageCacheBytes),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchDocument returns the raw bytes and format for a source URL, serving
// from the content-addressed cache when the entry is fresh and the blob
// still exists, and re-fetching otherwise. billID, when non-empty, is
// recorded as an owner of the cache entry.
func (s *Service) FetchDocument(ctx context.Context, rawURL, billID string) ([]byte, legisdoc.DocumentFormat, error) {
	if entry, ok := s.store.CachedDocument(rawURL); ok && s.fresh(entry) {
		if data, err := os.ReadFile(entry.BlobPath); err == nil {
			s.metrics.hit()
			s.store.TouchCachedDocument(rawURL, time.Now().UTC())
			return data, legisdoc.FormatFromURL(rawURL, entry.ContentType), nil
		}
		// Blob vanished out from under the entry; treat as a miss.
	}
	s.metrics.miss()

	if s.limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := s.limiter.Wait(ctx, u.Host); err != nil {
				return nil, "", err
			}
		}
	}

	data, contentType, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, "", err
	}
	s.metrics.fetch()

	format := legisdoc.FormatFromURL(rawURL, contentType)
	s.cacheDocument(rawURL, billID, data, contentType, format)
	return data, format, nil
}

// cacheDocument stores the blob under its content hash and records the URL
// entry. Cache write failures are logged and swallowed; the caller already
// has the bytes.
func (s *Service) cacheDocument(rawURL, billID string, data []byte, contentType string, format legisdoc.DocumentFormat) {
	hash := hashContent(data)
	blobPath := filepath.Join(s.cacheDir, hash+"."+format.Ext())

	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		s.logger.Warn("document cache unavailable", "dir", s.cacheDir, "err", err)
		return
	}
	if _, err := os.Stat(blobPath); os.IsNotExist(err) {
		if err := os.WriteFile(blobPath, data, 0644); err != nil {
			s.logger.Warn("failed to cache document", "url", rawURL, "err", err)
			return
		}
	}

	now := time.Now().UTC()
	entry := legisdoc.DocumentCacheEntry{
		ContentHash:     hash,
		Size:            int64(len(data)),
		ContentType:     contentType,
		BlobPath:        blobPath,
		FirstDownloaded: now,
		LastAccessed:    now,
		LastValidated:   now,
		AccessCount:     1,
	}
	if old, ok := s.store.CachedDocument(rawURL); ok {
		entry.FirstDownloaded = old.FirstDownloaded
		entry.AccessCount = old.AccessCount + 1
		entry.Bills = old.Bills
	}
	if billID != "" && !contains(entry.Bills, billID) {
		entry.Bills = append(entry.Bills, billID)
	}
	s.store.PutCachedDocument(rawURL, entry)
}

// ExtractText returns the extracted text for the document at the URL.
//
// At most one download+extraction per URL is in flight process-wide: a
// caller that finds one in progress waits on it (bounded by the wait
// timeout) and shares its result or failure. A waiter that times out
// reports failure without starting a second attempt; the original flight
// may still complete and populate the caches for future callers.
func (s *Service) ExtractText(ctx context.Context, rawURL, billID string) (string, error) {
	if entry, ok := s.store.CachedDocument(rawURL); ok && s.fresh(entry) {
		if text, err := s.cachedText(entry.ContentHash); err == nil {
			s.metrics.hit()
			s.store.TouchCachedDocument(rawURL, time.Now().UTC())
			return text, nil
		}
	}

	ch := s.flights.DoChan(rawURL, func() (any, error) {
		return s.fetchAndExtract(ctx, rawURL, billID)
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
	case <-time.After(s.waitTimeout):
		return "", legisdoc.Errorf(legisdoc.EUNAVAILABLE, "timed out waiting for extraction of %s", rawURL)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// fetchAndExtract is the single-flight body: download, extract, cache.
func (s *Service) fetchAndExtract(ctx context.Context, rawURL, billID string) (string, error) {
	data, format, err := s.FetchDocument(ctx, rawURL, billID)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}

	extractor, ok := s.extractors[format]
	if !ok {
		return "", legisdoc.Errorf(legisdoc.EINVALID, "no text extractor for format %q", format)
	}
	text, err := extractor.ExtractText(data)
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", rawURL, err)
	}
	s.metrics.extraction()

	if entry, ok := s.store.CachedDocument(rawURL); ok && text != "" {
		if err := s.writeText(entry.ContentHash, text); err != nil {
			s.logger.Warn("failed to cache extracted text", "url", rawURL, "err", err)
		}
	}
	return text, nil
}

// cachedText reads the extracted-text cache for a content hash.
func (s *Service) cachedText(hash string) (string, error) {
	if hash == "" {
		return "", os.ErrNotExist
	}
	data, err := os.ReadFile(filepath.Join(s.textDir, hash+".txt"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Service) writeText(hash, text string) error {
	if err := os.MkdirAll(s.textDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.textDir, hash+".txt"), []byte(text), 0644)
}

// fresh reports whether a cache entry can be served without re-fetching.
func (s *Service) fresh(entry legisdoc.DocumentCacheEntry) bool {
	return time.Since(entry.LastValidated) <= s.validateAfter
}

// Metrics returns a snapshot of the service counters.
func (s *Service) Metrics() Metrics {
	return s.metrics.snapshot()
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// urlHost extracts the host component used for per-domain rate limiting.
func urlHost(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Host, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
