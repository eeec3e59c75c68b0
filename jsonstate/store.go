// Package jsonstate provides the file-backed JSON implementation of
// legisdoc.StateStore. The entire state is one JSON document organized by
// top-level namespaces (bill_parsers, committee_parsers, document_cache,
// committee_contacts), written compactly to minimize I/O at scale.
package jsonstate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/legisdoc"
)

// Compile-time interface verification.
var _ legisdoc.StateStore = (*Store)(nil)

// Mode selects the persistence behavior.
type Mode int

// Persistence modes. Eager writes through on every mutation; Buffered marks
// the store dirty and persists on Flush, so a long multi-bill run can
// checkpoint at committee boundaries instead of after every field write.
const (
	Eager Mode = iota
	Buffered
)

// Store implements legisdoc.StateStore on a single JSON file.
//
// One mutex guards all read-modify-write sequences. The lock is never held
// across a network call; disk writes happen under it, which is acceptable
// at the write rates involved.
type Store struct {
	path   string
	mode   Mode
	logger *slog.Logger

	mu    sync.RWMutex
	dirty bool
	data  document
}

// Option configures a Store.
type Option func(*Store)

// WithMode sets the persistence mode. Defaults to Eager.
func WithMode(m Mode) Option {
	return func(s *Store) { s.mode = m }
}

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store for the given path. Call Open before use.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the state file. A missing file yields an empty store; a file
// that exists but cannot be parsed is a fatal startup error, since silently
// discarding state would re-prompt for every confirmed binding.
func (s *Store) Open() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.data = newDocument()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read state file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse state file %q: %w", s.path, err)
	}
	doc.init()
	s.data = doc
	return nil
}

// Binding returns the strategy id bound to (bill, kind).
func (s *Store) Binding(billID string, kind legisdoc.DocumentKind) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data.BillParsers[billID][string(kind)]
	if !ok || e.Strategy == "" {
		return "", false
	}
	return e.Strategy, true
}

// IsConfirmed reports whether the binding was explicitly accepted.
func (s *Store) IsConfirmed(billID string, kind legisdoc.DocumentKind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data.BillParsers[billID][string(kind)]
	return ok && e.Confirmed
}

// Result returns the stored resolution outcome.
func (s *Store) Result(billID string, kind legisdoc.DocumentKind) (*legisdoc.DocumentResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data.BillParsers[billID][string(kind)]
	if !ok || e.Result == nil {
		return nil, false
	}
	result := *e.Result
	return &result, true
}

// SetResult binds a strategy and result to (bill, kind).
func (s *Store) SetResult(billID string, kind legisdoc.DocumentKind, strategyID string, result legisdoc.DocumentResult, confirmed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := s.data.billSlot(billID)
	slot[string(kind)] = &stateEntry{
		Strategy:  strategyID,
		Confirmed: confirmed,
		Result:    &result,
		UpdatedAt: time.Now().UTC(),
	}
	s.persistLocked()
}

// SetConfirmed flips the confirmation bit on an existing entry.
func (s *Store) SetConfirmed(billID string, kind legisdoc.DocumentKind, confirmed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data.BillParsers[billID][string(kind)]
	if !ok {
		return
	}
	e.Confirmed = confirmed
	e.UpdatedAt = time.Now().UTC()
	if e.Result != nil && confirmed {
		e.Result.NeedsReview = false
	}
	s.persistLocked()
}

// RecordSuccess updates committee learning statistics. The streak extends
// only when strategyID was also the immediately previous success for this
// committee/kind; otherwise every other strategy's streak resets to zero
// and this one restarts at one.
func (s *Store) RecordSuccess(committeeID string, kind legisdoc.DocumentKind, strategyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := s.data.committeeSlot(committeeID, string(kind))
	stats, ok := slot.Strategies[strategyID]
	if !ok {
		stats = &strategyStats{}
		slot.Strategies[strategyID] = stats
	}
	stats.Count++
	if slot.LastSuccess == strategyID {
		stats.Streak++
	} else {
		for id, other := range slot.Strategies {
			if id != strategyID {
				other.Streak = 0
			}
		}
		stats.Streak = 1
		slot.LastSuccess = strategyID
	}
	stats.LastUsed = time.Now().UTC()
	s.persistLocked()
}

// RankedStrategies returns strategy ids ordered by (streak>=2 desc,
// count desc). Ties keep lexicographic order for determinism.
func (s *Store) RankedStrategies(committeeID string, kind legisdoc.DocumentKind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.data.CommitteeParsers[committeeID][string(kind)]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(slot.Strategies))
	for id := range slot.Strategies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := slot.Strategies[ids[i]], slot.Strategies[ids[j]]
		aActive, bActive := a.Streak >= 2, b.Streak >= 2
		if aActive != bActive {
			return aActive
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return ids[i] < ids[j]
	})
	return ids
}

// StrategyStats returns the stats for one strategy.
func (s *Store) StrategyStats(committeeID string, kind legisdoc.DocumentKind, strategyID string) (legisdoc.CommitteeStrategyStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.data.CommitteeParsers[committeeID][string(kind)]
	if !ok {
		return legisdoc.CommitteeStrategyStats{}, false
	}
	stats, ok := slot.Strategies[strategyID]
	if !ok {
		return legisdoc.CommitteeStrategyStats{}, false
	}
	return legisdoc.CommitteeStrategyStats{
		Count:    stats.Count,
		Streak:   stats.Streak,
		LastUsed: stats.LastUsed,
	}, true
}

// CachedDocument returns the cache entry for a source URL.
func (s *Store) CachedDocument(url string) (legisdoc.DocumentCacheEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data.DocumentCache.ByURL[url]
	if !ok {
		return legisdoc.DocumentCacheEntry{}, false
	}
	return e, true
}

// PutCachedDocument records or replaces the entry for a source URL.
func (s *Store) PutCachedDocument(url string, entry legisdoc.DocumentCacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dc := &s.data.DocumentCache
	if old, ok := dc.ByURL[url]; ok && old.ContentHash != entry.ContentHash {
		dc.removeRef(old.ContentHash, url)
	}
	dc.ByURL[url] = entry
	dc.addRef(entry.ContentHash, url)
	s.persistLocked()
}

// TouchCachedDocument bumps access tracking on a cache hit.
func (s *Store) TouchCachedDocument(url string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data.DocumentCache.ByURL[url]
	if !ok {
		return
	}
	e.LastAccessed = now
	e.AccessCount++
	s.data.DocumentCache.ByURL[url] = e
	s.persistLocked()
}

// RemoveCachedDocument deletes a URL's entry and returns how many URLs
// still reference its content hash. The caller must not delete the blob
// until that count reaches zero.
func (s *Store) RemoveCachedDocument(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dc := &s.data.DocumentCache
	e, ok := dc.ByURL[url]
	if !ok {
		return 0
	}
	delete(dc.ByURL, url)
	remaining := dc.removeRef(e.ContentHash, url)
	s.persistLocked()
	return remaining
}

// CachedDocuments returns a snapshot of all entries keyed by URL.
func (s *Store) CachedDocuments() map[string]legisdoc.DocumentCacheEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]legisdoc.DocumentCacheEntry, len(s.data.DocumentCache.ByURL))
	for url, e := range s.data.DocumentCache.ByURL {
		out[url] = e
	}
	return out
}

// Metadata returns the aggregate cache metadata.
func (s *Store) Metadata() legisdoc.CacheMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.DocumentCache.Metadata
}

// SetMetadata replaces the aggregate cache metadata.
func (s *Store) SetMetadata(meta legisdoc.CacheMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.DocumentCache.Metadata = meta
	s.persistLocked()
}

// Contact returns the opaque contact record for a committee.
func (s *Store) Contact(committeeID string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data.CommitteeContacts[committeeID]
	return raw, ok
}

// SetContact stores an opaque contact record for a committee.
func (s *Store) SetContact(committeeID string, data json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.CommitteeContacts[committeeID] = data
	s.persistLocked()
}

// Flush persists buffered mutations to disk.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.writeLocked(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// persistLocked applies the persistence mode after a mutation. The caller
// holds the write lock. Write errors are logged and swallowed; the
// in-memory state stays correct for this process.
func (s *Store) persistLocked() {
	if s.mode == Buffered {
		s.dirty = true
		return
	}
	if err := s.writeLocked(); err != nil {
		s.logger.Warn("state store write failed", "path", s.path, "err", err)
	}
}

// writeLocked marshals the document compactly and replaces the state file
// atomically via a temp-file rename.
func (s *Store) writeLocked() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
