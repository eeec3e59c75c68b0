package legisdoc

import (
	"encoding/json"
	"time"
)

// StateEntry is the per-bill, per-kind record of which strategy landed and
// whether its result was ever explicitly accepted. Confirmed is only set by
// explicit human acceptance; automatic acceptance never confirms.
type StateEntry struct {
	Strategy  string          `json:"strategy"`
	Confirmed bool            `json:"confirmed"`
	Result    *DocumentResult `json:"result,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CommitteeStrategyStats tracks one strategy's track record for a
// (committee, kind). Count never decreases; Streak counts consecutive
// successes and resets to zero whenever a different strategy lands.
type CommitteeStrategyStats struct {
	Count    int       `json:"count"`
	Streak   int       `json:"streak"`
	LastUsed time.Time `json:"lastUsed"`
}

// Established reports whether a committee's documentation pattern is stable
// enough to trust this strategy without consulting the decision oracle.
func (s CommitteeStrategyStats) Established() bool {
	return s.Streak >= 3 && s.Count >= 5
}

// DocumentCacheEntry is the metadata for one cached source URL. Multiple
// URLs may point at the same content hash; the blob is shared.
type DocumentCacheEntry struct {
	ContentHash     string    `json:"contentHash"`
	Size            int64     `json:"size"`
	ContentType     string    `json:"contentType"`
	BlobPath        string    `json:"blobPath"`
	FirstDownloaded time.Time `json:"firstDownloaded"`
	LastAccessed    time.Time `json:"lastAccessed"`
	LastValidated   time.Time `json:"lastValidated"`
	AccessCount     int       `json:"accessCount"`
	Bills           []string  `json:"bills,omitempty"` // owning bill ids
}

// CacheMetadata is the aggregate view of the deduplicated document cache.
type CacheMetadata struct {
	TotalDocuments int       `json:"totalDocuments"`
	TotalSizeBytes int64     `json:"totalSizeBytes"`
	LastCleanup    time.Time `json:"lastCleanup"`
}

// StateStore is the durable system of record: strategy bindings and results
// per bill, committee learning statistics, document-cache metadata, and an
// opaque committee-contacts cache for an unrelated collector.
//
// All mutating operations are atomic with respect to each other. Reads are
// best-effort (single process). Depending on the store's persistence mode,
// mutations either write through to disk immediately or mark the store
// dirty until Flush is called; persistence failures are logged and
// swallowed, so the in-memory state stays authoritative for the process.
type StateStore interface {
	// Binding returns the strategy id previously bound to (bill, kind).
	Binding(billID string, kind DocumentKind) (string, bool)

	// IsConfirmed reports whether the binding was explicitly accepted.
	IsConfirmed(billID string, kind DocumentKind) bool

	// Result returns the stored resolution outcome, if any.
	Result(billID string, kind DocumentKind) (*DocumentResult, bool)

	// SetResult binds a strategy and its result to (bill, kind),
	// overwriting any previous entry whole.
	SetResult(billID string, kind DocumentKind, strategyID string, result DocumentResult, confirmed bool)

	// SetConfirmed flips the confirmation bit on an existing entry.
	// It is a no-op if no entry exists.
	SetConfirmed(billID string, kind DocumentKind, confirmed bool)

	// RecordSuccess registers that strategyID produced an accepted result
	// for the committee/kind. It increments the strategy's count, extends
	// its streak if it was also the immediately previous success, and
	// otherwise resets all other strategies' streaks.
	RecordSuccess(committeeID string, kind DocumentKind, strategyID string)

	// RankedStrategies returns strategy ids for the committee/kind sorted
	// by (streak>=2 desc, count desc).
	RankedStrategies(committeeID string, kind DocumentKind) []string

	// StrategyStats returns the stats for one strategy.
	StrategyStats(committeeID string, kind DocumentKind, strategyID string) (CommitteeStrategyStats, bool)

	// CachedDocument returns the cache entry for a source URL.
	CachedDocument(url string) (DocumentCacheEntry, bool)

	// PutCachedDocument records or replaces the entry for a source URL and
	// maintains the by-content-hash index.
	PutCachedDocument(url string, entry DocumentCacheEntry)

	// TouchCachedDocument bumps access tracking on a cache hit.
	TouchCachedDocument(url string, now time.Time)

	// RemoveCachedDocument deletes a URL's entry and returns the number of
	// URLs still referencing its content hash.
	RemoveCachedDocument(url string) (remainingRefs int)

	// CachedDocuments returns a snapshot of all entries keyed by URL.
	CachedDocuments() map[string]DocumentCacheEntry

	// Metadata returns the aggregate cache metadata.
	Metadata() CacheMetadata

	// SetMetadata replaces the aggregate cache metadata.
	SetMetadata(meta CacheMetadata)

	// Contact and SetContact pass opaque committee contact records through
	// to the store for an unrelated collector.
	Contact(committeeID string) (json.RawMessage, bool)
	SetContact(committeeID string, data json.RawMessage)

	// Flush persists buffered mutations. In write-through mode it only
	// persists when the store is dirty, so calling it is always cheap.
	Flush() error
}
