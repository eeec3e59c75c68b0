package jsonstate

import (
	"encoding/json"
	"time"

	"github.com/fwojciec/legisdoc"
)

// document is the on-disk shape of the whole state file.
type document struct {
	BillParsers       map[string]map[string]*stateEntry    `json:"bill_parsers"`
	CommitteeParsers  map[string]map[string]*committeeSlot `json:"committee_parsers"`
	DocumentCache     docCache                             `json:"document_cache"`
	CommitteeContacts map[string]json.RawMessage           `json:"committee_contacts"`
}

// stateEntry is the per-bill, per-kind record. Early state files stored a
// bare strategy id string here; UnmarshalJSON upgrades that legacy shape to
// an unconfirmed object entry on load.
type stateEntry struct {
	Strategy  string                   `json:"strategy"`
	Confirmed bool                     `json:"confirmed"`
	Result    *legisdoc.DocumentResult `json:"result,omitempty"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func (e *stateEntry) UnmarshalJSON(raw []byte) error {
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		e.Strategy = legacy
		e.Confirmed = false
		return nil
	}
	type plain stateEntry
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*e = stateEntry(p)
	return nil
}

// committeeSlot holds one committee/kind's learning state. LastSuccess
// names the strategy that most recently produced an accepted result, which
// is what the streak rule keys on.
type committeeSlot struct {
	LastSuccess string                    `json:"last_success,omitempty"`
	Strategies  map[string]*strategyStats `json:"strategies"`
}

type strategyStats struct {
	Count    int       `json:"count"`
	Streak   int       `json:"current_streak"`
	LastUsed time.Time `json:"last_used"`
}

// docCache holds the by-URL entries, the by-content-hash reference index,
// and the aggregate metadata.
type docCache struct {
	ByURL         map[string]legisdoc.DocumentCacheEntry `json:"by_url"`
	ByContentHash map[string][]string                    `json:"by_content_hash"`
	Metadata      legisdoc.CacheMetadata                 `json:"metadata"`
}

func (dc *docCache) addRef(hash, url string) {
	for _, u := range dc.ByContentHash[hash] {
		if u == url {
			return
		}
	}
	dc.ByContentHash[hash] = append(dc.ByContentHash[hash], url)
}

// removeRef drops url from the hash's reference list and returns how many
// references remain. Empty lists are deleted so the index doesn't
// accumulate tombstones.
func (dc *docCache) removeRef(hash, url string) int {
	refs := dc.ByContentHash[hash]
	for i, u := range refs {
		if u == url {
			refs = append(refs[:i], refs[i+1:]...)
			break
		}
	}
	if len(refs) == 0 {
		delete(dc.ByContentHash, hash)
		return 0
	}
	dc.ByContentHash[hash] = refs
	return len(refs)
}

func newDocument() document {
	doc := document{}
	doc.init()
	return doc
}

// init ensures all namespace maps exist, including after loading an older
// file that predates one of them.
func (d *document) init() {
	if d.BillParsers == nil {
		d.BillParsers = make(map[string]map[string]*stateEntry)
	}
	if d.CommitteeParsers == nil {
		d.CommitteeParsers = make(map[string]map[string]*committeeSlot)
	}
	if d.DocumentCache.ByURL == nil {
		d.DocumentCache.ByURL = make(map[string]legisdoc.DocumentCacheEntry)
	}
	if d.DocumentCache.ByContentHash == nil {
		d.DocumentCache.ByContentHash = make(map[string][]string)
	}
	if d.CommitteeContacts == nil {
		d.CommitteeContacts = make(map[string]json.RawMessage)
	}
}

func (d *document) billSlot(billID string) map[string]*stateEntry {
	slot, ok := d.BillParsers[billID]
	if !ok {
		slot = make(map[string]*stateEntry)
		d.BillParsers[billID] = slot
	}
	return slot
}

func (d *document) committeeSlot(committeeID, kind string) *committeeSlot {
	kinds, ok := d.CommitteeParsers[committeeID]
	if !ok {
		kinds = make(map[string]*committeeSlot)
		d.CommitteeParsers[committeeID] = kinds
	}
	slot, ok := kinds[kind]
	if !ok {
		slot = &committeeSlot{Strategies: make(map[string]*strategyStats)}
		kinds[kind] = slot
	}
	return slot
}
