package doccache

import "sync/atomic"

// Metrics is a point-in-time snapshot of service counters.
type Metrics struct {
	CacheHits   int64
	CacheMisses int64
	Fetches     int64
	Extractions int64
	DedupWaits  int64
}

type metrics struct {
	hits        atomic.Int64
	misses      atomic.Int64
	fetches     atomic.Int64
	extractions atomic.Int64
	dedupWaits  atomic.Int64
}

func (m *metrics) hit()        { m.hits.Add(1) }
func (m *metrics) miss()       { m.misses.Add(1) }
func (m *metrics) fetch()      { m.fetches.Add(1) }
func (m *metrics) extraction() { m.extractions.Add(1) }
func (m *metrics) dedupWait()  { m.dedupWaits.Add(1) }

func (m *metrics) snapshot() Metrics {
	return Metrics{
		CacheHits:   m.hits.Load(),
		CacheMisses: m.misses.Load(),
		Fetches:     m.fetches.Load(),
		Extractions: m.extractions.Load(),
		DedupWaits:  m.dedupWaits.Load(),
	}
}
