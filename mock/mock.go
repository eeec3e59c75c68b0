// Package mock provides hand-written mocks for the domain interfaces.
// Each mock exposes function fields so tests configure exactly the
// behavior they need and record invocations where useful.
package mock

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/fwojciec/legisdoc"
)

var _ legisdoc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of legisdoc.Fetcher.
type Fetcher struct {
	FetchFn    func(ctx context.Context, url string) ([]byte, string, error)
	FetchCalls atomic.Int64
}

func (m *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	m.FetchCalls.Add(1)
	return m.FetchFn(ctx, url)
}

var _ legisdoc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of legisdoc.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (m *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if m.WaitFn == nil {
		return nil
	}
	return m.WaitFn(ctx, domain)
}

var _ legisdoc.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of legisdoc.TextExtractor.
type TextExtractor struct {
	ExtractTextFn    func(data []byte) (string, error)
	ExtractTextCalls atomic.Int64
}

func (m *TextExtractor) ExtractText(data []byte) (string, error) {
	m.ExtractTextCalls.Add(1)
	return m.ExtractTextFn(data)
}

var _ legisdoc.Oracle = (*Oracle)(nil)

// Oracle is a mock implementation of legisdoc.Oracle.
type Oracle struct {
	DecideFn    func(ctx context.Context, req legisdoc.OracleRequest) (legisdoc.Decision, error)
	DecideCalls atomic.Int64
}

func (m *Oracle) Decide(ctx context.Context, req legisdoc.OracleRequest) (legisdoc.Decision, error) {
	m.DecideCalls.Add(1)
	return m.DecideFn(ctx, req)
}

var _ legisdoc.Confirmer = (*Confirmer)(nil)

// Confirmer is a mock implementation of legisdoc.Confirmer.
type Confirmer struct {
	ConfirmFn    func(ctx context.Context, c legisdoc.Confirmation) (bool, error)
	ConfirmCalls atomic.Int64
}

func (m *Confirmer) Confirm(ctx context.Context, c legisdoc.Confirmation) (bool, error) {
	m.ConfirmCalls.Add(1)
	return m.ConfirmFn(ctx, c)
}

var _ legisdoc.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of legisdoc.Strategy.
type Strategy struct {
	DescriptorFn  func() legisdoc.Descriptor
	DiscoverFn    func(ctx context.Context, bill legisdoc.BillRef) (*legisdoc.Candidate, error)
	ParseFn       func(ctx context.Context, bill legisdoc.BillRef, candidate *legisdoc.Candidate) (*legisdoc.ParseResult, error)
	DiscoverCalls atomic.Int64
	ParseCalls    atomic.Int64
}

func (m *Strategy) Descriptor() legisdoc.Descriptor {
	return m.DescriptorFn()
}

func (m *Strategy) Discover(ctx context.Context, bill legisdoc.BillRef) (*legisdoc.Candidate, error) {
	m.DiscoverCalls.Add(1)
	return m.DiscoverFn(ctx, bill)
}

func (m *Strategy) Parse(ctx context.Context, bill legisdoc.BillRef, candidate *legisdoc.Candidate) (*legisdoc.ParseResult, error) {
	m.ParseCalls.Add(1)
	return m.ParseFn(ctx, bill, candidate)
}

var _ legisdoc.AuditService = (*AuditService)(nil)

// AuditService is a mock implementation of legisdoc.AuditService.
type AuditService struct {
	BeginRunFn    func(ctx context.Context) (string, error)
	RecordFn      func(ctx context.Context, event legisdoc.AuditEvent) error
	EventsFn      func(ctx context.Context, filter legisdoc.AuditFilter) ([]legisdoc.AuditEvent, error)
	CleanupRunsFn func(ctx context.Context, retention time.Duration, keepRuns int) error
}

func (m *AuditService) BeginRun(ctx context.Context) (string, error) {
	return m.BeginRunFn(ctx)
}

func (m *AuditService) Record(ctx context.Context, event legisdoc.AuditEvent) error {
	if m.RecordFn == nil {
		return nil
	}
	return m.RecordFn(ctx, event)
}

func (m *AuditService) Events(ctx context.Context, filter legisdoc.AuditFilter) ([]legisdoc.AuditEvent, error) {
	return m.EventsFn(ctx, filter)
}

func (m *AuditService) CleanupRuns(ctx context.Context, retention time.Duration, keepRuns int) error {
	return m.CleanupRunsFn(ctx, retention, keepRuns)
}

var _ legisdoc.StateStore = (*StateStore)(nil)

// StateStore is a mock implementation of legisdoc.StateStore. Zero-value
// function fields fall back to inert defaults so tests only wire what
// they assert on.
type StateStore struct {
	BindingFn              func(billID string, kind legisdoc.DocumentKind) (string, bool)
	IsConfirmedFn          func(billID string, kind legisdoc.DocumentKind) bool
	ResultFn               func(billID string, kind legisdoc.DocumentKind) (*legisdoc.DocumentResult, bool)
	SetResultFn            func(billID string, kind legisdoc.DocumentKind, strategyID string, result legisdoc.DocumentResult, confirmed bool)
	SetConfirmedFn         func(billID string, kind legisdoc.DocumentKind, confirmed bool)
	RecordSuccessFn        func(committeeID string, kind legisdoc.DocumentKind, strategyID string)
	RankedStrategiesFn     func(committeeID string, kind legisdoc.DocumentKind) []string
	StrategyStatsFn        func(committeeID string, kind legisdoc.DocumentKind, strategyID string) (legisdoc.CommitteeStrategyStats, bool)
	CachedDocumentFn       func(url string) (legisdoc.DocumentCacheEntry, bool)
	PutCachedDocumentFn    func(url string, entry legisdoc.DocumentCacheEntry)
	TouchCachedDocumentFn  func(url string, at time.Time)
	RemoveCachedDocumentFn func(url string) int
	CachedDocumentsFn      func() map[string]legisdoc.DocumentCacheEntry
	MetadataFn             func() legisdoc.CacheMetadata
	SetMetadataFn          func(meta legisdoc.CacheMetadata)
	ContactFn              func(committeeID string) (json.RawMessage, bool)
	SetContactFn           func(committeeID string, contact json.RawMessage)
	FlushFn                func() error
}

func (m *StateStore) Binding(billID string, kind legisdoc.DocumentKind) (string, bool) {
	if m.BindingFn == nil {
		return "", false
	}
	return m.BindingFn(billID, kind)
}

func (m *StateStore) IsConfirmed(billID string, kind legisdoc.DocumentKind) bool {
	if m.IsConfirmedFn == nil {
		return false
	}
	return m.IsConfirmedFn(billID, kind)
}

func (m *StateStore) Result(billID string, kind legisdoc.DocumentKind) (*legisdoc.DocumentResult, bool) {
	if m.ResultFn == nil {
		return nil, false
	}
	return m.ResultFn(billID, kind)
}

func (m *StateStore) SetResult(billID string, kind legisdoc.DocumentKind, strategyID string, result legisdoc.DocumentResult, confirmed bool) {
	if m.SetResultFn != nil {
		m.SetResultFn(billID, kind, strategyID, result, confirmed)
	}
}

func (m *StateStore) SetConfirmed(billID string, kind legisdoc.DocumentKind, confirmed bool) {
	if m.SetConfirmedFn != nil {
		m.SetConfirmedFn(billID, kind, confirmed)
	}
}

func (m *StateStore) RecordSuccess(committeeID string, kind legisdoc.DocumentKind, strategyID string) {
	if m.RecordSuccessFn != nil {
		m.RecordSuccessFn(committeeID, kind, strategyID)
	}
}

func (m *StateStore) RankedStrategies(committeeID string, kind legisdoc.DocumentKind) []string {
	if m.RankedStrategiesFn == nil {
		return nil
	}
	return m.RankedStrategiesFn(committeeID, kind)
}

func (m *StateStore) StrategyStats(committeeID string, kind legisdoc.DocumentKind, strategyID string) (legisdoc.CommitteeStrategyStats, bool) {
	if m.StrategyStatsFn == nil {
		return legisdoc.CommitteeStrategyStats{}, false
	}
	return m.StrategyStatsFn(committeeID, kind, strategyID)
}

func (m *StateStore) CachedDocument(url string) (legisdoc.DocumentCacheEntry, bool) {
	if m.CachedDocumentFn == nil {
		return legisdoc.DocumentCacheEntry{}, false
	}
	return m.CachedDocumentFn(url)
}

func (m *StateStore) PutCachedDocument(url string, entry legisdoc.DocumentCacheEntry) {
	if m.PutCachedDocumentFn != nil {
		m.PutCachedDocumentFn(url, entry)
	}
}

func (m *StateStore) TouchCachedDocument(url string, at time.Time) {
	if m.TouchCachedDocumentFn != nil {
		m.TouchCachedDocumentFn(url, at)
	}
}

func (m *StateStore) RemoveCachedDocument(url string) int {
	if m.RemoveCachedDocumentFn == nil {
		return 0
	}
	return m.RemoveCachedDocumentFn(url)
}

func (m *StateStore) CachedDocuments() map[string]legisdoc.DocumentCacheEntry {
	if m.CachedDocumentsFn == nil {
		return nil
	}
	return m.CachedDocumentsFn()
}

func (m *StateStore) Metadata() legisdoc.CacheMetadata {
	if m.MetadataFn == nil {
		return legisdoc.CacheMetadata{}
	}
	return m.MetadataFn()
}

func (m *StateStore) SetMetadata(meta legisdoc.CacheMetadata) {
	if m.SetMetadataFn != nil {
		m.SetMetadataFn(meta)
	}
}

func (m *StateStore) Contact(committeeID string) (json.RawMessage, bool) {
	if m.ContactFn == nil {
		return nil, false
	}
	return m.ContactFn(committeeID)
}

func (m *StateStore) SetContact(committeeID string, contact json.RawMessage) {
	if m.SetContactFn != nil {
		m.SetContactFn(committeeID, contact)
	}
}

func (m *StateStore) Flush() error {
	if m.FlushFn == nil {
		return nil
	}
	return m.FlushFn()
}
