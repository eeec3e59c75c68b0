package main

import (
	"context"
	"io"

	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/doccache"
	"github.com/fwojciec/legisdoc/jsonstate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config      legisdoc.Config
	Store       *jsonstate.Store
	Docs        *doccache.Service
	Audit       legisdoc.AuditService
	Oracle      legisdoc.Oracle
	Registries  map[legisdoc.DocumentKind]*legisdoc.Registry
	SessionPath string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `help:"Path to a YAML config file" type:"path"`

	Resolve ResolveCmd `cmd:"" help:"Resolve summary and vote documents for hearing bills"`
	Review  ReviewCmd  `cmd:"" help:"Review candidates deferred during a previous resolve run"`
	Cache   CacheCmd   `cmd:"" help:"Inspect or clean the document cache"`
	Audit   AuditCmd   `cmd:"" help:"List recent audit events"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Bills       string `arg:"" optional:"" help:"JSON file of bill references" type:"path"`
	BillID      string `help:"Resolve a single bill by id (requires --bill-url)"`
	BillURL     string `help:"Bill detail page URL for --bill-id"`
	Committee   string `help:"Committee id for --bill-id"`
	HearingURL  string `help:"Hearing page URL for --bill-id"`
	Review      string `enum:",on,deferred,off" default:"" help:"Review mode: on, deferred, or off (defaults to the config file, else off)"`
	Kind        string `help:"Restrict to one document kind (summary or votes)"`
	Concurrency int    `short:"c" help:"Concurrent bill limit"`
}

// ReviewCmd is the "review" subcommand.
type ReviewCmd struct{}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	Stats   CacheStatsCmd   `cmd:"" help:"Show cache statistics"`
	Cleanup CacheCleanupCmd `cmd:"" help:"Evict aged entries and unreferenced blobs"`
}

// CacheStatsCmd is the "cache stats" subcommand.
type CacheStatsCmd struct{}

// CacheCleanupCmd is the "cache cleanup" subcommand.
type CacheCleanupCmd struct {
	Force bool `short:"f" help:"Run even if a cleanup ran within the last day"`
}

// AuditCmd is the "audit" subcommand.
type AuditCmd struct {
	RunID string `name:"run" help:"Filter events by run id"`
	Bill  string `help:"Filter events by bill id"`
	Limit int    `default:"50" help:"Maximum number of events to show"`
}
