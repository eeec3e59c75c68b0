package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/doccache"
	"github.com/fwojciec/legisdoc/gemini"
	"github.com/fwojciec/legisdoc/goquery"
	"github.com/fwojciec/legisdoc/htmltomarkdown"
	legishttp "github.com/fwojciec/legisdoc/http"
	"github.com/fwojciec/legisdoc/jsonstate"
	legislog "github.com/fwojciec/legisdoc/slog"
	"github.com/fwojciec/legisdoc/sqlite"
	"github.com/fwojciec/legisdoc/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// File paths. Set before calling Run().
	StatePath   string
	DBPath      string
	SessionPath string

	// SQLite database backing the audit trail.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	Store *jsonstate.Store
	Audit legisdoc.AuditService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	dir := defaultDataDir()
	return &Main{
		StatePath:   envOr("LEGISDOC_STATE", filepath.Join(dir, "state.json")),
		DBPath:      envOr("LEGISDOC_DB", filepath.Join(dir, "audit.db")),
		SessionPath: envOr("LEGISDOC_SESSION", filepath.Join(dir, "review-session.json")),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:         ctx,
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
		SessionPath: m.SessionPath,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("legisdoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'legisdoc --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// First word of the selected command ("resolve", "cache", ...), used
	// to wire only what the command needs.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Check the YAML syntax of %q\n", cli.Config)
		return err
	}
	// The --review flag wins over the config file; with neither, resolve
	// runs headless.
	if cmd == "resolve" {
		switch {
		case cli.Resolve.Review != "":
			mode, err := legisdoc.ParseReviewMode(cli.Resolve.Review)
			if err != nil {
				return err
			}
			cfg.ReviewMode = mode
		case cli.Config == "" && os.Getenv("LEGISDOC_CONFIG") == "":
			cfg.ReviewMode = legisdoc.ReviewOff
		}
	}
	deps.Config = cfg

	// Open the JSON state store. Buffered mode: commands flush at
	// checkpoints and again before exit.
	m.Store = jsonstate.NewStore(m.StatePath, jsonstate.WithMode(jsonstate.Buffered))
	if err := m.Store.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LEGISDOC_STATE to use a different state file\n")
		return err
	}
	deps.Store = m.Store
	defer func() {
		if ferr := m.Store.Flush(); ferr != nil {
			fmt.Fprintf(stderr, "warning: failed to save state: %v\n", ferr)
		}
	}()

	// Open the audit database.
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LEGISDOC_DB to use a different database path\n")
		return fmt.Errorf("failed to open audit database at %q: %w", m.DBPath, err)
	}
	defer m.Close()
	m.Audit = sqlite.NewAuditService(m.DB)
	deps.Audit = m.Audit

	// The document cache serves resolve and the cache subcommands.
	fetcher := legislog.NewLoggingFetcher(
		legishttp.NewFetcher(legishttp.WithTimeout(cfg.FetchTimeout)),
		nil,
	)
	deps.Docs = doccache.NewService(m.Store, fetcher,
		doccache.WithLimiter(legishttp.NewDomainLimiter(1.0)),
		doccache.WithExtractor(legisdoc.FormatHTML, trafilatura.NewExtractor()),
		doccache.WithDirs(cfg.CacheDir, cfg.TextDir),
		doccache.WithValidateAfter(days(cfg.ValidateAfterDays)),
		doccache.WithMaxAge(days(cfg.MaxAgeDays)),
		doccache.WithWaitTimeout(cfg.FetchTimeout+cfg.SingleFlightGrace),
	)

	if cmd == "resolve" {
		conv := htmltomarkdown.NewConverter()
		summaries := legisdoc.NewRegistry(legisdoc.KindSummary)
		summaries.MustRegister(goquery.NewSummaryBillTab(deps.Docs, conv))
		summaries.MustRegister(goquery.NewSummaryHearingDocs(deps.Docs))
		votes := legisdoc.NewRegistry(legisdoc.KindVotes)
		votes.MustRegister(goquery.NewVotesBillEmbedded(deps.Docs, conv))
		votes.MustRegister(goquery.NewVotesCommitteeDocs(deps.Docs, cfg.BaseURL))
		deps.Registries = map[legisdoc.DocumentKind]*legisdoc.Registry{
			legisdoc.KindSummary: summaries,
			legisdoc.KindVotes:   votes,
		}

		if cfg.ReviewMode == legisdoc.ReviewDeferred && cfg.OracleEnabled {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY not set; deferred review will rely on confidence alone")
			} else {
				client, err := genai.NewClient(ctx, &genai.ClientConfig{
					APIKey:  apiKey,
					Backend: genai.BackendGeminiAPI,
				})
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
					return fmt.Errorf("failed to connect to Gemini API: %w", err)
				}
				deps.Oracle = legislog.NewLoggingOracle(gemini.NewOracle(client, cfg.OracleModel), nil)
			}
		}
	}

	return kongCtx.Run(deps)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, ".legisdoc")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
