package legisdoc

import "time"

// ReviewMode selects how discovered candidates are confirmed.
type ReviewMode string

// Review modes.
const (
	// ReviewOn prompts a human for every unconfirmed candidate.
	ReviewOn ReviewMode = "on"

	// ReviewDeferred consults the decision oracle where history warrants
	// it and queues the rest for batch review.
	ReviewDeferred ReviewMode = "deferred"

	// ReviewOff accepts automatically and flags everything needs-review.
	ReviewOff ReviewMode = "off"
)

// ParseReviewMode validates a review mode string. Malformed values resolve
// to the most conservative behavior (headless acceptance that always flags
// needs-review, never silent confirmation) along with an EINVALID error so
// callers can warn.
func ParseReviewMode(s string) (ReviewMode, error) {
	switch ReviewMode(s) {
	case ReviewOn, ReviewDeferred, ReviewOff:
		return ReviewMode(s), nil
	default:
		return ReviewOff, Errorf(EINVALID, "unknown review mode %q", s)
	}
}

// Config is the runtime configuration consumed by the resolution engine.
type Config struct {
	BaseURL    string     `yaml:"base_url"`
	ReviewMode ReviewMode `yaml:"review_mode"`

	// OracleEnabled gates deferred-mode oracle consultation.
	OracleEnabled bool   `yaml:"oracle_enabled"`
	OracleModel   string `yaml:"oracle_model"`

	// AutoAcceptConfidence is the threshold at or above which an unsure
	// oracle outcome is accepted without queueing for review.
	AutoAcceptConfidence float64 `yaml:"auto_accept_confidence"`

	// Document cache tuning.
	CacheDir          string `yaml:"cache_dir"`
	TextDir           string `yaml:"text_dir"`
	ValidateAfterDays int    `yaml:"validate_after_days"`
	MaxAgeDays        int    `yaml:"max_age_days"`

	// FetchTimeout bounds each network fetch. SingleFlightGrace is added
	// to it to bound how long a deduplicated caller waits on another
	// caller's in-flight extraction.
	FetchTimeout      time.Duration `yaml:"fetch_timeout"`
	SingleFlightGrace time.Duration `yaml:"single_flight_grace"`

	// Workers is the concurrent bill resolution limit for batch runs.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:              "https://malegislature.gov",
		ReviewMode:           ReviewDeferred,
		OracleEnabled:        false,
		OracleModel:          "gemini-2.5-flash",
		AutoAcceptConfidence: 0.85,
		CacheDir:             "cache/documents",
		TextDir:              "cache/extracted",
		ValidateAfterDays:    7,
		MaxAgeDays:           180,
		FetchTimeout:         30 * time.Second,
		SingleFlightGrace:    10 * time.Second,
		Workers:              8,
	}
}
