package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/legisdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, legisdoc.DefaultConfig(), cfg)
	})

	t.Run("overlays yaml over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"base_url: https://legislature.example.gov\nworkers: 2\noracle_enabled: true\n",
		), 0644))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "https://legislature.example.gov", cfg.BaseURL)
		assert.Equal(t, 2, cfg.Workers)
		assert.True(t, cfg.OracleEnabled)
		// Untouched fields keep their defaults.
		assert.Equal(t, legisdoc.DefaultConfig().CacheDir, cfg.CacheDir)
		assert.Equal(t, legisdoc.DefaultConfig().AutoAcceptConfidence, cfg.AutoAcceptConfidence)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: [not a number\n"), 0644))

		_, err := loadConfig(path)
		require.Error(t, err)
	})
}

func TestLoadBills(t *testing.T) {
	t.Run("parses and validates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bills.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"billId": "H73", "billUrl": "https://example.gov/Bills/194/H73", "committeeId": "J33"},
			{"billId": "S197", "billUrl": "https://example.gov/Bills/194/S197", "committeeId": "J33"}
		]`), 0644))

		bills, err := loadBills(path)
		require.NoError(t, err)
		require.Len(t, bills, 2)
		assert.Equal(t, "H73", bills[0].BillID)
		assert.Equal(t, "J33", bills[1].CommitteeID)
	})

	t.Run("rejects entry missing required fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bills.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"billId": "H73"}]`), 0644))

		_, err := loadBills(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 0")
	})

	t.Run("rejects empty list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bills.json")
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

		_, err := loadBills(path)
		require.Error(t, err)
		assert.Equal(t, legisdoc.EINVALID, legisdoc.ErrorCode(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadBills(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}

func TestSessionFile(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")

		session := legisdoc.NewReviewSession("J33")
		session.Add(legisdoc.DeferredConfirmation{
			BillID:     "H73",
			Kind:       legisdoc.KindSummary,
			Strategy:   "summary/bill_tab",
			Preview:    "An Act relative to municipal water districts",
			SourceURL:  "https://example.gov/Bills/194/H73",
			Confidence: 0.4,
		})
		require.NoError(t, saveSession(path, session))

		loaded, err := loadSession(path)
		require.NoError(t, err)
		assert.Equal(t, session.ID, loaded.ID)
		assert.Equal(t, "J33", loaded.CommitteeID)
		require.Equal(t, 1, loaded.Len())
		got := loaded.Confirmations()[0]
		assert.Equal(t, "H73", got.BillID)
		assert.Equal(t, "summary/bill_tab", got.Strategy)
		assert.Equal(t, 0.4, got.Confidence)
	})

	t.Run("empty session removes stale file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"confirmations": []}`), 0644))

		require.NoError(t, saveSession(path, legisdoc.NewReviewSession("J33")))

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file is not found", func(t *testing.T) {
		_, err := loadSession(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Equal(t, legisdoc.ENOTFOUND, legisdoc.ErrorCode(err))
	})
}

func TestDays(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, days(7))
	assert.Equal(t, time.Duration(0), days(0))
}
