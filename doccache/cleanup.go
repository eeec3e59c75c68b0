package doccache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/legisdoc"
)

// cleanupInterval is the minimum gap between unforced cleanup sweeps.
const cleanupInterval = 24 * time.Hour

// CleanupStats summarizes a cleanup sweep.
type CleanupStats struct {
	Ran            bool
	RemovedEntries int
	RemovedBlobs   int
	BytesFreed     int64
}

// Cleanup evicts cache entries whose last access is older than the max
// age, deleting blobs and extracted text only once no surviving URL still
// references their content hash. Unforced sweeps run at most once per
// cleanupInterval; force bypasses the gate.
func (s *Service) Cleanup(ctx context.Context, force bool) (CleanupStats, error) {
	var stats CleanupStats

	meta := s.store.Metadata()
	now := time.Now().UTC()
	if !force && !meta.LastCleanup.IsZero() && now.Sub(meta.LastCleanup) < cleanupInterval {
		return stats, nil
	}
	stats.Ran = true

	cutoff := now.Add(-s.maxAge)
	for rawURL, entry := range s.store.CachedDocuments() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if !entry.LastAccessed.Before(cutoff) {
			continue
		}
		remaining := s.store.RemoveCachedDocument(rawURL)
		stats.RemovedEntries++
		if remaining > 0 {
			continue
		}
		if err := os.Remove(entry.BlobPath); err == nil {
			stats.RemovedBlobs++
			stats.BytesFreed += entry.Size
		} else if !os.IsNotExist(err) {
			s.logger.Warn("failed to remove cached blob", "path", entry.BlobPath, "err", err)
		}
		textPath := filepath.Join(s.textDir, entry.ContentHash+".txt")
		if err := os.Remove(textPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove cached text", "path", textPath, "err", err)
		}
	}

	// Totals count unique content, not URLs: two URLs sharing a hash
	// contribute one document and one blob's worth of bytes.
	seen := make(map[string]struct{})
	var totalBytes int64
	for _, entry := range s.store.CachedDocuments() {
		if _, ok := seen[entry.ContentHash]; ok {
			continue
		}
		seen[entry.ContentHash] = struct{}{}
		totalBytes += entry.Size
	}
	s.store.SetMetadata(legisdoc.CacheMetadata{
		TotalDocuments: len(seen),
		TotalSizeBytes: totalBytes,
		LastCleanup:    now,
	})

	return stats, nil
}
