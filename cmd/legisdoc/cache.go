package main

import (
	"fmt"
	"sort"

	"github.com/fwojciec/legisdoc"
)

// Run executes the "cache stats" command.
func (c *CacheStatsCmd) Run(deps *Dependencies) error {
	entries := deps.Store.CachedDocuments()
	meta := deps.Store.Metadata()

	var totalBytes int64
	formats := make(map[legisdoc.DocumentFormat]int)
	for url, e := range entries {
		totalBytes += e.Size
		formats[legisdoc.FormatFromURL(url, e.ContentType)]++
	}

	fmt.Fprintf(deps.Stdout, "Documents: %d (%s)\n", len(entries), formatBytes(totalBytes))
	names := make([]string, 0, len(formats))
	for f := range formats {
		names = append(names, string(f))
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(deps.Stdout, "  %-5s %d\n", name, formats[legisdoc.DocumentFormat(name)])
	}
	fmt.Fprintf(deps.Stdout, "Unique blobs: %d (%s after dedup)\n",
		meta.TotalDocuments, formatBytes(meta.TotalSizeBytes))
	if meta.LastCleanup.IsZero() {
		fmt.Fprintln(deps.Stdout, "Last cleanup: never")
	} else {
		fmt.Fprintf(deps.Stdout, "Last cleanup: %s\n", meta.LastCleanup.Format("2006-01-02 15:04"))
	}
	return nil
}

// Run executes the "cache cleanup" command.
func (c *CacheCleanupCmd) Run(deps *Dependencies) error {
	stats, err := deps.Docs.Cleanup(deps.Ctx, c.Force)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legisdoc.ErrorMessage(err))
		return err
	}
	if !stats.Ran {
		fmt.Fprintln(deps.Stdout, "Cleanup already ran within the last day. Use --force to run anyway.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Removed %d entries and %d blobs (%s freed)\n",
		stats.RemovedEntries, stats.RemovedBlobs, formatBytes(stats.BytesFreed))
	return nil
}

// formatBytes renders a byte count with a human-readable unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
