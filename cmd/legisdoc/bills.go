package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/legisdoc"
)

// loadBills reads a JSON array of bill references from path and validates
// each entry.
func loadBills(path string) ([]legisdoc.BillRef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bills file %q: %w", path, err)
	}
	var bills []legisdoc.BillRef
	if err := json.Unmarshal(raw, &bills); err != nil {
		return nil, fmt.Errorf("failed to parse bills file %q: %w", path, err)
	}
	for i := range bills {
		if err := bills[i].Validate(); err != nil {
			return nil, fmt.Errorf("bills file %q entry %d: %w", path, i, err)
		}
	}
	if len(bills) == 0 {
		return nil, legisdoc.Errorf(legisdoc.EINVALID, "bills file %q contains no bills", path)
	}
	return bills, nil
}
