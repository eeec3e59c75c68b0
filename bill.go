package legisdoc

import "time"

// BillRef identifies a bill scheduled at a hearing. Values are produced by
// upstream collectors and are read-only inputs to the resolution engine.
type BillRef struct {
	BillID      string    `json:"billId"`      // canonical, e.g. "H73", "S197"
	BillURL     string    `json:"billUrl"`     // absolute bill detail URL
	CommitteeID string    `json:"committeeId"` // e.g. "J33"
	HearingID   string    `json:"hearingId"`
	HearingURL  string    `json:"hearingUrl"`
	HearingDate time.Time `json:"hearingDate"`
}

// Validate returns an error if the bill reference is missing required fields.
func (b *BillRef) Validate() error {
	if b.BillID == "" {
		return Errorf(EINVALID, "bill ID required")
	}
	if b.BillURL == "" {
		return Errorf(EINVALID, "bill URL required")
	}
	if b.CommitteeID == "" {
		return Errorf(EINVALID, "committee ID required")
	}
	return nil
}
