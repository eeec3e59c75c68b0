package legisdoc_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/legisdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := legisdoc.Errorf(legisdoc.ENOTFOUND, "bill %q not found", "H73")

	assert.Equal(t, legisdoc.ENOTFOUND, legisdoc.ErrorCode(err))
	assert.Equal(t, "bill \"H73\" not found", legisdoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, legisdoc.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, legisdoc.EINTERNAL, legisdoc.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", legisdoc.ErrorMessage(fmt.Errorf("boom")))
}

func TestBillRef_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		b := legisdoc.BillRef{BillID: "H73", BillURL: "https://example.gov/Bills/H73", CommitteeID: "J33"}
		assert.NoError(t, b.Validate())
	})

	t.Run("missing bill ID", func(t *testing.T) {
		t.Parallel()
		b := legisdoc.BillRef{BillURL: "https://example.gov/Bills/H73", CommitteeID: "J33"}
		assert.Equal(t, legisdoc.EINVALID, legisdoc.ErrorCode(b.Validate()))
	})

	t.Run("missing committee", func(t *testing.T) {
		t.Parallel()
		b := legisdoc.BillRef{BillID: "H73", BillURL: "https://example.gov/Bills/H73"}
		assert.Equal(t, legisdoc.EINVALID, legisdoc.ErrorCode(b.Validate()))
	})
}

func TestParseReviewMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"on", "deferred", "off"} {
		got, err := legisdoc.ParseReviewMode(mode)
		assert.NoError(t, err)
		assert.Equal(t, legisdoc.ReviewMode(mode), got)
	}

	// Malformed modes fall back to headless acceptance, never silent
	// confirmation.
	got, err := legisdoc.ParseReviewMode("interactive")
	assert.Equal(t, legisdoc.EINVALID, legisdoc.ErrorCode(err))
	assert.Equal(t, legisdoc.ReviewOff, got)
}

func TestFormatFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url         string
		contentType string
		want        legisdoc.DocumentFormat
	}{
		{"https://example.gov/doc.pdf", "", legisdoc.FormatPDF},
		{"https://example.gov/doc.PDF?dl=1", "", legisdoc.FormatPDF},
		{"https://example.gov/doc.docx", "", legisdoc.FormatDOCX},
		{"https://example.gov/download/42", "application/pdf", legisdoc.FormatPDF},
		{"https://example.gov/download/42", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", legisdoc.FormatDOCX},
		{"https://example.gov/Bills/H73", "text/html; charset=utf-8", legisdoc.FormatHTML},
		// Unknown defaults to PDF, the dominant format on legislature sites.
		{"https://example.gov/download/42", "", legisdoc.FormatPDF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, legisdoc.FormatFromURL(tt.url, tt.contentType), tt.url)
	}
}

func TestCandidate_Text(t *testing.T) {
	t.Parallel()

	c := &legisdoc.Candidate{Preview: "short"}
	assert.Equal(t, "short", c.Text())

	c.FullText = "the full extracted text"
	assert.Equal(t, "the full extracted text", c.Text())
}
