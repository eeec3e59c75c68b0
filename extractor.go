package legisdoc

import (
	"regexp"
	"strings"
)

// DocumentFormat identifies the encoding of a source document.
type DocumentFormat string

// Supported document formats.
const (
	FormatHTML DocumentFormat = "html"
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// Ext returns the file extension used for cached blobs of this format.
func (f DocumentFormat) Ext() string {
	return string(f)
}

var (
	pdfURLRe  = regexp.MustCompile(`(?i)\.pdf($|\?)`)
	docxURLRe = regexp.MustCompile(`(?i)\.docx($|\?)`)
)

// FormatFromURL guesses the document format from a URL, preferring the
// content type when one is known. Unrecognized documents default to PDF,
// the most common format on legislature sites.
func FormatFromURL(url, contentType string) DocumentFormat {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "text/html"):
		return FormatHTML
	case strings.Contains(ct, "application/pdf"):
		return FormatPDF
	case strings.Contains(ct, "wordprocessingml"):
		return FormatDOCX
	}
	switch {
	case docxURLRe.MatchString(url):
		return FormatDOCX
	case pdfURLRe.MatchString(url):
		return FormatPDF
	default:
		return FormatPDF
	}
}

// TextExtractor produces plain text from one document format's raw bytes.
// PDF and DOCX decoding are external collaborators behind this interface.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}
