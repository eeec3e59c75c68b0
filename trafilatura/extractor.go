package trafilatura

import (
	"bytes"
	"errors"

	"github.com/fwojciec/legisdoc"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements legisdoc.TextExtractor at compile time.
var _ legisdoc.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content text from HTML
// documents, stripping navigation, sidebars, and boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML bytes and returns the main content as
// plain text.
func (e *Extractor) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(bytes.NewReader(data), opts)
	if err != nil {
		return "", err
	}

	return result.ContentText, nil
}
