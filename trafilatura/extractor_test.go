package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements legisdoc.TextExtractor at compile time.
var _ legisdoc.TextExtractor = (*trafilatura.Extractor)(nil)

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content without boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Bill H.100</title></head>
<body>
<nav><a href="/">Home</a><a href="/Bills">Bills</a></nav>
<article>
<h1>Committee Summary</h1>
<p>The committee recommends that this bill ought to pass as amended.</p>
<p>The amendment strikes section two and inserts a new effective date.</p>
</article>
<footer>Copyright 2026</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		text, err := ext.ExtractText([]byte(html))

		require.NoError(t, err)
		assert.Contains(t, text, "ought to pass")
		assert.NotContains(t, text, "Copyright")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.ExtractText(nil)
		require.Error(t, err)
	})
}
