package htmltomarkdown_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements legisdoc.Converter at compile time.
var _ legisdoc.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Ought to pass with amendment.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Ought to pass with amendment.")
	})

	t.Run("converts vote tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>Member</th><th>Vote</th></tr>` +
			`<tr><td>Smith</td><td>Yea</td></tr>` +
			`<tr><td>Jones</td><td>Nay</td></tr></table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Smith")
		assert.Contains(t, md, "Yea")
		assert.Contains(t, md, "|")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>See the <a href="https://example.com/doc.pdf">summary</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[summary](https://example.com/doc.pdf)")
	})

	t.Run("collapses nested-div whitespace", func(t *testing.T) {
		t.Parallel()

		html := `<div><div><p>An Act relative to water districts.</p></div>` +
			`<div></div><div></div><div><p>Referred&nbsp;to committee.</p></div></div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.NotContains(t, md, "\n\n\n")
		assert.NotContains(t, md, " ")
		assert.Contains(t, md, "Referred to committee.")
		assert.Equal(t, md, strings.TrimSpace(md))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, legisdoc.EINVALID, legisdoc.ErrorCode(err))
	})
}
