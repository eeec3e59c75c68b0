package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/legisdoc"
)

// Ensure Converter implements legisdoc.Converter at compile time.
var _ legisdoc.Converter = (*Converter)(nil)

// Converter turns legislature page HTML into Markdown for candidate
// previews and vote-table parsing. The table plugin matters here: embedded
// roll-call tables must survive as pipe tables so member/vote columns stay
// parseable.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Convert transforms HTML content into Markdown. The legislature CMS nests
// content in layers of empty divs, which render as long runs of blank
// lines and non-breaking spaces; those are collapsed so previews stay
// within their word budget.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", legisdoc.Errorf(legisdoc.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	result = strings.ReplaceAll(result, " ", " ")
	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result), nil
}
