package legisdoc

// Converter converts HTML to Markdown. Strategies use it to turn embedded
// HTML fragments into readable previews for confirmation prompts.
type Converter interface {
	Convert(html string) (string, error)
}
