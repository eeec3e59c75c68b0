package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/legisdoc"
	"google.golang.org/genai"
)

// Ensure Oracle implements legisdoc.Oracle at compile time.
var _ legisdoc.Oracle = (*Oracle)(nil)

// Oracle implements legisdoc.Oracle using Google Gemini. It answers a
// single narrow question: does this excerpt look like the named document
// kind for the given bill.
type Oracle struct {
	client *genai.Client
	model  string
}

// NewOracle creates a new Oracle. model defaults to the config default
// when empty.
func NewOracle(client *genai.Client, model string) *Oracle {
	if model == "" {
		model = legisdoc.DefaultConfig().OracleModel
	}
	return &Oracle{client: client, model: model}
}

// Decide classifies an excerpt as yes, no, or unsure. Transport failures
// surface as EUNAVAILABLE so callers can fall back to treating the answer
// as unsure.
func (o *Oracle) Decide(ctx context.Context, req legisdoc.OracleRequest) (legisdoc.Decision, error) {
	if req.Excerpt == "" {
		return legisdoc.DecisionUnsure, legisdoc.Errorf(legisdoc.EINVALID, "excerpt required")
	}
	if !req.Kind.Valid() {
		return legisdoc.DecisionUnsure, legisdoc.Errorf(legisdoc.EINVALID, "invalid document kind %q", req.Kind)
	}

	prompt := BuildUserPrompt(req)
	config := BuildConfig()

	result, err := o.client.Models.GenerateContent(ctx, o.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return legisdoc.DecisionUnsure, legisdoc.Errorf(legisdoc.EUNAVAILABLE, "oracle request failed: %v", err)
	}
	if result == nil {
		return legisdoc.DecisionUnsure, legisdoc.Errorf(legisdoc.EUNAVAILABLE, "oracle returned nil result")
	}

	return ParseDecision(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for oracle calls. A low
// temperature keeps the one-word answer deterministic.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You classify legislative document excerpts. Answer with exactly one word: yes, no, or unsure.",
			}},
		},
		Temperature: &temp,
	}
}

// kindLabel describes a document kind in the words a reviewer would use.
func kindLabel(kind legisdoc.DocumentKind) string {
	switch kind {
	case legisdoc.KindSummary:
		return "a committee bill summary (the committee's written summary or report of the bill)"
	case legisdoc.KindVotes:
		return "a committee vote record (a roll call or tally of committee members' votes on the bill)"
	default:
		return string(kind)
	}
}

// BuildUserPrompt builds the classification prompt from an excerpt and the
// kind being sought.
func BuildUserPrompt(req legisdoc.OracleRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Bill: %s\n\n", req.BillID)
	sb.WriteString("<excerpt>\n")
	sb.WriteString(legisdoc.TruncateWords(req.Excerpt, legisdoc.ExcerptWords))
	sb.WriteString("\n</excerpt>\n\n")
	fmt.Fprintf(&sb, "Is this excerpt %s for the bill above? Answer yes, no, or unsure.", kindLabel(req.Kind))
	return sb.String()
}

// ParseDecision maps a model response onto a Decision. Anything other than
// a clear yes or no is unsure.
func ParseDecision(answer string) legisdoc.Decision {
	word := strings.ToLower(strings.TrimSpace(answer))
	word = strings.Trim(word, ".!\"'")
	switch word {
	case "yes":
		return legisdoc.DecisionYes
	case "no":
		return legisdoc.DecisionNo
	default:
		return legisdoc.DecisionUnsure
	}
}
