package goquery_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/legisdoc"
	"github.com/fwojciec/legisdoc/doccache"
	"github.com/fwojciec/legisdoc/goquery"
	"github.com/fwojciec/legisdoc/htmltomarkdown"
	"github.com/fwojciec/legisdoc/jsonstate"
	"github.com/fwojciec/legisdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBill is the bill used across strategy tests.
var testBill = legisdoc.BillRef{
	BillID:      "H.100",
	BillURL:     "https://example.com/Bills/194/H100",
	CommitteeID: "J33",
	HearingID:   "5555",
	HearingURL:  "https://example.com/Events/Hearings/Detail/5555",
}

// newDocService wires a doccache.Service over canned pages and documents.
// pages maps URLs to HTML bodies, documents maps URLs to PDF text (served
// as bytes and "extracted" verbatim).
func newDocService(t *testing.T, pages map[string]string, documents map[string]string) *doccache.Service {
	t.Helper()

	store := jsonstate.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, store.Open())

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) ([]byte, string, error) {
			if body, ok := pages[url]; ok {
				return []byte(body), "text/html", nil
			}
			if body, ok := documents[url]; ok {
				return []byte(body), "application/pdf", nil
			}
			return nil, "", legisdoc.Errorf(legisdoc.ENOTFOUND, "no fixture for %s", url)
		},
	}

	dir := t.TempDir()
	return doccache.NewService(store, fetcher,
		doccache.WithDirs(filepath.Join(dir, "documents"), filepath.Join(dir, "extracted")),
		doccache.WithExtractor(legisdoc.FormatPDF, &mock.TextExtractor{
			ExtractTextFn: func(data []byte) (string, error) { return string(data), nil },
		}),
	)
}

func TestSummaryBillTab(t *testing.T) {
	t.Parallel()

	billPage := `<html><body>
<div class="tab-content">
<div id="Summary"><h2>Committee Summary</h2>
<p>The committee recommends that House Bill 100 ought to pass. This summary
describes the changes to municipal procurement thresholds proposed by the
bill, including revised competitive bidding requirements for contracts over
fifty thousand dollars and new reporting obligations for local officials.</p>
</div>
</div>
</body></html>`

	t.Run("finds the summary tab", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t, map[string]string{testBill.BillURL: billPage}, nil)
		strategy := goquery.NewSummaryBillTab(docs, htmltomarkdown.NewConverter())

		candidate, err := strategy.Discover(context.Background(), testBill)
		require.NoError(t, err)
		require.NotNil(t, candidate)
		assert.Contains(t, candidate.FullText, "ought to pass")
		assert.Equal(t, testBill.BillURL, candidate.SourceURL)
		assert.Greater(t, candidate.Confidence, 0.5)
		assert.NotEmpty(t, candidate.Preview)
	})

	t.Run("misses when the page has no summary tab", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t, map[string]string{
			testBill.BillURL: `<html><body><div id="History"><p>First reading.</p></div></body></html>`,
		}, nil)
		strategy := goquery.NewSummaryBillTab(docs, htmltomarkdown.NewConverter())

		candidate, err := strategy.Discover(context.Background(), testBill)
		require.NoError(t, err)
		assert.Nil(t, candidate)
	})

	t.Run("propagates fetch failures", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t, nil, nil)
		strategy := goquery.NewSummaryBillTab(docs, htmltomarkdown.NewConverter())

		_, err := strategy.Discover(context.Background(), testBill)
		require.Error(t, err)
	})
}

func TestSummaryHearingDocs(t *testing.T) {
	t.Parallel()

	hearingPage := `<html><body>
<h1>Hearing Documents</h1>
<ul>
<li><a href="/Documents/agenda.pdf">Hearing Agenda</a></li>
<li><a href="/Documents/h100-summary.pdf">H.100 Committee Summary</a></li>
</ul>
</body></html>`

	summaryText := "Summary of H.100. The committee recommends the bill ought to pass " +
		"with a technical amendment correcting the effective date and clarifying the " +
		"application of the new thresholds to existing contracts entered before passage."

	t.Run("finds and extracts the summary document", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t,
			map[string]string{testBill.HearingURL: hearingPage},
			map[string]string{"https://example.com/Documents/h100-summary.pdf": summaryText},
		)
		strategy := goquery.NewSummaryHearingDocs(docs)

		candidate, err := strategy.Discover(context.Background(), testBill)
		require.NoError(t, err)
		require.NotNil(t, candidate)
		assert.Equal(t, "https://example.com/Documents/h100-summary.pdf", candidate.SourceURL)
		assert.Contains(t, candidate.FullText, "ought to pass")
	})

	t.Run("misses when no link matches the bill", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t, map[string]string{
			testBill.HearingURL: `<html><body><a href="/Documents/s50-summary.pdf">S.50 Summary</a></body></html>`,
		}, nil)
		strategy := goquery.NewSummaryHearingDocs(docs)

		candidate, err := strategy.Discover(context.Background(), testBill)
		require.NoError(t, err)
		assert.Nil(t, candidate)
	})

	t.Run("misses when the bill has no hearing", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t, nil, nil)
		strategy := goquery.NewSummaryHearingDocs(docs)

		bill := testBill
		bill.HearingURL = ""
		candidate, err := strategy.Discover(context.Background(), bill)
		require.NoError(t, err)
		assert.Nil(t, candidate)
	})
}

func TestVotesBillEmbedded(t *testing.T) {
	t.Parallel()

	billPage := `<html><body>
<table>
<caption>Committee vote on H.100, ought to pass, 5/14/2026</caption>
<tr><th>Member</th><th>Vote</th></tr>
<tr><td>Smith</td><td>Yea</td></tr>
<tr><td>Jones</td><td>Yea</td></tr>
<tr><td>Brown</td><td>Nay</td></tr>
</table>
</body></html>`

	t.Run("finds and parses the vote table", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t, map[string]string{testBill.BillURL: billPage}, nil)
		strategy := goquery.NewVotesBillEmbedded(docs, htmltomarkdown.NewConverter())

		candidate, err := strategy.Discover(context.Background(), testBill)
		require.NoError(t, err)
		require.NotNil(t, candidate)
		assert.Contains(t, candidate.FullText, "Smith")

		result, err := strategy.Parse(context.Background(), testBill, candidate)
		require.NoError(t, err)
		assert.Contains(t, result.Motion, "ought to pass")
		assert.Equal(t, "5/14/2026", result.Date)
		assert.Equal(t, map[string]int{"yea": 2, "nay": 1}, result.Tallies)
		assert.Equal(t, []legisdoc.VoteRecord{
			{Member: "Smith", Vote: "Yea"},
			{Member: "Jones", Vote: "Yea"},
			{Member: "Brown", Vote: "Nay"},
		}, result.Records)
	})

	t.Run("misses when the page has no vote table", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t, map[string]string{
			testBill.BillURL: `<html><body><table><tr><td>Date</td><td>Action</td></tr><tr><td>1/5/2026</td><td>Referred</td></tr></table></body></html>`,
		}, nil)
		strategy := goquery.NewVotesBillEmbedded(docs, htmltomarkdown.NewConverter())

		candidate, err := strategy.Discover(context.Background(), testBill)
		require.NoError(t, err)
		assert.Nil(t, candidate)
	})
}

func TestVotesCommitteeDocs(t *testing.T) {
	t.Parallel()

	committeePage := `<html><body>
<a href="/Documents/j33-h100-rollcall.pdf">H.100 Roll Call Vote</a>
</body></html>`

	voteText := "Roll call on H.100, ought to pass, taken 5/14/2026\n" +
		"Smith Yea\nJones Yea\nBrown Nay\nDavis Absent\n"

	t.Run("finds the vote document and parses member records", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t,
			map[string]string{"https://example.com/Committees/Detail/J33/Documents": committeePage},
			map[string]string{"https://example.com/Documents/j33-h100-rollcall.pdf": voteText},
		)
		strategy := goquery.NewVotesCommitteeDocs(docs, "https://example.com")

		candidate, err := strategy.Discover(context.Background(), testBill)
		require.NoError(t, err)
		require.NotNil(t, candidate)
		assert.Equal(t, "https://example.com/Documents/j33-h100-rollcall.pdf", candidate.SourceURL)

		result, err := strategy.Parse(context.Background(), testBill, candidate)
		require.NoError(t, err)
		assert.Contains(t, result.Motion, "ought to pass")
		assert.Equal(t, "5/14/2026", result.Date)
		assert.Equal(t, map[string]int{"yea": 2, "nay": 1, "absent": 1}, result.Tallies)
		assert.Len(t, result.Records, 4)
	})

	t.Run("misses when the bill has no committee", func(t *testing.T) {
		t.Parallel()

		docs := newDocService(t, nil, nil)
		strategy := goquery.NewVotesCommitteeDocs(docs, "https://example.com")

		bill := testBill
		bill.CommitteeID = ""
		candidate, err := strategy.Discover(context.Background(), bill)
		require.NoError(t, err)
		assert.Nil(t, candidate)
	})
}
