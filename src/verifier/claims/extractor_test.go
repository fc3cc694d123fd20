package claims

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustmesh/newsverify/src/verifier/types"
)

type fakeOracle struct {
	response string
	err      error
}

func (f fakeOracle) Complete(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

const testArticle = "City X mayor announced a new metro line opening in 2025 serving 500,000 daily riders."

func TestExtractParsesClaims(t *testing.T) {
	oracle := fakeOracle{response: `{"claims": [
		"City X is building a new metro line",
		"The metro line opens in 2025",
		"The metro line will serve 500,000 daily riders"
	]}`}

	got, reduced, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{Text: testArticle})
	require.NoError(t, err)
	assert.False(t, reduced)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[2].ID)
	assert.Equal(t, "The metro line opens in 2025", got[1].Text)
}

func TestExtractClampsToFiveClaims(t *testing.T) {
	oracle := fakeOracle{response: `{"claims": ["a1","a2","a3","a4","a5","a6","a7"]}`}

	got, reduced, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{Text: testArticle})
	require.NoError(t, err)
	assert.False(t, reduced)
	assert.Len(t, got, 5)
}

func TestExtractDropsDuplicatesAndBlanks(t *testing.T) {
	oracle := fakeOracle{response: `{"claims": ["Metro opens in 2025", "  ", "metro opens in 2025.", "Ridership is 500,000"]}`}

	got, reduced, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{Text: testArticle})
	require.NoError(t, err)
	assert.True(t, reduced, "two claims should flag reduced confidence")
	require.Len(t, got, 2)
}

func TestExtractDropsHeadlineRestatement(t *testing.T) {
	oracle := fakeOracle{response: `{"claims": ["` + testArticle + `", "The metro opens in 2025", "City X has a mayor", "Ridership is 500,000"]}`}

	got, _, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{Text: testArticle})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, c := range got {
		assert.NotEqual(t, testArticle, c.Text)
	}
}

func TestExtractToleratesCodeFences(t *testing.T) {
	oracle := fakeOracle{response: "```json\n{\"claims\": [\"a\", \"b\", \"c\"]}\n```"}

	got, _, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{Text: testArticle})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestExtractToleratesBareArray(t *testing.T) {
	oracle := fakeOracle{response: `Here you go: ["a", "b", "c"]`}

	got, _, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{Text: testArticle})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestExtractUnparsableResponse(t *testing.T) {
	oracle := fakeOracle{response: "I could not find any factual assertions."}

	_, _, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{Text: testArticle})
	var extractionErr types.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestExtractOracleFailure(t *testing.T) {
	oracle := fakeOracle{err: errors.New("connection refused")}

	_, _, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{Text: testArticle})
	var extractionErr types.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestExtractIncludesImageText(t *testing.T) {
	var captured string
	oracle := promptCapturingOracle{captured: &captured, response: `{"claims": ["a","b","c"]}`}

	_, _, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{
		Text:      testArticle,
		ImageText: "Commuters boarding a metro train",
	})
	require.NoError(t, err)
	assert.Contains(t, captured, "Commuters boarding a metro train")
}

func TestExtractTruncatesOnRuneBoundary(t *testing.T) {
	var captured string
	oracle := promptCapturingOracle{captured: &captured, response: `{"claims": ["a","b","c"]}`}

	// Devanagari text crossing the truncation offset must not be cut
	// mid-rune; the oracle providers reject invalid UTF-8 outright.
	long := strings.Repeat("a", 9999) + strings.Repeat("क", 600)
	_, _, err := NewExtractor(oracle).Extract(context.Background(), types.NewsInput{Text: long})
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(captured), "prompt sent to the oracle must be valid UTF-8")
	assert.Contains(t, captured, "[Content truncated for analysis]")
}

type promptCapturingOracle struct {
	captured *string
	response string
}

func (o promptCapturingOracle) Complete(ctx context.Context, prompt string) (string, error) {
	*o.captured = prompt
	return o.response, nil
}
