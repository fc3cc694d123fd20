package claims

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/trustmesh/newsverify/src/verifier/types"
)

// Oracle is the language-model collaborator used for claim extraction.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	minClaims        = 3
	maxClaims        = 5
	maxArticleLength = 10000
)

// Extractor turns raw article input into an ordered set of checkable claims.
type Extractor struct {
	oracle Oracle
}

func NewExtractor(oracle Oracle) *Extractor {
	return &Extractor{oracle: oracle}
}

// Extract asks the oracle for 3-5 atomic factual claims and post-processes
// the response. The second return value reports that fewer than three claims
// survived, which lowers confidence downstream.
func (e *Extractor) Extract(ctx context.Context, input types.NewsInput) ([]types.Claim, bool, error) {
	article := strings.TrimSpace(input.Text)
	if len(article) > maxArticleLength {
		// Back up to a rune boundary so the cut never produces invalid UTF-8.
		cut := maxArticleLength
		for cut > 0 && !utf8.RuneStart(article[cut]) {
			cut--
		}
		article = article[:cut] + "\n\n[Content truncated for analysis]"
	}

	combined := "News Text: " + article
	if strings.TrimSpace(input.ImageText) != "" {
		combined += "\n\nImage Description: " + strings.TrimSpace(input.ImageText)
	}

	prompt := fmt.Sprintf(`Analyze this news article and extract 3-5 key verifiable claims that can be fact-checked against trusted news outlets.

Each claim must be a single, self-contained factual assertion: a name, date, number, location, or event. Skip opinions, predictions, and vague paraphrases. Do not simply restate the headline.

Respond with JSON only, no markdown:
{
  "claims": [
    "City X mayor announced a new metro line",
    "The metro line opens in 2025"
  ]
}

Article:
%s`, combined)

	response, err := e.oracle.Complete(ctx, prompt)
	if err != nil {
		return nil, false, types.ExtractionError{Err: err}
	}

	raw, err := parseClaimList(response)
	if err != nil {
		log.Printf("claims: failed to parse oracle response: %v", err)
		return nil, false, types.ExtractionError{Err: err}
	}

	headline := normalizeClaim(firstLine(input.Text))
	seen := make(map[string]bool)
	out := make([]types.Claim, 0, maxClaims)
	for _, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		key := normalizeClaim(text)
		if seen[key] {
			continue
		}
		if key != "" && key == headline {
			continue
		}
		seen[key] = true
		out = append(out, types.Claim{ID: len(out) + 1, Text: text})
		if len(out) == maxClaims {
			break
		}
	}

	reduced := len(out) < minClaims
	if reduced {
		log.Printf("claims: only %d claims extracted, proceeding with reduced confidence", len(out))
	}
	return out, reduced, nil
}

// parseClaimList parses the oracle response, tolerating JSON embedded in
// surrounding prose or code fences.
func parseClaimList(response string) ([]string, error) {
	var payload struct {
		Claims []string `json:"claims"`
	}

	text := stripCodeFence(response)
	if err := json.Unmarshal([]byte(text), &payload); err == nil {
		return payload.Claims, nil
	}

	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx >= 0 && endIdx > startIdx {
		if err := json.Unmarshal([]byte(text[startIdx:endIdx+1]), &payload); err == nil {
			return payload.Claims, nil
		}
	}

	// Some models answer with a bare array.
	startIdx = strings.Index(text, "[")
	endIdx = strings.LastIndex(text, "]")
	if startIdx >= 0 && endIdx > startIdx {
		var list []string
		if err := json.Unmarshal([]byte(text[startIdx:endIdx+1]), &list); err == nil {
			return list, nil
		}
	}

	return nil, fmt.Errorf("no claim list found in oracle response")
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "```", 3)
		if len(parts) >= 2 {
			s = parts[1]
			s = strings.TrimPrefix(s, "json")
		}
	}
	return strings.TrimSpace(s)
}

func normalizeClaim(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(s, ".!? ")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
