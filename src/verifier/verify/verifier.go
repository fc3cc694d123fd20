package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/trustmesh/newsverify/src/verifier/registry"
	"github.com/trustmesh/newsverify/src/verifier/types"
)

// Oracle is the language-model collaborator used to judge claims against
// evidence text.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	// marginThreshold is the minimum trust-weighted vote margin before a
	// claim leaves the unverified bucket. A single medium-tier source is
	// enough; a lone low-tier source is not.
	marginThreshold = 2

	maxSnippetLength = 400
	maxInFlight      = 3
)

// Verifier matches each claim against the retrieved evidence and emits one
// assessment per (claim, source) pair.
type Verifier struct {
	oracle Oracle
	reg    *registry.Registry
}

func NewVerifier(oracle Oracle, reg *registry.Registry) *Verifier {
	return &Verifier{oracle: oracle, reg: reg}
}

// Assess judges every claim against every candidate source. An unreachable
// oracle for a single claim degrades that claim to unknown stances; an
// unparsable oracle response raises VerificationError.
func (v *Verifier) Assess(ctx context.Context, claimSet []types.Claim, sources []types.Source) ([]types.EvidenceAssessment, error) {
	if len(claimSet) == 0 || len(sources) == 0 {
		return []types.EvidenceAssessment{}, nil
	}

	perClaim := make([][]types.EvidenceAssessment, len(claimSet))
	errs := make([]error, len(claimSet))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxInFlight)

	for i, claim := range claimSet {
		wg.Add(1)
		go func(index int, c types.Claim) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				perClaim[index] = v.unknownAssessments(c, sources)
				return
			}

			assessments, err := v.assessClaim(ctx, c, sources)
			if err != nil {
				errs[index] = err
				return
			}
			perClaim[index] = assessments
		}(i, claim)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := make([]types.EvidenceAssessment, 0, len(claimSet)*len(sources))
	for _, assessments := range perClaim {
		out = append(out, assessments...)
	}
	return out, nil
}

func (v *Verifier) assessClaim(ctx context.Context, claim types.Claim, sources []types.Source) ([]types.EvidenceAssessment, error) {
	var sb strings.Builder
	for i, s := range sources {
		snippet := s.Snippet
		if len(snippet) > maxSnippetLength {
			snippet = snippet[:maxSnippetLength] + "..."
		}
		fmt.Fprintf(&sb, "Source %d (%s):\nTitle: %s\nContent: %s\n\n", i+1, s.Domain, s.Title, snippet)
	}

	prompt := fmt.Sprintf(`You are a fact-checking expert. Judge whether each source supports, contradicts, or is silent on this claim.

Claim: "%s"

%sFor every source, decide:
- "supports": the source corroborates the claim's specific facts
- "contradicts": the source states something incompatible with the claim
- "unknown": the source is silent or too vague to judge

Respond with JSON only, no markdown:
{
  "judgments": [
    {"source": 1, "stance": "supports"},
    {"source": 2, "stance": "unknown"}
  ]
}`, claim.Text, sb.String())

	response, err := v.oracle.Complete(ctx, prompt)
	if err != nil {
		// Degrade this claim to unknown rather than aborting the request.
		log.Printf("verify: oracle unreachable for claim %d: %v", claim.ID, err)
		return v.unknownAssessments(claim, sources), nil
	}

	stances, err := parseJudgments(response, len(sources))
	if err != nil {
		return nil, types.VerificationError{Err: fmt.Errorf("claim %d: %w", claim.ID, err)}
	}

	out := make([]types.EvidenceAssessment, 0, len(sources))
	for i, s := range sources {
		out = append(out, types.EvidenceAssessment{
			ClaimID:   claim.ID,
			SourceURL: s.URL,
			Stance:    stances[i],
			Weight:    v.reg.Weight(s.Domain),
		})
	}
	return out, nil
}

func (v *Verifier) unknownAssessments(claim types.Claim, sources []types.Source) []types.EvidenceAssessment {
	out := make([]types.EvidenceAssessment, 0, len(sources))
	for _, s := range sources {
		out = append(out, types.EvidenceAssessment{
			ClaimID:   claim.ID,
			SourceURL: s.URL,
			Stance:    types.StanceUnknown,
			Weight:    v.reg.Weight(s.Domain),
		})
	}
	return out
}

// parseJudgments maps the oracle reply onto a stance per source index.
// Sources the oracle skipped stay unknown.
func parseJudgments(response string, sourceCount int) ([]types.Stance, error) {
	var payload struct {
		Judgments []struct {
			Source int    `json:"source"`
			Stance string `json:"stance"`
		} `json:"judgments"`
	}

	text := strings.TrimSpace(response)
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		startIdx := strings.Index(text, "{")
		endIdx := strings.LastIndex(text, "}")
		if startIdx < 0 || endIdx <= startIdx {
			return nil, fmt.Errorf("no judgment JSON found in oracle response")
		}
		if err := json.Unmarshal([]byte(text[startIdx:endIdx+1]), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse judgments: %w", err)
		}
	}

	stances := make([]types.Stance, sourceCount)
	for i := range stances {
		stances[i] = types.StanceUnknown
	}
	for _, j := range payload.Judgments {
		idx := j.Source - 1
		if idx < 0 || idx >= sourceCount {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(j.Stance)) {
		case "supports", "support":
			stances[idx] = types.StanceSupports
		case "contradicts", "contradict":
			stances[idx] = types.StanceContradicts
		default:
			stances[idx] = types.StanceUnknown
		}
	}
	return stances, nil
}

// Classify reduces each claim's assessments to a per-claim verdict via a
// trust-weighted vote. Ties and thin margins break toward unverified.
func Classify(claimSet []types.Claim, assessments []types.EvidenceAssessment) map[int]types.ClaimStatus {
	supportW := make(map[int]int)
	contraW := make(map[int]int)
	for _, a := range assessments {
		switch a.Stance {
		case types.StanceSupports:
			supportW[a.ClaimID] += a.Weight
		case types.StanceContradicts:
			contraW[a.ClaimID] += a.Weight
		}
	}

	statuses := make(map[int]types.ClaimStatus, len(claimSet))
	for _, c := range claimSet {
		sup, con := supportW[c.ID], contraW[c.ID]
		switch {
		case sup-con >= marginThreshold:
			statuses[c.ID] = types.ClaimVerified
		case con-sup >= marginThreshold:
			statuses[c.ID] = types.ClaimContradicted
		default:
			statuses[c.ID] = types.ClaimUnverified
		}
	}
	return statuses
}
