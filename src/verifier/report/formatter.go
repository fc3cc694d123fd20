package report

import (
	"sort"

	"github.com/trustmesh/newsverify/src/verifier/registry"
	"github.com/trustmesh/newsverify/src/verifier/scoring"
	"github.com/trustmesh/newsverify/src/verifier/types"
)

const (
	maxLinksPerClaim = 3
	maxLinks         = 10
)

// Safe-default sentinel values returned when the pipeline fails: midpoint
// suspicion at zero confidence signals "unable to determine" without
// asserting an extreme.
const (
	safeDefaultFakePercentage = 50
	safeDefaultConfidence     = 0
)

// Formatter assembles the final report and selects the most relevant
// supporting and contradicting links.
type Formatter struct {
	reg *registry.Registry
}

func NewFormatter(reg *registry.Registry) *Formatter {
	return &Formatter{reg: reg}
}

// Format flattens, per claim, up to three of the highest-weight non-unknown
// assessments into supporting links, ordered by descending trust weight and
// capped globally.
func (f *Formatter) Format(claimSet []types.Claim, sources []types.Source, assessments []types.EvidenceAssessment, scores scoring.Scores) types.VerificationResult {
	byURL := make(map[string]types.Source, len(sources))
	for _, s := range sources {
		byURL[s.URL] = s
	}
	byClaim := make(map[int][]types.EvidenceAssessment)
	for _, a := range assessments {
		if a.Stance == types.StanceUnknown {
			continue
		}
		byClaim[a.ClaimID] = append(byClaim[a.ClaimID], a)
	}

	type weightedLink struct {
		link   types.SupportingLink
		weight int
	}
	var picked []weightedLink
	seen := make(map[string]bool)

	for _, c := range claimSet {
		perClaim := byClaim[c.ID]
		sort.SliceStable(perClaim, func(i, j int) bool {
			return perClaim[i].Weight > perClaim[j].Weight
		})
		taken := 0
		for _, a := range perClaim {
			if taken == maxLinksPerClaim {
				break
			}
			if seen[a.SourceURL] {
				continue
			}
			src, ok := byURL[a.SourceURL]
			if !ok {
				continue
			}
			seen[a.SourceURL] = true
			taken++
			picked = append(picked, weightedLink{
				link: types.SupportingLink{
					URL:      src.URL,
					Title:    src.Title,
					Supports: a.Stance == types.StanceSupports,
					Source:   f.outletName(src.Domain),
				},
				weight: a.Weight,
			})
		}
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].weight > picked[j].weight
	})
	if len(picked) > maxLinks {
		picked = picked[:maxLinks]
	}

	links := make([]types.SupportingLink, 0, len(picked))
	for _, wl := range picked {
		links = append(links, wl.link)
	}

	return types.VerificationResult{
		FakePercentage:  scores.FakePercentage,
		ConfidenceScore: scores.ConfidenceScore,
		Verdict:         scores.Verdict,
		SupportingLinks: links,
	}
}

// SafeDefault is the schema-complete report returned when any pipeline stage
// fails. The error itself travels out-of-band for observability.
func (f *Formatter) SafeDefault() types.VerificationResult {
	return types.VerificationResult{
		FakePercentage:  safeDefaultFakePercentage,
		ConfidenceScore: safeDefaultConfidence,
		Verdict:         types.VerdictFor(safeDefaultFakePercentage),
		SupportingLinks: []types.SupportingLink{},
	}
}

func (f *Formatter) outletName(domain string) string {
	if o, ok := f.reg.Lookup(domain); ok && o.Name != "" {
		return o.Name
	}
	return domain
}
