package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustmesh/newsverify/src/verifier/registry"
	"github.com/trustmesh/newsverify/src/verifier/scoring"
	"github.com/trustmesh/newsverify/src/verifier/types"
)

func testRegistry() *registry.Registry {
	return registry.New([]registry.Outlet{
		{Domain: "high.example", Name: "High Outlet", Tier: types.TierHigh},
		{Domain: "mid.example", Name: "Mid Outlet", Tier: types.TierMedium},
		{Domain: "low.example", Name: "Low Outlet", Tier: types.TierLow},
	})
}

func source(i int, domain string) types.Source {
	return types.Source{
		URL:    fmt.Sprintf("https://%s/story-%d", domain, i),
		Title:  fmt.Sprintf("Story %d", i),
		Domain: domain,
	}
}

func TestFormatPicksHighestWeightPerClaim(t *testing.T) {
	sources := []types.Source{
		source(1, "low.example"),
		source(2, "high.example"),
		source(3, "mid.example"),
		source(4, "low.example"),
	}
	assessments := []types.EvidenceAssessment{
		{ClaimID: 1, SourceURL: sources[0].URL, Stance: types.StanceSupports, Weight: 1},
		{ClaimID: 1, SourceURL: sources[1].URL, Stance: types.StanceSupports, Weight: 3},
		{ClaimID: 1, SourceURL: sources[2].URL, Stance: types.StanceContradicts, Weight: 2},
		{ClaimID: 1, SourceURL: sources[3].URL, Stance: types.StanceSupports, Weight: 1},
	}
	f := NewFormatter(testRegistry())

	got := f.Format([]types.Claim{{ID: 1, Text: "c"}}, sources, assessments, scoring.Scores{FakePercentage: 10, ConfidenceScore: 80, Verdict: types.VerdictAuthentic})
	require.Len(t, got.SupportingLinks, maxLinksPerClaim)

	assert.Equal(t, "High Outlet", got.SupportingLinks[0].Source)
	assert.True(t, got.SupportingLinks[0].Supports)
	assert.Equal(t, "Mid Outlet", got.SupportingLinks[1].Source)
	assert.False(t, got.SupportingLinks[1].Supports)
}

func TestFormatExcludesUnknownStances(t *testing.T) {
	sources := []types.Source{source(1, "high.example")}
	assessments := []types.EvidenceAssessment{
		{ClaimID: 1, SourceURL: sources[0].URL, Stance: types.StanceUnknown, Weight: 3},
	}
	f := NewFormatter(testRegistry())

	got := f.Format([]types.Claim{{ID: 1}}, sources, assessments, scoring.Scores{})
	assert.Empty(t, got.SupportingLinks)
}

func TestFormatDeduplicatesSourcesAcrossClaims(t *testing.T) {
	shared := source(1, "high.example")
	assessments := []types.EvidenceAssessment{
		{ClaimID: 1, SourceURL: shared.URL, Stance: types.StanceSupports, Weight: 3},
		{ClaimID: 2, SourceURL: shared.URL, Stance: types.StanceSupports, Weight: 3},
	}
	f := NewFormatter(testRegistry())

	got := f.Format([]types.Claim{{ID: 1}, {ID: 2}}, []types.Source{shared}, assessments, scoring.Scores{})
	assert.Len(t, got.SupportingLinks, 1)
}

func TestFormatGlobalCap(t *testing.T) {
	var sources []types.Source
	var assessments []types.EvidenceAssessment
	var claimSet []types.Claim
	n := 0
	for claim := 1; claim <= 4; claim++ {
		claimSet = append(claimSet, types.Claim{ID: claim})
		for j := 0; j < maxLinksPerClaim; j++ {
			n++
			s := source(n, "mid.example")
			sources = append(sources, s)
			assessments = append(assessments, types.EvidenceAssessment{
				ClaimID: claim, SourceURL: s.URL, Stance: types.StanceSupports, Weight: 2,
			})
		}
	}
	f := NewFormatter(testRegistry())

	got := f.Format(claimSet, sources, assessments, scoring.Scores{})
	assert.Len(t, got.SupportingLinks, maxLinks)
}

func TestFormatFallsBackToDomainForUnknownOutlet(t *testing.T) {
	s := source(1, "elsewhere.example")
	assessments := []types.EvidenceAssessment{
		{ClaimID: 1, SourceURL: s.URL, Stance: types.StanceSupports, Weight: 1},
	}
	f := NewFormatter(testRegistry())

	got := f.Format([]types.Claim{{ID: 1}}, []types.Source{s}, assessments, scoring.Scores{})
	require.Len(t, got.SupportingLinks, 1)
	assert.Equal(t, "elsewhere.example", got.SupportingLinks[0].Source)
}

func TestSafeDefault(t *testing.T) {
	got := NewFormatter(testRegistry()).SafeDefault()
	assert.Equal(t, 50, got.FakePercentage)
	assert.Equal(t, 0, got.ConfidenceScore)
	assert.Equal(t, types.VerdictPartiallyTrue, got.Verdict)
	require.NotNil(t, got.SupportingLinks, "callers must always get a schema-complete report")
	assert.Empty(t, got.SupportingLinks)
}
