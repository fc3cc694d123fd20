package scoring

import (
	"math"

	"github.com/trustmesh/newsverify/src/verifier/types"
)

// Scores is the deterministic reduction of all evidence assessments.
type Scores struct {
	FakePercentage  int
	ConfidenceScore int
	Verdict         types.Verdict
}

// Tally counts claims per status bucket.
type Tally struct {
	Verified     int
	Contradicted int
	Unverified   int
}

func (t Tally) Total() int {
	return t.Verified + t.Contradicted + t.Unverified
}

func TallyClaims(statuses map[int]types.ClaimStatus) Tally {
	var t Tally
	for _, s := range statuses {
		switch s {
		case types.ClaimVerified:
			t.Verified++
		case types.ClaimContradicted:
			t.Contradicted++
		default:
			t.Unverified++
		}
	}
	return t
}

// Aggregate reduces per-claim statuses and the assessment set into the fake
// percentage, confidence score and verdict bucket. The reduced flag marks a
// request whose extraction produced fewer than three claims.
func Aggregate(statuses map[int]types.ClaimStatus, assessments []types.EvidenceAssessment, reduced bool) (Scores, error) {
	t := TallyClaims(statuses)
	fake, err := FakePercentage(t)
	if err != nil {
		return Scores{}, err
	}
	return Scores{
		FakePercentage:  fake,
		ConfidenceScore: Confidence(assessments, reduced),
		Verdict:         types.VerdictFor(fake),
	}, nil
}

// FakePercentage weighs contradicted claims fully and unverified claims at
// half toward suspicion: round(100 * (C + 0.5*U) / (V + C + U)).
func FakePercentage(t Tally) (int, error) {
	total := t.Total()
	if total == 0 {
		return 0, types.AggregationError{Reason: "cannot score an empty claim set"}
	}
	fake := math.Round(100 * (float64(t.Contradicted) + 0.5*float64(t.Unverified)) / float64(total))
	return int(fake), nil
}

// Confidence weighting per component; the four sum to at most 100.
const (
	confidenceFloor  = 10 // zero matched sources across all claims
	confidenceBase   = 20
	volumeCeiling    = 30 // 6 points per distinct matched source
	agreementCeiling = 25
	trustCeiling     = 25

	reducedClaimsPenalty = 15
)

// Confidence grows with the amount of matched evidence, the strength of
// agreement per claim, and the share of high-tier sources. Deterministic for
// a fixed assessment set. Zero matched sources always yields a score <= 20.
func Confidence(assessments []types.EvidenceAssessment, reduced bool) int {
	matched := make(map[string]int) // distinct matched source URL -> max weight
	supportW := make(map[int]int)
	contraW := make(map[int]int)
	for _, a := range assessments {
		if a.Stance == types.StanceUnknown {
			continue
		}
		if w, ok := matched[a.SourceURL]; !ok || a.Weight > w {
			matched[a.SourceURL] = a.Weight
		}
		if a.Stance == types.StanceSupports {
			supportW[a.ClaimID] += a.Weight
		} else {
			contraW[a.ClaimID] += a.Weight
		}
	}

	if len(matched) == 0 {
		return confidenceFloor
	}

	volume := 6 * len(matched)
	if volume > volumeCeiling {
		volume = volumeCeiling
	}

	// Agreement strength: average per-claim |support-contradict| margin as a
	// fraction of the claim's total matched weight.
	claimIDs := make(map[int]bool)
	for id := range supportW {
		claimIDs[id] = true
	}
	for id := range contraW {
		claimIDs[id] = true
	}
	var ratioSum float64
	for id := range claimIDs {
		sup, con := float64(supportW[id]), float64(contraW[id])
		ratioSum += math.Abs(sup-con) / (sup + con)
	}
	agreement := 0
	if len(claimIDs) > 0 {
		agreement = int(math.Round(agreementCeiling * ratioSum / float64(len(claimIDs))))
	}

	high := 0
	for _, w := range matched {
		if w >= types.TierHigh.Weight() {
			high++
		}
	}
	trust := int(math.Round(trustCeiling * float64(high) / float64(len(matched))))

	score := confidenceBase + volume + agreement + trust
	if reduced {
		score -= reducedClaimsPenalty
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
