package types

import "time"

// NewsInput is the request submitted by clients. Field names follow the
// public request body contract.
type NewsInput struct {
	ImageText string `json:"Imagetext,omitempty"`
	Text      string `json:"Text"`
	Link      string `json:"Link,omitempty"`
}

// Claim is a single self-contained factual assertion extracted from an
// article. IDs are stable 1-based ordinals within a request.
type Claim struct {
	ID   int    `json:"id"`
	Text string `json:"claim"`
}

// Source is one candidate evidence page retrieved from a trusted outlet.
type Source struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Domain      string     `json:"domain"`
	Snippet     string     `json:"snippet"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// TrustTier is the coarse weight assigned to each allowlisted domain.
type TrustTier string

const (
	TierHigh   TrustTier = "high"
	TierMedium TrustTier = "medium"
	TierLow    TrustTier = "low"
)

// Weight maps a tier to its vote weight during aggregation.
func (t TrustTier) Weight() int {
	switch t {
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	default:
		return 1
	}
}

// Stance is the tri-state judgment linking one claim to one source.
type Stance string

const (
	StanceSupports    Stance = "supports"
	StanceContradicts Stance = "contradicts"
	StanceUnknown     Stance = "unknown"
)

// EvidenceAssessment records one (claim, source) judgment. Created once by
// the verifier and immutable thereafter.
type EvidenceAssessment struct {
	ClaimID   int
	SourceURL string
	Stance    Stance
	Weight    int
}

// ClaimStatus is the per-claim verdict after the trust-weighted vote.
type ClaimStatus string

const (
	ClaimVerified     ClaimStatus = "verified"
	ClaimContradicted ClaimStatus = "contradicted"
	ClaimUnverified   ClaimStatus = "unverified"
)

// Verdict is one of five named buckets partitioning the fake-percentage scale.
type Verdict string

const (
	VerdictAuthentic       Verdict = "Authentic"
	VerdictMostlyAuthentic Verdict = "Mostly Authentic"
	VerdictPartiallyTrue   Verdict = "Partially True"
	VerdictMostlyFalse     Verdict = "Mostly False"
	VerdictFalse           Verdict = "False"
)

// VerdictFor maps a fake percentage to its bucket. Total over [0,100];
// values outside the range are clamped.
func VerdictFor(fakePercentage int) Verdict {
	switch {
	case fakePercentage <= 20:
		return VerdictAuthentic
	case fakePercentage <= 40:
		return VerdictMostlyAuthentic
	case fakePercentage <= 60:
		return VerdictPartiallyTrue
	case fakePercentage <= 80:
		return VerdictMostlyFalse
	default:
		return VerdictFalse
	}
}

// SupportingLink is one evidence link carried into the final report.
type SupportingLink struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Supports bool   `json:"supports"`
	Source   string `json:"source"`
}

// VerificationResult is the final structured report returned to clients.
type VerificationResult struct {
	FakePercentage  int              `json:"fake_percentage"`
	ConfidenceScore int              `json:"confidence_score"`
	Verdict         Verdict          `json:"verdict"`
	SupportingLinks []SupportingLink `json:"supporting_links"`
}
