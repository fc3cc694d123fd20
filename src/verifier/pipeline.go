// Package verifier implements the claim-verification pipeline: claim
// extraction, evidence retrieval over a trusted-domain allowlist, per-claim
// cross-referencing, and deterministic score aggregation.
package verifier

import (
	"context"
	"log"
	"strings"

	"github.com/trustmesh/newsverify/src/shared/search"
	"github.com/trustmesh/newsverify/src/verifier/claims"
	"github.com/trustmesh/newsverify/src/verifier/evidence"
	"github.com/trustmesh/newsverify/src/verifier/registry"
	"github.com/trustmesh/newsverify/src/verifier/report"
	"github.com/trustmesh/newsverify/src/verifier/scoring"
	"github.com/trustmesh/newsverify/src/verifier/types"
	"github.com/trustmesh/newsverify/src/verifier/verify"
)

// Oracle is the language-model collaborator shared by extraction and
// verification.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config tunes the pipeline. The zero value uses the documented defaults.
type Config struct {
	Evidence evidence.Options
}

// Pipeline is one request-scoped transform from NewsInput to a
// VerificationResult. It holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	extractor *claims.Extractor
	searcher  *evidence.Searcher
	verifier  *verify.Verifier
	formatter *report.Formatter
}

func New(oracle Oracle, searchClient search.Client, reg *registry.Registry, cfg Config) *Pipeline {
	return &Pipeline{
		extractor: claims.NewExtractor(oracle),
		searcher:  evidence.NewSearcher(searchClient, reg, cfg.Evidence),
		verifier:  verify.NewVerifier(oracle, reg),
		formatter: report.NewFormatter(reg),
	}
}

// Run verifies one news item. The returned result is always schema-complete:
// on any pipeline failure it is the safe default and the error is returned
// alongside for logging only. Callers should still serve the result.
func (p *Pipeline) Run(ctx context.Context, input types.NewsInput) (types.VerificationResult, error) {
	result, err := p.run(ctx, input)
	if err != nil {
		log.Printf("verifier: pipeline degraded to safe default: %v", err)
		return p.formatter.SafeDefault(), err
	}
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, input types.NewsInput) (types.VerificationResult, error) {
	if strings.TrimSpace(input.Text) == "" {
		return types.VerificationResult{}, types.ConfigurationError{Reason: "news text is required"}
	}

	claimSet, reduced, err := p.extractor.Extract(ctx, input)
	if err != nil {
		return types.VerificationResult{}, err
	}

	sources, err := p.searcher.Search(ctx, claimSet)
	if err != nil {
		return types.VerificationResult{}, err
	}
	log.Printf("verifier: %d claims, %d evidence sources", len(claimSet), len(sources))

	assessments, err := p.verifier.Assess(ctx, claimSet, sources)
	if err != nil {
		return types.VerificationResult{}, err
	}

	statuses := verify.Classify(claimSet, assessments)
	scores, err := scoring.Aggregate(statuses, assessments, reduced)
	if err != nil {
		return types.VerificationResult{}, err
	}

	return p.formatter.Format(claimSet, sources, assessments, scores), nil
}
