package evidence

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/OneOfOne/xxhash"
	"github.com/trustmesh/newsverify/src/shared/search"
	"github.com/trustmesh/newsverify/src/verifier/registry"
	"github.com/trustmesh/newsverify/src/verifier/types"
)

// Options bound the retrieval pass. Zero values take the defaults below.
type Options struct {
	WindowDays  int // recency window for evidence pages
	MaxResults  int // global cap across all claims
	MaxInFlight int // concurrent per-claim searches
	Depth       string
}

const (
	defaultWindowDays  = 365
	defaultMaxResults  = 20
	defaultMaxInFlight = 3
	defaultDepth       = "advanced"
)

func (o Options) withDefaults() Options {
	if o.WindowDays <= 0 {
		o.WindowDays = defaultWindowDays
	}
	if o.MaxResults <= 0 {
		o.MaxResults = defaultMaxResults
	}
	if o.MaxInFlight <= 0 {
		o.MaxInFlight = defaultMaxInFlight
	}
	if o.Depth == "" {
		o.Depth = defaultDepth
	}
	return o
}

// Searcher retrieves candidate evidence pages for each claim, restricted to
// the trusted-domain allowlist.
type Searcher struct {
	client search.Client
	reg    *registry.Registry
	opts   Options
}

func NewSearcher(client search.Client, reg *registry.Registry, opts Options) *Searcher {
	return &Searcher{client: client, reg: reg, opts: opts.withDefaults()}
}

// Search fans out one query per claim with bounded concurrency, then merges,
// filters, deduplicates and caps the results. A failed search for a single
// claim degrades to zero evidence for that claim; only a failure of every
// query raises SearchError.
func (s *Searcher) Search(ctx context.Context, claimSet []types.Claim) ([]types.Source, error) {
	if len(claimSet) == 0 {
		return []types.Source{}, nil
	}

	perClaim := make([][]search.Result, len(claimSet))
	errs := make([]error, len(claimSet))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.opts.MaxInFlight)

	for i, claim := range claimSet {
		wg.Add(1)
		go func(index int, c types.Claim) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				errs[index] = ctx.Err()
				return
			}

			results, err := s.client.Search(ctx, c.Text, search.Options{
				IncludeDomains: s.reg.Domains(),
				MaxResults:     s.opts.MaxResults,
				Days:           s.opts.WindowDays,
				Depth:          s.opts.Depth,
			})
			if err != nil {
				log.Printf("evidence: search for claim %d failed: %v", c.ID, err)
				errs[index] = err
				return
			}
			perClaim[index] = results
		}(i, claim)
	}
	wg.Wait()

	failed := 0
	var lastErr error
	for _, err := range errs {
		if err != nil {
			failed++
			lastErr = err
		}
	}
	if failed == len(claimSet) {
		return nil, types.SearchError{Err: fmt.Errorf("all %d claim searches failed: %w", failed, lastErr)}
	}

	return s.merge(perClaim), nil
}

// merge interleaves results round-robin across claims so truncation keeps
// representation from every claim, then filters to registry domains and
// deduplicates by normalized URL.
func (s *Searcher) merge(perClaim [][]search.Result) []types.Source {
	seen := make(map[uint64]bool)
	out := make([]types.Source, 0, s.opts.MaxResults)

	for offset := 0; ; offset++ {
		advanced := false
		for _, results := range perClaim {
			if offset >= len(results) {
				continue
			}
			advanced = true
			r := results[offset]

			domain := hostOf(r.URL)
			outlet, ok := s.reg.Lookup(domain)
			if !ok {
				continue
			}

			key := xxhash.ChecksumString64S(normalizeURL(r.URL), 0)
			if seen[key] {
				continue
			}
			seen[key] = true

			out = append(out, types.Source{
				URL:         r.URL,
				Title:       strings.TrimSpace(r.Title),
				Domain:      outlet.Domain,
				Snippet:     r.Snippet,
				PublishedAt: parseDate(r.PublishedDate),
			})
			if len(out) == s.opts.MaxResults {
				return out
			}
		}
		if !advanced {
			break
		}
	}
	return out
}

// normalizeURL is the dedup identity: lowercased scheme and host, no www
// prefix, no fragment, no trailing slash.
func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = registry.NormalizeDomain(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "Mon, 02 Jan 2006 15:04:05 MST"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
