package evidence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustmesh/newsverify/src/shared/search"
	"github.com/trustmesh/newsverify/src/verifier/registry"
	"github.com/trustmesh/newsverify/src/verifier/types"
)

type fakeSearch struct {
	byQuery map[string][]search.Result
	errs    map[string]error
}

func (f fakeSearch) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.byQuery[query], nil
}

func claimSet(texts ...string) []types.Claim {
	out := make([]types.Claim, len(texts))
	for i, t := range texts {
		out[i] = types.Claim{ID: i + 1, Text: t}
	}
	return out
}

func TestSearchFiltersToAllowlist(t *testing.T) {
	client := fakeSearch{byQuery: map[string][]search.Result{
		"c1": {
			{URL: "https://www.thehindu.com/news/a", Title: "A"},
			{URL: "https://random-blog.example/b", Title: "B"},
		},
	}}
	s := NewSearcher(client, registry.Builtin(), Options{})

	got, err := s.Search(context.Background(), claimSet("c1"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "thehindu.com", got[0].Domain)
}

func TestSearchDeduplicatesByNormalizedURL(t *testing.T) {
	client := fakeSearch{byQuery: map[string][]search.Result{
		"c1": {{URL: "https://www.ndtv.com/story/", Title: "A"}},
		"c2": {{URL: "https://ndtv.com/story#frag", Title: "A again"}},
	}}
	s := NewSearcher(client, registry.Builtin(), Options{})

	got, err := s.Search(context.Background(), claimSet("c1", "c2"))
	require.NoError(t, err)
	require.Len(t, got, 1, "same page via www/fragment/trailing-slash variants must collapse")
}

func TestSearchCapKeepsRepresentationAcrossClaims(t *testing.T) {
	many := func(prefix string, n int) []search.Result {
		out := make([]search.Result, n)
		for i := 0; i < n; i++ {
			out[i] = search.Result{URL: "https://thehindu.com/" + prefix + string(rune('a'+i)), Title: prefix}
		}
		return out
	}
	client := fakeSearch{byQuery: map[string][]search.Result{
		"c1": many("one-", 20),
		"c2": many("two-", 20),
	}}
	s := NewSearcher(client, registry.Builtin(), Options{MaxResults: 4})

	got, err := s.Search(context.Background(), claimSet("c1", "c2"))
	require.NoError(t, err)
	require.Len(t, got, 4)

	ones, twos := 0, 0
	for _, src := range got {
		if src.Title == "one-" {
			ones++
		} else {
			twos++
		}
	}
	assert.Equal(t, 2, ones, "truncation must not exhaust the cap on one claim")
	assert.Equal(t, 2, twos)
}

func TestSearchSingleClaimFailureDegrades(t *testing.T) {
	client := fakeSearch{
		byQuery: map[string][]search.Result{
			"good": {{URL: "https://scroll.in/x", Title: "X"}},
		},
		errs: map[string]error{"bad": errors.New("timeout")},
	}
	s := NewSearcher(client, registry.Builtin(), Options{})

	got, err := s.Search(context.Background(), claimSet("good", "bad"))
	require.NoError(t, err, "partial results are acceptable")
	assert.Len(t, got, 1)
}

func TestSearchTotalFailure(t *testing.T) {
	client := fakeSearch{errs: map[string]error{
		"c1": errors.New("unreachable"),
		"c2": errors.New("unreachable"),
	}}
	s := NewSearcher(client, registry.Builtin(), Options{})

	_, err := s.Search(context.Background(), claimSet("c1", "c2"))
	var searchErr types.SearchError
	require.ErrorAs(t, err, &searchErr)
}

func TestSearchEmptyClaimSet(t *testing.T) {
	s := NewSearcher(fakeSearch{}, registry.Builtin(), Options{})
	got, err := s.Search(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// deadlineSearch honors context cancellation the way a real HTTP client does.
type deadlineSearch struct{}

func (deadlineSearch) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []search.Result{{URL: "https://ndtv.com/" + query, Title: query}}, nil
}

func TestSearchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSearcher(deadlineSearch{}, registry.Builtin(), Options{})
	_, err := s.Search(ctx, claimSet("c1", "c2"))
	var searchErr types.SearchError
	require.ErrorAs(t, err, &searchErr, "a dead context fails every query and must surface as SearchError")
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"https://www.ndtv.com/story/", "https://ndtv.com/story"},
		{"HTTPS://NDTV.COM/story#x", "https://ndtv.com/story"},
	}
	for _, tc := range cases {
		assert.Equal(t, normalizeURL(tc.b), normalizeURL(tc.a))
	}
	assert.NotEqual(t, normalizeURL("https://ndtv.com/story?p=1"), normalizeURL("https://ndtv.com/story?p=2"))
}
