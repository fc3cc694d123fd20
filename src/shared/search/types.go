package search

import "context"

// Result is one ranked hit returned by the search oracle.
type Result struct {
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	Snippet       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

// Options narrows a query to the trusted allowlist and recency window.
type Options struct {
	IncludeDomains []string
	MaxResults     int
	Days           int
	Depth          string // "basic" or "advanced"
}

// Client is the query-in/ranked-results-out oracle interface.
type Client interface {
	Search(ctx context.Context, query string, opts Options) ([]Result, error)
}
