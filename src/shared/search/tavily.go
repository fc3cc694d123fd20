package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trustmesh/newsverify/src/shared/httpx"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// TavilyClient talks to the Tavily search API.
type TavilyClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	retry      httpx.RetryPolicy
}

func NewTavilyClient(apiKey string, timeout time.Duration, retry httpx.RetryPolicy) *TavilyClient {
	if retry.Attempts == 0 {
		retry = httpx.DefaultRetry
	}
	return &TavilyClient{
		apiKey:     apiKey,
		endpoint:   tavilyEndpoint,
		httpClient: httpx.NewDefault(timeout),
		retry:      retry,
	}
}

func (c *TavilyClient) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	reqBody := map[string]interface{}{
		"api_key": c.apiKey,
		"query":   query,
	}
	if opts.Depth != "" {
		reqBody["search_depth"] = opts.Depth
	}
	if len(opts.IncludeDomains) > 0 {
		reqBody["include_domains"] = opts.IncludeDomains
	}
	if opts.MaxResults > 0 {
		reqBody["max_results"] = opts.MaxResults
	}
	if opts.Days > 0 {
		reqBody["days"] = opts.Days
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	status, body, err := httpx.DoWithRetry(ctx, c.retry, func() (int, []byte, error) {
		req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(jsonBody))
		if err != nil {
			return 0, nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		return resp.StatusCode, b, err
	})
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("tavily API error: status %d, body: %s", status, string(body))
	}

	var result struct {
		Results []Result `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result.Results, nil
}
