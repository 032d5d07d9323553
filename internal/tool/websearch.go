package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultSearchEndpoint = "https://serpapi.com/search"

// WebSearch queries a SerpAPI-compatible search service.
type WebSearch struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

// NewWebSearch creates the tool. An empty endpoint uses the default
// SerpAPI URL.
func NewWebSearch(endpoint, apiKey string, logger *zap.Logger) *WebSearch {
	if endpoint == "" {
		endpoint = defaultSearchEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSearch{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

func (t *WebSearch) Name() string { return "web_search" }

func (t *WebSearch) Description() string {
	return "Search the web for information on a given query."
}

func (t *WebSearch) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
			"num_results": map[string]any{
				"type":        "integer",
				"description": "Number of results to return",
				"default":     5,
				"minimum":     1,
				"maximum":     10,
			},
		},
		"required": []string{"query"},
	}
}

type searchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

func (t *WebSearch) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	query, ok := stringArg(args, "query")
	if !ok || query == "" {
		return nil, Errorf("Query parameter is required")
	}
	numResults := intArgDefault(args, "num_results", 5)
	if numResults < 1 {
		numResults = 1
	}
	if numResults > 10 {
		numResults = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("num", strconv.Itoa(numResults))
	params.Set("api_key", t.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, Errorf("Error during web search: %s", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, Errorf("Error during web search: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Errorf("Search API returned status code %d", resp.StatusCode)
	}

	var payload struct {
		OrganicResults []searchResult `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, Errorf("Error during web search: %s", err)
	}

	results := payload.OrganicResults
	if len(results) > numResults {
		results = results[:numResults]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Search results for '%s':\n\n", query)
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n   %s\n\n", i+1, r.Title, r.Link, r.Snippet)
	}

	t.logger.Info("web search completed",
		zap.String("query", query),
		zap.Int("results", len(results)))

	return &Result{
		Success: true,
		Output:  sb.String(),
		Data: map[string]any{
			"query":   query,
			"results": results,
		},
	}, nil
}
