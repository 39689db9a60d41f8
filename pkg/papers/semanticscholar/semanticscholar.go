package semanticscholar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/citenav/backend/internal/util"
	"github.com/citenav/backend/pkg/papers"
)

const defaultBaseURL = "https://api.semanticscholar.org/graph/v1"

const (
	searchLimit = 15
	unfoldLimit = 10

	searchFields    = "paperId,title,year,citationCount,abstract,embedding.specter_v2"
	citationFields  = "paperId,title,year,citationCount,embedding.specter_v2"
	referenceFields = "paperId,title,year,citationCount"
)

// Client implements papers.SearchClient and papers.CitationClient against
// the Semantic Scholar Graph API.
//
// A Client should be created using NewClient.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int

	httpClient *http.Client
}

// NewClientParams defines the configuration for creating a Client.
//
// APIKey is optional; the public tier works without one. MaxRetries
// bounds transient-failure retries per request and defaults to 3.
type NewClientParams struct {
	BaseURL    string
	APIKey     string
	MaxRetries int
}

// NewClient creates a Semantic Scholar client.
func NewClient(params NewClientParams) *Client {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     params.APIKey,
		maxRetries: maxRetries,
		httpClient: http.DefaultClient,
	}
}

type searchResponse struct {
	Data []papers.Paper `json:"data"`
}

type citationsResponse struct {
	Data []struct {
		CitingPaper papers.Paper `json:"citingPaper"`
	} `json:"data"`
}

type referencesResponse struct {
	Data []struct {
		CitedPaper papers.Paper `json:"citedPaper"`
	} `json:"data"`
}

// Search returns up to 15 papers matching the query, with abstracts and
// SPECTER embeddings when available.
func (c *Client) Search(ctx context.Context, params papers.SearchParams) ([]papers.Paper, error) {
	query := url.Values{}
	query.Set("query", params.Query)
	query.Set("limit", strconv.Itoa(searchLimit))
	query.Set("fields", searchFields)
	if yearRange := formatYearRange(params.YearStart, params.YearEnd); yearRange != "" {
		query.Set("year", yearRange)
	}

	endpoint := fmt.Sprintf("%s/paper/search?%s", c.baseURL, query.Encode())

	var decoded searchResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, fmt.Errorf("paper search failed: %w", err)
	}
	return decoded.Data, nil
}

// CitationsOf returns up to 10 papers citing the given paper.
func (c *Client) CitationsOf(ctx context.Context, paperID string) ([]papers.Paper, error) {
	endpoint := fmt.Sprintf(
		"%s/paper/%s/citations?limit=%d&fields=%s",
		c.baseURL, url.PathEscape(paperID), unfoldLimit, citationFields,
	)

	var decoded citationsResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, fmt.Errorf("citations fetch failed: %w", err)
	}

	result := make([]papers.Paper, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		result = append(result, item.CitingPaper)
	}
	return result, nil
}

// ReferencesOf returns up to 10 papers the given paper cites.
func (c *Client) ReferencesOf(ctx context.Context, paperID string) ([]papers.Paper, error) {
	endpoint := fmt.Sprintf(
		"%s/paper/%s/references?limit=%d&fields=%s",
		c.baseURL, url.PathEscape(paperID), unfoldLimit, referenceFields,
	)

	var decoded referencesResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, fmt.Errorf("references fetch failed: %w", err)
	}

	result := make([]papers.Paper, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		result = append(result, item.CitedPaper)
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := util.RetryWithContext(ctx, c.maxRetries, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if c.apiKey != "" {
			req.Header.Set("x-api-key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}

// formatYearRange renders inclusive year bounds in the API's range syntax:
// "2020-", "2020-2024" or "-2024". Both bounds zero yields "".
func formatYearRange(start, end int) string {
	switch {
	case start != 0 && end != 0:
		return fmt.Sprintf("%d-%d", start, end)
	case start != 0:
		return fmt.Sprintf("%d-", start)
	case end != 0:
		return fmt.Sprintf("-%d", end)
	default:
		return ""
	}
}
