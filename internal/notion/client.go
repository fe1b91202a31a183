// Package notion is a minimal client for the document-database query API:
// paginated POST queries and page creation, nothing more. It deliberately has
// no retry or backoff; a failed call surfaces the raw response payload and the
// caller decides whether the failure is fatal or skippable.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/maxepunk/ALN-Ecosystem/internal/errors"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
)

// Client talks to the document-database HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client authenticated with the given bearer token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sort is a single sort instruction in a database query.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// Query describes a database query. Filter is any JSON-marshalable filter
// object in the API's own shape.
type Query struct {
	Filter any    `json:"filter,omitempty"`
	Sorts  []Sort `json:"sorts,omitempty"`
}

// queryBody is the wire form of a query including the pagination cursor.
type queryBody struct {
	Filter      any    `json:"filter,omitempty"`
	Sorts       []Sort `json:"sorts,omitempty"`
	StartCursor string `json:"start_cursor,omitempty"`
}

// queryResponse is one page of query results.
type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// QueryAll fetches every page of a database query, looping on the
// continuation cursor until the server reports no further pages. onPage, if
// non-nil, is called after each page with the running result count.
func (c *Client) QueryAll(ctx context.Context, databaseID string, q Query, onPage func(fetched int)) ([]Page, error) {
	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, databaseID)

	var all []Page
	body := queryBody{Filter: q.Filter, Sorts: q.Sorts}

	for {
		var page queryResponse
		if err := c.post(ctx, url, body, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Results...)
		if onPage != nil {
			onPage(len(all))
		}

		if !page.HasMore || page.NextCursor == nil {
			return all, nil
		}
		body.StartCursor = *page.NextCursor
	}
}

// CreatePageRequest describes a page to create in a database.
type CreatePageRequest struct {
	Parent     Parent         `json:"parent"`
	Properties map[string]any `json:"properties"`
}

// Parent identifies the database a created page belongs to.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// CreatePage creates a new page and returns its ID.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (string, error) {
	url := c.baseURL + "/pages"

	var created Page
	if err := c.post(ctx, url, req, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// post issues a POST with the standard headers and decodes a 2xx response
// into out. Non-2xx responses become UPSTREAM errors carrying the raw body.
func (c *Client) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.NewInternal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.NewInternal(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewUpstream(0, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewUpstream(resp.StatusCode, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewUpstream(resp.StatusCode, string(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.NewUpstream(resp.StatusCode, string(raw))
	}
	return nil
}
