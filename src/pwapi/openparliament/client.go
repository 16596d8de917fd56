package openparliament

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public openparliament API host.
	DefaultBaseURL = "https://api.openparliament.ca"

	apiVersion     = "v1"
	defaultTimeout = 15 * time.Second
)

// UpstreamError is any failure reaching or parsing the upstream API. Status
// is zero when the request never produced an HTTP response.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream: %s (HTTP %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("upstream: %s", e.Message)
}

// Pagination is the collection envelope metadata returned by the upstream.
type Pagination struct {
	NextURL     string `json:"next_url"`
	PreviousURL string `json:"previous_url"`
	Count       int    `json:"count"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
}

// Paginated is one page of a collection endpoint.
type Paginated struct {
	Objects    []json.RawMessage `json:"objects"`
	Pagination Pagination        `json:"pagination"`
}

// Client talks to the openparliament read-only API. It performs single
// requests only: no caching, no retries. Callers decide retry policy.
type Client struct {
	baseURL    string
	contact    string
	httpClient *http.Client
}

// NewClient creates an API client. contact is embedded in the User-Agent as
// required by the upstream usage policy; requests without it risk being
// rate-limited or blocked.
func NewClient(baseURL, contact string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		contact: contact,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Fetch performs a GET against path and returns the raw JSON body. The fixed
// format and version parameters are always applied and caller params never
// override them. Any network failure, non-2xx status or unreadable body
// comes back as *UpstreamError.
func (c *Client) Fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("build request for %s: %v", path, err)}
	}

	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("format", "json")
	q.Set("version", apiVersion)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("API-Version", apiVersion)
	req.Header.Set("User-Agent", fmt.Sprintf("parliament-watch/1.0 (%s)", c.contact))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("GET %s: %v", path, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("read %s: %v", path, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("GET %s: unexpected status", path)}
	}

	return body, nil
}

// FetchPage fetches one page of a collection endpoint.
func (c *Client) FetchPage(ctx context.Context, path string, limit, offset int) (*Paginated, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprint(limit))
	params.Set("offset", fmt.Sprint(offset))

	body, err := c.Fetch(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var page Paginated
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("parse page %s: %v", path, err)}
	}
	return &page, nil
}

// FetchDetail follows an object's self-referencing source URL path.
func (c *Client) FetchDetail(ctx context.Context, path string) ([]byte, error) {
	return c.Fetch(ctx, path, nil)
}
