package cms

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

const maxResponseBytes = 20 << 20 // 20 MB

// HTTPClient fetches collections from the hosted CMS REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a client for baseURL. A zero timeout falls back to 10s.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type itemsResponse struct {
	Items []json.RawMessage `json:"items"`
}

// GetAll issues GET {base}/collections/{name}/items and returns every item.
func (c *HTTPClient) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	endpoint := c.baseURL + "/collections/" + url.PathEscape(collection) + "/items"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms: get %s: %w", collection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("cms: get %s: HTTP %d", collection, resp.StatusCode)
	}

	var body itemsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("cms: decode %s: %w", collection, err)
	}
	if body.Items == nil {
		body.Items = []json.RawMessage{}
	}
	return body.Items, nil
}
