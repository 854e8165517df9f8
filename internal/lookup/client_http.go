package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPClient is the default Client: a JSON GET against a postal-code
// lookup endpoint, GET {base}/pincodes/{code}.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

type HTTPClientOption func(*HTTPClient)

// WithHTTPClient swaps the underlying http.Client, e.g. for custom
// transports or test servers.
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.http = client
	}
}

func NewHTTPClient(baseURL string, opts ...HTTPClientOption) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Lookup(ctx context.Context, code string) (Location, error) {
	url := fmt.Sprintf("%s/pincodes/%s", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("lookup request: unexpected status %d", resp.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return Location{}, fmt.Errorf("decode lookup response: %w", err)
	}
	return loc, nil
}
