package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/cheerioskun/charbrowser/internal/models"
	"github.com/cheerioskun/charbrowser/internal/utils"
)

// maxBodySize caps how much of a response body is read
const maxBodySize = 4 << 20

// StatusError is returned when the catalog answers with an unexpected status
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// Options configures a Client
type Options struct {
	Endpoint string
	Timeout  time.Duration
	Retries  int
	Logger   *utils.Logger
}

// Client queries the character catalog
type Client struct {
	endpoint string
	http     *retryablehttp.Client
}

// NewClient creates a catalog client. Zero options fall back to the public
// endpoint, a 10s timeout and no retries.
func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.HTTPClient = &http.Client{Timeout: opts.Timeout}
	retryClient.Logger = utils.NewHTTPLogger(opts.Logger)

	return &Client{
		endpoint: opts.Endpoint,
		http:     retryClient,
	}
}

// Endpoint returns the base URL queries are built against
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Search performs one GET for the filter and decodes the page. A 404 is the
// catalog's answer for "no matches" and decodes to an empty page.
func (c *Client) Search(ctx context.Context, f models.FilterState) (*models.Page, error) {
	target := BuildURL(c.endpoint, f)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return &models.Page{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, URL: target}
	}

	page := new(models.Page)
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(page); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return page, nil
}
