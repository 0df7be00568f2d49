package hn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Searcher returns the stories matching a query.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Story, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Client talks to the Algolia search API.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

const (
	DefaultEndpoint       = "https://hn.algolia.com/api/v1/search"
	defaultUserAgent      = "hnstories/0.1"
	defaultTimeout        = 10 * time.Second
	defaultRequestsPerSec = 5
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative disables
// limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the given search endpoint. An empty endpoint
// uses DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{
		endpoint: u,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:   rate.NewLimiter(defaultRequestsPerSec, 1),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search queries the endpoint and returns the matching stories in the order
// the API ranked them.
func (c *Client) Search(ctx context.Context, query string) ([]Story, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	reqURL := *c.endpoint
	values := reqURL.Query()
	values.Set("query", query)
	reqURL.RawQuery = values.Encode()

	var payload SearchResponse
	if err := c.get(ctx, &reqURL, &payload); err != nil {
		return nil, err
	}
	return payload.Stories(), nil
}

func (c *Client) get(ctx context.Context, reqURL *url.URL, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api %s returned status %d", reqURL.Path, resp.StatusCode)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := decoder.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return errors.New("decode response: unexpected data after JSON body")
	}
	return nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", endpoint)
	}
	u.Fragment = ""
	return u, nil
}
