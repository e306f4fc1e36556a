// Package jupiter is a client for the Jupiter swap aggregator API.
package jupiter

import (
	"net/http"
)

// DefaultBaseURL is the public Jupiter v6 API.
const DefaultBaseURL = "https://quote-api.jup.ag/v6"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=jupiter_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the quote and swap endpoints.
type Client struct {
	// baseURL is the API root without trailing slash.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header is sent with every request.
	header http.Header
	// slippage is applied to every quote request.
	slippage SlippageConfig
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithSlippage overrides the default slippage settings.
func WithSlippage(cfg SlippageConfig) Option {
	return func(c *Client) {
		c.slippage = cfg
	}
}

// NewClient creates a new Jupiter API client.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		slippage:   DefaultSlippage(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}
