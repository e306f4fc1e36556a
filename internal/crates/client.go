// Package crates fetches crate definitions from the crate service.
package crates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crate-blink/internal/domain"
	"crate-blink/internal/storage"
)

// Client implements storage.CrateStore over the crate service REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout. The client configured so far is
// copied first, so a shared *http.Client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// NewClient creates a crate service client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ storage.CrateStore = (*Client)(nil)

// GetByID fetches GET {base}/crates/{id}.
// A 404 maps to storage.ErrNotFound; any other failure wraps domain.ErrCollaboratorUnavailable.
func (c *Client) GetByID(ctx context.Context, id string) (*domain.Crate, error) {
	if strings.TrimSpace(id) == "" {
		return nil, storage.ErrInvalidInput
	}

	endpoint := c.baseURL + "/crates/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: crate service: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, storage.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: crate service returned HTTP %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read crate: %v", domain.ErrCollaboratorUnavailable, err)
	}

	var crate domain.Crate
	if err := json.Unmarshal(body, &crate); err != nil {
		return nil, fmt.Errorf("%w: decode crate: %v", domain.ErrCollaboratorUnavailable, err)
	}
	if crate.ID == "" {
		crate.ID = id
	}

	return &crate, nil
}
