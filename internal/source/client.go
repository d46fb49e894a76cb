// Package source fetches the raw model pricing document, either over HTTP
// from the published upstream JSON or from a local file for static builds.
package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"catalogd/internal/catalog"
)

// DefaultURL is the upstream pricing and context-window dataset.
const DefaultURL = "https://raw.githubusercontent.com/BerriAI/litellm/main/model_prices_and_context_window.json"

// Client performs a single HTTP GET of the pricing document per Fetch call.
type Client struct {
	url string
	hc  *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests use this).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// NewClient builds a client for the given URL; empty means DefaultURL.
func NewClient(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	c := &Client{url: url, hc: &http.Client{Timeout: 30 * time.Second}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// URL returns the configured source URL.
func (c *Client) URL() string { return c.url }

// Fetch GETs the document and decodes it. Any transport, status, or decode
// failure comes back as a *FetchError; there is no internal retry.
func (c *Client) Fetch(ctx context.Context) (*catalog.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: c.url, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	doc, err := catalog.DecodeDocument(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	return doc, nil
}
