// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive talks to the Internet Archive: catalog search, item
// metadata, and file downloads.
package archive

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/joncrangle/iadownload/pkg/types"
)

// API base URLs. Declared as vars so tests can substitute an
// httptest server.
var (
	scrapeAPIBase   = "https://archive.org/services/search/v1/scrape"
	metadataAPIBase = "https://archive.org/metadata/"
	downloadBase    = "https://archive.org/download/"
)

const defaultPageSize = 1000

// Client issues requests against the archive APIs. One Client serves
// the whole run; each call is independent and nothing is cached.
type Client struct {
	http       *http.Client
	userAgent  string
	pageSize   int
	maxRetries int
}

// NewClient builds a Client from the search-stage configuration.
func NewClient(cfg types.SearchConfig) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		pageSize:   pageSize,
		maxRetries: cfg.MaxRetries,
	}
}

// NewClientWithHTTP builds a Client around an existing http.Client.
// Tests use it to reuse an httptest server's client.
func NewClientWithHTTP(hc *http.Client, cfg types.SearchConfig) *Client {
	c := NewClient(cfg)
	c.http = hc
	return c
}

// newRequest builds a GET request with the configured User-Agent.
func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// downloadURL returns the archive download URL for one file of an item.
func downloadURL(identifier, name string) string {
	return downloadBase + url.PathEscape(identifier) + "/" + url.PathEscape(name)
}
