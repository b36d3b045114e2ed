// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/joncrangle/iadownload/internal/httputil"
)

// scrapePage mirrors one page of the scrape-API JSON response. The
// cursor field is absent on the final page.
type scrapePage struct {
	Items []struct {
		Identifier string `json:"identifier"`
	} `json:"items"`
	Total  int64  `json:"total"`
	Cursor string `json:"cursor"`
}

// ItemIterator walks the identifiers matching a search query. Pages
// are fetched from the scrape API on demand, so the sequence is lazy,
// finite, and not restartable; re-running a search needs a new call
// to Client.Search. Ordering is whatever the archive returns.
type ItemIterator struct {
	client *Client
	query  string

	ctx     context.Context
	items   []string
	pos     int
	cursor  string
	total   int64
	done    bool
	lastErr error
}

// Search validates the query against the scrape API by fetching the
// first page of identifiers and returns an iterator over the rest.
// A malformed query surfaces as *QueryError, connectivity failure as
// *NetworkError.
func (c *Client) Search(ctx context.Context, query string) (*ItemIterator, error) {
	it := &ItemIterator{client: c, query: query, ctx: ctx}
	if err := it.fetchPage(""); err != nil {
		return nil, err
	}
	return it, nil
}

// Next returns the next item identifier. ok is false when the sequence
// is exhausted or a page fetch failed; check Err to distinguish.
func (it *ItemIterator) Next() (id string, ok bool) {
	if it.lastErr != nil {
		return "", false
	}
	if it.pos >= len(it.items) {
		if it.done {
			return "", false
		}
		if err := it.fetchPage(it.cursor); err != nil {
			it.lastErr = err
			return "", false
		}
		if it.pos >= len(it.items) {
			return "", false
		}
	}
	id = it.items[it.pos]
	it.pos++
	return id, true
}

// Err returns the error that terminated iteration early, if any.
func (it *ItemIterator) Err() error {
	return it.lastErr
}

// Total returns the archive's reported count of matching items.
func (it *ItemIterator) Total() int64 {
	return it.total
}

// Collect drains the iterator into a slice.
func (it *ItemIterator) Collect() ([]string, error) {
	var ids []string
	for {
		id, ok := it.Next()
		if !ok {
			break
		}
		ids = append(ids, id)
	}
	return ids, it.Err()
}

// fetchPage retrieves one page of identifiers, replacing the buffered
// page and advancing the cursor.
func (it *ItemIterator) fetchPage(cursor string) error {
	q := url.Values{}
	q.Set("q", it.query)
	q.Set("fields", "identifier")
	q.Set("count", strconv.Itoa(it.client.pageSize))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	req, err := it.client.newRequest(it.ctx, scrapeAPIBase+"?"+q.Encode())
	if err != nil {
		return err
	}

	resp, err := httputil.DoWithRetry(it.ctx, it.client.http, req, it.client.maxRetries)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("search request: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &QueryError{Query: it.query, Err: fmt.Errorf("HTTP 400: %s", body)}
	default:
		return &NetworkError{Err: fmt.Errorf("search returned HTTP %d", resp.StatusCode)}
	}

	var page scrapePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return &NetworkError{Err: fmt.Errorf("parsing search response: %w", err)}
	}

	it.items = it.items[:0]
	for _, entry := range page.Items {
		if entry.Identifier != "" {
			it.items = append(it.items, entry.Identifier)
		}
	}
	it.pos = 0
	it.total = page.Total
	it.cursor = page.Cursor
	it.done = page.Cursor == "" || len(page.Items) == 0
	return nil
}
