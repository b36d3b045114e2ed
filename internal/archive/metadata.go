package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/joncrangle/iadownload/internal/httputil"
	"github.com/joncrangle/iadownload/pkg/types"
)

// metadataResponse mirrors the archive metadata-API JSON envelope.
// A nonexistent item returns an empty object with HTTP 200.
type metadataResponse struct {
	Files    []fileJSON `json:"files"`
	Metadata itemJSON   `json:"metadata"`
}

type fileJSON struct {
	Name   string          `json:"name"`
	Size   types.FlexInt64 `json:"size"`
	Format string          `json:"format"`
}

type itemJSON struct {
	Identifier  types.FlexString `json:"identifier"`
	Title       types.FlexString `json:"title"`
	Creator     types.FlexString `json:"creator"`
	Publisher   types.FlexString `json:"publisher"`
	Date        types.FlexString `json:"date"`
	Subject     types.FlexString `json:"subject"`
	Language    types.FlexString `json:"language"`
	Description types.FlexString `json:"description"`
	CallNumber  types.FlexString `json:"call number"`
}

// FetchItem retrieves an item's descriptive metadata and file listing.
// An identifier that no longer resolves surfaces as *NotFoundError;
// transport failure as *NetworkError.
func (c *Client) FetchItem(ctx context.Context, identifier string) (types.Item, []types.FileEntry, error) {
	req, err := c.newRequest(ctx, metadataAPIBase+url.PathEscape(identifier))
	if err != nil {
		return types.Item{}, nil, err
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return types.Item{}, nil, &NetworkError{Err: fmt.Errorf("metadata request for %s: %w", identifier, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return types.Item{}, nil, &NotFoundError{Identifier: identifier}
	default:
		return types.Item{}, nil, &NetworkError{Err: fmt.Errorf("metadata for %s returned HTTP %d", identifier, resp.StatusCode)}
	}

	var mr metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return types.Item{}, nil, &NetworkError{Err: fmt.Errorf("parsing metadata for %s: %w", identifier, err)}
	}

	// The metadata API answers 200 with an empty body for dark or
	// deleted items.
	if mr.Metadata.Identifier == "" && len(mr.Files) == 0 {
		return types.Item{}, nil, &NotFoundError{Identifier: identifier}
	}

	item := types.Item{
		Identifier:  identifier,
		Title:       mr.Metadata.Title.String(),
		Creator:     mr.Metadata.Creator.String(),
		Publisher:   mr.Metadata.Publisher.String(),
		Date:        mr.Metadata.Date.String(),
		Subject:     mr.Metadata.Subject.String(),
		Language:    mr.Metadata.Language.String(),
		Description: mr.Metadata.Description.String(),
		CallNumber:  mr.Metadata.CallNumber.String(),
	}

	files := make([]types.FileEntry, 0, len(mr.Files))
	for _, f := range mr.Files {
		if f.Name == "" {
			continue
		}
		files = append(files, types.FileEntry{
			Name:   f.Name,
			Size:   int64(f.Size),
			Format: f.Format,
		})
	}
	return item, files, nil
}

// FetchFile streams one file of an item into w and returns the number
// of bytes copied. Failures surface as *NotFoundError or *NetworkError
// so the caller can keep per-file failures recoverable.
func (c *Client) FetchFile(ctx context.Context, identifier, name string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, downloadURL(identifier, name))
	if err != nil {
		return 0, err
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return 0, &NetworkError{Err: fmt.Errorf("download request for %s/%s: %w", identifier, name, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return 0, &NotFoundError{Identifier: identifier + "/" + name}
	default:
		return 0, &NetworkError{Err: fmt.Errorf("download of %s/%s returned HTTP %d", identifier, name, resp.StatusCode)}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &NetworkError{Err: fmt.Errorf("reading %s/%s: %w", identifier, name, err)}
	}
	return n, nil
}
