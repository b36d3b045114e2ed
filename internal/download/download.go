// Package download writes matched PDF files to the target directory and
// records per-file metadata rows.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joncrangle/iadownload/internal/archive"
	"github.com/joncrangle/iadownload/pkg/types"
)

// WriteError indicates the target directory is unusable. Fatal for the
// whole run.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsWriteError reports whether err wraps a *WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// ItemResult holds the outcome of downloading one item's PDFs.
type ItemResult struct {
	Downloaded int
	Skipped    int
	Failed     int

	// Written lists filenames written or confirmed present, in file
	// listing order. MetadataRecorder emits one row per entry.
	Written []string

	// SkippedNames is the subset of Written that was already on disk.
	SkippedNames []string
}

// WasSkipped reports whether name was confirmed present rather than
// downloaded this run.
func (r ItemResult) WasSkipped(name string) bool {
	for _, s := range r.SkippedNames {
		if s == name {
			return true
		}
	}
	return false
}

// BatchResult accumulates outcomes across items.
type BatchResult struct {
	Items      int
	Downloaded int
	Skipped    int
	Failed     int
	Bytes      int64
}

// Add folds one item's result into the batch totals.
func (b *BatchResult) Add(r ItemResult) {
	b.Items++
	b.Downloaded += r.Downloaded
	b.Skipped += r.Skipped
	b.Failed += r.Failed
}

// HasFailures reports whether any file failed.
func (b BatchResult) HasFailures() bool { return b.Failed > 0 }

// Downloader fetches an item's PDF files into a target directory,
// one file at a time.
type Downloader struct {
	client *archive.Client
	cfg    types.DownloadConfig
}

// NewDownloader builds a Downloader for one run.
func NewDownloader(client *archive.Client, cfg types.DownloadConfig) *Downloader {
	return &Downloader{client: client, cfg: cfg}
}

// EnsureTargetDir creates the target directory if absent and probes
// that it is writable. Returns *WriteError on failure.
func (d *Downloader) EnsureTargetDir() error {
	dir := d.cfg.TargetDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: dir, Err: err}
	}
	probe, err := os.CreateTemp(dir, ".iadownload-probe-*")
	if err != nil {
		return &WriteError{Path: dir, Err: err}
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

// DownloadItem fetches each of the item's PDF files that is not already
// present in the target directory. A file of the same name on disk is
// treated as already downloaded; no content check is made, so a
// truncated earlier download is never re-fetched. Per-file network
// failures are reported on w and counted, never propagated; a
// *WriteError aborts immediately.
func (d *Downloader) DownloadItem(ctx context.Context, item types.Item, files []types.FileEntry, w io.Writer) (ItemResult, error) {
	var result ItemResult
	first := true

	for _, f := range files {
		if !f.IsPDF() {
			continue
		}

		dest := filepath.Join(d.cfg.TargetDir, f.Name)
		if _, err := os.Stat(dest); err == nil {
			fmt.Fprintf(w, "  skipped: %s (already exists)\n", f.Name)
			result.Skipped++
			result.Written = append(result.Written, f.Name)
			result.SkippedNames = append(result.SkippedNames, f.Name)
			continue
		}

		if !first && d.cfg.FileDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(d.cfg.FileDelay):
			}
		}
		first = false

		fmt.Fprintf(w, "  downloading: %s (%s)\n", f.Name, sizeLabel(f.Size))
		if err := d.downloadFile(ctx, item.Identifier, f.Name, dest); err != nil {
			if IsWriteError(err) {
				return result, err
			}
			fmt.Fprintf(w, "  failed: %s (%v)\n", f.Name, err)
			result.Failed++
			continue
		}
		result.Downloaded++
		result.Written = append(result.Written, f.Name)
	}
	return result, nil
}

// downloadFile streams one file into a temp file in the target
// directory and renames it into place on success, so an interrupted
// download never leaves a plausible-looking partial file at the final
// name.
func (d *Downloader) downloadFile(ctx context.Context, identifier, name, destPath string) error {
	tmpFile, err := os.CreateTemp(d.cfg.TargetDir, ".iadownload-*.tmp")
	if err != nil {
		return &WriteError{Path: d.cfg.TargetDir, Err: err}
	}
	tmpPath := tmpFile.Name()

	_, fetchErr := d.client.FetchFile(ctx, identifier, name, tmpFile)
	closeErr := tmpFile.Close()
	if fetchErr != nil {
		os.Remove(tmpPath)
		return fetchErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: destPath, Err: closeErr}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: destPath, Err: err}
	}
	return nil
}

func sizeLabel(bytes int64) string {
	if bytes <= 0 {
		return "size unknown"
	}
	return fmt.Sprintf("%d bytes", bytes)
}
