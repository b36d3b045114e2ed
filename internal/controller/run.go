// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/joncrangle/iadownload/internal/archive"
	"github.com/joncrangle/iadownload/internal/console"
	"github.com/joncrangle/iadownload/internal/download"
	"github.com/joncrangle/iadownload/internal/history"
	"github.com/joncrangle/iadownload/internal/report"
	"github.com/joncrangle/iadownload/internal/sizecheck"
	"github.com/joncrangle/iadownload/pkg/types"
)

// MetadataCSVName is the metadata output filename, created inside the
// download target directory.
const MetadataCSVName = "internet_archive_metadata.csv"

// SizeReportName is the filesize report filename, created in the
// working directory.
const SizeReportName = "filesize_report.csv"

// errorTail is how many failure messages the final summary shows.
const errorTail = 5

// Runner executes the size-check and download stages over a list of
// item identifiers. All state is scoped to one run.
type Runner struct {
	Client  *archive.Client
	Console console.Console

	// Out receives stage progress lines (the downloader's per-file
	// status). Usually the same stream the console writes to.
	Out io.Writer

	// History is optional; when set, every processed file is logged.
	History *history.Store
}

// SizeResult holds the outcome of a size-check run.
type SizeResult struct {
	Agg    *sizecheck.Aggregator
	Errors []string
}

// RunSizeCheck fetches metadata for every item and accumulates PDF
// sizes. Per-item failures are collected and the run continues.
func (r *Runner) RunSizeCheck(ctx context.Context, items []string) (SizeResult, error) {
	agg := sizecheck.NewAggregator(true)
	var errLog []string

	r.Console.Successf("\nCalculating total PDF file sizes...\n")
	for i, id := range items {
		if err := ctx.Err(); err != nil {
			return SizeResult{Agg: agg, Errors: errLog}, err
		}
		r.Console.Progressf(i+1, len(items), "Checking")

		item, files, err := r.Client.FetchItem(ctx, id)
		if err != nil {
			errLog = append(errLog, fmt.Sprintf("failed to get metadata for item %s: %v", id, err))
			continue
		}
		agg.Accumulate(item, files)
	}
	r.Console.ProgressDone()

	return SizeResult{Agg: agg, Errors: errLog}, nil
}

// DownloadResult holds the outcome of a download run.
type DownloadResult struct {
	Batch   download.BatchResult
	Rows    int
	CSVPath string
	Errors  []string
}

// RunDownload downloads each item's PDFs into cfg.TargetDir and writes
// one metadata CSV row per file written or confirmed present. Metadata
// rows are flushed incrementally, so an interrupted run keeps every row
// recorded so far. Per-item and per-file failures are collected and the
// run continues; an unusable target directory aborts immediately.
func (r *Runner) RunDownload(ctx context.Context, items []string, cfg types.DownloadConfig) (DownloadResult, error) {
	d := download.NewDownloader(r.Client, cfg)
	if err := d.EnsureTargetDir(); err != nil {
		return DownloadResult{}, err
	}

	csvPath := filepath.Join(cfg.TargetDir, MetadataCSVName)
	writer, err := report.NewMetadataWriter(csvPath)
	if err != nil {
		return DownloadResult{}, &download.WriteError{Path: csvPath, Err: err}
	}
	defer writer.Close()

	var (
		recorder download.Recorder
		batch    download.BatchResult
		errLog   []string
	)

	r.Console.Successf("\nStarting download and metadata collection...\n")
	for i, id := range items {
		if err := ctx.Err(); err != nil {
			return DownloadResult{Batch: batch, Rows: writer.Rows(), CSVPath: csvPath, Errors: errLog}, err
		}
		r.Console.Printf("[%d/%d] %s\n", i+1, len(items), id)

		item, files, err := r.Client.FetchItem(ctx, id)
		if err != nil {
			errLog = append(errLog, fmt.Sprintf("failed to process item %s: %v", id, err))
			r.recordHistory(ctx, id, "", 0, history.OutcomeFailed)
			continue
		}

		result, err := d.DownloadItem(ctx, item, files, r.Out)
		if err != nil {
			// Write errors are fatal for the whole run.
			return DownloadResult{Batch: batch, Rows: writer.Rows(), CSVPath: csvPath, Errors: errLog}, err
		}
		batch.Add(result)
		if result.Failed > 0 {
			errLog = append(errLog, fmt.Sprintf("item %s: %d file(s) failed", id, result.Failed))
		}

		for _, row := range recorder.RecordItem(item, result) {
			if err := writer.Write(row); err != nil {
				return DownloadResult{Batch: batch, Rows: writer.Rows(), CSVPath: csvPath, Errors: errLog},
					&download.WriteError{Path: csvPath, Err: err}
			}
		}
		r.recordItemHistory(ctx, item, files, result)
	}

	return DownloadResult{Batch: batch, Rows: writer.Rows(), CSVPath: csvPath, Errors: errLog}, nil
}

// recordItemHistory logs each written file, using the listed size for
// downloaded files.
func (r *Runner) recordItemHistory(ctx context.Context, item types.Item, files []types.FileEntry, result download.ItemResult) {
	if r.History == nil {
		return
	}
	sizes := make(map[string]int64, len(files))
	for _, f := range files {
		sizes[f.Name] = f.Size
	}
	for _, name := range result.Written {
		outcome := history.OutcomeDownloaded
		if result.WasSkipped(name) {
			outcome = history.OutcomeSkipped
		}
		r.recordHistory(ctx, item.Identifier, name, sizes[name], outcome)
	}
}

func (r *Runner) recordHistory(ctx context.Context, itemID, fileName string, bytes int64, outcome history.Outcome) {
	if r.History == nil {
		return
	}
	// History is best-effort; a failed insert never disturbs the run.
	_ = r.History.Record(ctx, history.Entry{
		ItemID:   itemID,
		FileName: fileName,
		Bytes:    bytes,
		Outcome:  outcome,
	})
}

// PrintErrorTail shows the last few collected failures, the way the
// final summary reports a degraded run.
func (r *Runner) PrintErrorTail(errLog []string) {
	if len(errLog) == 0 {
		return
	}
	r.Console.Errorf("\nEncountered %d error(s):\n", len(errLog))
	start := 0
	if len(errLog) > errorTail {
		start = len(errLog) - errorTail
	}
	for _, msg := range errLog[start:] {
		r.Console.Errorf(" - %s\n", msg)
	}
	if start > 0 {
		r.Console.Errorf(" ... and %d more\n", start)
	}
}
