// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sizecheck sums PDF file sizes across matched items.
package sizecheck

import (
	"fmt"

	"github.com/joncrangle/iadownload/pkg/types"
)

// Aggregator accumulates PDF byte totals over one size-check run. The
// zero value is not usable; construct with NewAggregator. State is
// owned by the single run and discarded with it.
type Aggregator struct {
	reportMode bool
	total      int64
	pdfCount   int
	items      int
	rows       []types.SizeReportRow
}

// NewAggregator returns an empty aggregator. When reportMode is true,
// every accumulated item also produces a SizeReportRow, including
// items with zero PDF files.
func NewAggregator(reportMode bool) *Aggregator {
	return &Aggregator{reportMode: reportMode}
}

// Accumulate filters files to PDFs, adds their sizes to the running
// grand total, and returns the bytes added for this item.
func (a *Aggregator) Accumulate(item types.Item, files []types.FileEntry) int64 {
	var size int64
	count := 0
	for _, f := range files {
		if f.IsPDF() {
			size += f.Size
			count++
		}
	}

	a.total += size
	a.pdfCount += count
	a.items++
	if a.reportMode {
		a.rows = append(a.rows, types.SizeReportRow{
			ItemID:        item.Identifier,
			TotalPDFBytes: size,
			PDFCount:      count,
		})
	}
	return size
}

// GrandTotal returns the summed PDF bytes across all accumulated items.
func (a *Aggregator) GrandTotal() int64 { return a.total }

// PDFCount returns the number of PDF files seen.
func (a *Aggregator) PDFCount() int { return a.pdfCount }

// Items returns the number of items accumulated.
func (a *Aggregator) Items() int { return a.items }

// Rows returns the per-item report rows in accumulation order. Nil
// unless report mode is on.
func (a *Aggregator) Rows() []types.SizeReportRow { return a.rows }

// sizeUnits are binary-prefixed, matching what the archive's own site
// shows for item sizes.
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count in human-readable form ("2.93 MB").
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	size := float64(bytes)
	power := 0
	for size >= 1024 && power < len(sizeUnits)-1 {
		size /= 1024
		power++
	}
	if power == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.2f %s", size, sizeUnits[power])
}
