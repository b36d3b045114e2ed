// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sizecheck

import (
	"testing"

	"github.com/joncrangle/iadownload/pkg/types"
)

var (
	itemA = types.Item{Identifier: "itemA"}
	itemB = types.Item{Identifier: "itemB"}

	filesA = []types.FileEntry{
		{Name: "a.pdf", Size: 1000, Format: "Text PDF"},
	}
	filesB = []types.FileEntry{
		{Name: "b.pdf", Size: 2000, Format: "Text PDF"},
		{Name: "b_djvu.txt", Size: 9999, Format: "DjVuTXT"},
	}
)

func TestAccumulateFiltersAndSums(t *testing.T) {
	agg := NewAggregator(false)

	if got := agg.Accumulate(itemA, filesA); got != 1000 {
		t.Errorf("itemA added %d bytes, want 1000", got)
	}
	if got := agg.Accumulate(itemB, filesB); got != 2000 {
		t.Errorf("itemB added %d bytes, want 2000 (non-PDF excluded)", got)
	}

	if agg.GrandTotal() != 3000 {
		t.Errorf("GrandTotal() = %d, want 3000", agg.GrandTotal())
	}
	if agg.PDFCount() != 2 {
		t.Errorf("PDFCount() = %d, want 2", agg.PDFCount())
	}
	if agg.Rows() != nil {
		t.Error("Rows() should be nil without report mode")
	}
}

func TestAccumulateOrderIndependent(t *testing.T) {
	forward := NewAggregator(false)
	forward.Accumulate(itemA, filesA)
	forward.Accumulate(itemB, filesB)

	reverse := NewAggregator(false)
	reverse.Accumulate(itemB, filesB)
	reverse.Accumulate(itemA, filesA)

	if forward.GrandTotal() != reverse.GrandTotal() {
		t.Errorf("order changed the total: %d vs %d", forward.GrandTotal(), reverse.GrandTotal())
	}
}

func TestAccumulateZeroPDFItem(t *testing.T) {
	agg := NewAggregator(true)

	files := []types.FileEntry{
		{Name: "scan.tar", Size: 4096, Format: "Abbyy GZ"},
	}
	if got := agg.Accumulate(types.Item{Identifier: "noPDFs"}, files); got != 0 {
		t.Errorf("added %d bytes, want 0", got)
	}

	rows := agg.Rows()
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1 (zero-PDF items still get a row)", len(rows))
	}
	if rows[0].TotalPDFBytes != 0 || rows[0].PDFCount != 0 {
		t.Errorf("row = %+v, want zeros", rows[0])
	}
}

func TestAccumulateReportRowsKeepOrder(t *testing.T) {
	agg := NewAggregator(true)
	agg.Accumulate(itemA, filesA)
	agg.Accumulate(itemB, filesB)

	rows := agg.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].ItemID != "itemA" || rows[1].ItemID != "itemB" {
		t.Errorf("rows out of order: %+v", rows)
	}
	if rows[1].TotalPDFBytes != 2000 || rows[1].PDFCount != 1 {
		t.Errorf("itemB row = %+v", rows[1])
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{999, "999 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
