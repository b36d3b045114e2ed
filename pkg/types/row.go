// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strconv"

// MetadataHeader is the column set for internet_archive_metadata.csv.
// The order is fixed; downstream consumers match columns by name.
var MetadataHeader = []string{
	"ItemID", "FileName", "title", "creator", "publisher", "date",
	"subject", "language", "description", "call_number",
}

// SizeReportHeader is the column set for filesize_report.csv.
var SizeReportHeader = []string{"ItemID", "TotalPDFBytes", "PDFCount"}

// MetadataRow is one CSV record for a downloaded PDF file: the item's
// descriptive fields flattened next to the item ID and filename.
// Missing metadata renders as empty strings, never omitted columns.
type MetadataRow struct {
	ItemID      string
	FileName    string
	Title       string
	Creator     string
	Publisher   string
	Date        string
	Subject     string
	Language    string
	Description string
	CallNumber  string
}

// NewMetadataRow flattens an item's metadata into a row for fileName.
func NewMetadataRow(item Item, fileName string) MetadataRow {
	return MetadataRow{
		ItemID:      item.Identifier,
		FileName:    fileName,
		Title:       item.Title,
		Creator:     item.Creator,
		Publisher:   item.Publisher,
		Date:        item.Date,
		Subject:     item.Subject,
		Language:    item.Language,
		Description: item.Description,
		CallNumber:  item.CallNumber,
	}
}

// Record returns the row as CSV fields in MetadataHeader order.
func (r MetadataRow) Record() []string {
	return []string{
		r.ItemID, r.FileName, r.Title, r.Creator, r.Publisher,
		r.Date, r.Subject, r.Language, r.Description, r.CallNumber,
	}
}

// SizeReportRow is one CSV record in the filesize report: the total
// byte size and count of an item's PDF files. Items with no PDFs still
// produce a row with zeros.
type SizeReportRow struct {
	ItemID        string
	TotalPDFBytes int64
	PDFCount      int
}

// Record returns the row as CSV fields in SizeReportHeader order.
func (r SizeReportRow) Record() []string {
	return []string{
		r.ItemID,
		strconv.FormatInt(r.TotalPDFBytes, 10),
		strconv.Itoa(r.PDFCount),
	}
}
