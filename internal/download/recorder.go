// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import "github.com/joncrangle/iadownload/pkg/types"

// Recorder accumulates one metadata row per downloaded (or confirmed
// present) PDF file, in processing order. Rows are never deduplicated:
// re-running a download over a populated directory records the files
// again even though nothing is re-fetched.
type Recorder struct {
	rows []types.MetadataRow
}

// Record builds and retains a row for fileName and returns it.
func (r *Recorder) Record(item types.Item, fileName string) types.MetadataRow {
	row := types.NewMetadataRow(item, fileName)
	r.rows = append(r.rows, row)
	return row
}

// RecordItem records every filename of one item's download result.
func (r *Recorder) RecordItem(item types.Item, result ItemResult) []types.MetadataRow {
	start := len(r.rows)
	for _, name := range result.Written {
		r.Record(item, name)
	}
	return r.rows[start:]
}

// Rows returns all accumulated rows in order.
func (r *Recorder) Rows() []types.MetadataRow { return r.rows }
