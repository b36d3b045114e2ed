package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joncrangle/iadownload/pkg/types"
)

func TestMetadataWriterHeaderExactlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internet_archive_metadata.csv")

	w, err := NewMetadataWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(types.NewMetadataRow(types.Item{Identifier: "itemA", Title: "A Title"}, "a.pdf")))
	require.NoError(t, w.Write(types.NewMetadataRow(types.Item{Identifier: "itemB"}, "b.pdf")))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"ItemID,FileName,title,creator,publisher,date,subject,language,description,call_number",
		lines[0])
	assert.Equal(t, 1, strings.Count(string(data), "ItemID,FileName"))
}

func TestMetadataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.csv")

	rows := []types.MetadataRow{
		types.NewMetadataRow(types.Item{
			Identifier:  "itemA",
			Title:       `Statutes, "annotated"`,
			Creator:     "Ontario; Legislative Assembly",
			Publisher:   "Queen's Printer",
			Date:        "1897",
			Subject:     "law, statutes",
			Language:    "eng",
			Description: "Line one\nline two",
			CallNumber:  "KF345",
		}, "statutes.pdf"),
		// All optional fields empty.
		types.NewMetadataRow(types.Item{Identifier: "itemB"}, "bare.pdf"),
	}

	w, err := NewMetadataWriter(path)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, w.Write(row))
	}
	assert.Equal(t, 2, w.Rows())
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, types.MetadataHeader, records[0])
	for i, row := range rows {
		assert.Equal(t, row.Record(), records[i+1], "row %d survives the round trip", i)
	}
}

func TestWriteSizeReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filesize_report.csv")

	err := WriteSizeReport(path, []types.SizeReportRow{
		{ItemID: "itemA", TotalPDFBytes: 1000, PDFCount: 1},
		{ItemID: "empty", TotalPDFBytes: 0, PDFCount: 0},
	})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ItemID", "TotalPDFBytes", "PDFCount"}, records[0])
	assert.Equal(t, []string{"itemA", "1000", "1"}, records[1])
	assert.Equal(t, []string{"empty", "0", "0"}, records[2])
}

func TestWriteSizeReportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filesize_report.csv")
	require.NoError(t, WriteSizeReport(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ItemID,TotalPDFBytes,PDFCount\n", string(data))
}

func TestMetadataWriterAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.csv")

	for run := 0; run < 2; run++ {
		w, err := NewMetadataWriter(path)
		require.NoError(t, err)
		require.NoError(t, w.Write(types.NewMetadataRow(types.Item{Identifier: "itemA"}, "a.pdf")))
		require.NoError(t, w.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	// Two runs, one header: three lines total.
	require.Len(t, lines, 3)
	assert.Equal(t, 1, strings.Count(string(data), "ItemID,FileName"))
}

func TestNewMetadataWriterUnwritablePath(t *testing.T) {
	_, err := NewMetadataWriter(filepath.Join(t.TempDir(), "no", "such", "dir.csv"))
	assert.Error(t, err)
}
