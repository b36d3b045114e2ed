// Package report writes the run's CSV output files: the per-download
// metadata CSV and the optional per-item filesize report.
package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/joncrangle/iadownload/pkg/types"
)

// csvFile wraps encoding/csv with the header-once contract: the header
// row is written by the constructor, before any record.
type csvFile struct {
	file   *os.File
	writer *csv.Writer
}

func newCSVFile(path string, header []string) (*csvFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}
	return wrapCSVFile(f, header, true)
}

// appendCSVFile opens path for appending, writing the header only when
// the file is new or empty. Re-running a download over the same target
// directory accumulates rows under a single header.
func appendCSVFile(path string, header []string) (*csvFile, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat csv file: %w", err)
	}
	return wrapCSVFile(f, header, info.Size() == 0)
}

func wrapCSVFile(f *os.File, header []string, writeHeader bool) (*csvFile, error) {
	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write csv header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("flush csv header: %w", err)
		}
	}
	return &csvFile{file: f, writer: w}, nil
}

func (c *csvFile) write(record []string) error {
	if err := c.writer.Write(record); err != nil {
		return fmt.Errorf("write csv record: %w", err)
	}
	// Flush per record so an interrupted run keeps everything recorded
	// so far.
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("flush csv record: %w", err)
	}
	return nil
}

func (c *csvFile) close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		c.file.Close()
		return fmt.Errorf("flush csv writer: %w", err)
	}
	return c.file.Close()
}

// MetadataWriter appends one row per downloaded PDF to
// internet_archive_metadata.csv.
type MetadataWriter struct {
	csv  *csvFile
	path string
	rows int
}

// NewMetadataWriter opens the metadata CSV at path for appending. The
// header row is written exactly once, when the file is first created;
// later runs add rows under the existing header.
func NewMetadataWriter(path string) (*MetadataWriter, error) {
	c, err := appendCSVFile(path, types.MetadataHeader)
	if err != nil {
		return nil, err
	}
	return &MetadataWriter{csv: c, path: path}, nil
}

// Write appends one metadata row.
func (w *MetadataWriter) Write(row types.MetadataRow) error {
	if err := w.csv.write(row.Record()); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows returns the number of rows written, excluding the header.
func (w *MetadataWriter) Rows() int { return w.rows }

// Path returns the output file path.
func (w *MetadataWriter) Path() string { return w.path }

// Close flushes and closes the file.
func (w *MetadataWriter) Close() error { return w.csv.close() }

// WriteSizeReport writes the per-item filesize report in one shot.
func WriteSizeReport(path string, rows []types.SizeReportRow) error {
	c, err := newCSVFile(path, types.SizeReportHeader)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := c.write(row.Record()); err != nil {
			c.close()
			return err
		}
	}
	return c.close()
}
