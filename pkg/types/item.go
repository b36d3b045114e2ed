// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the iadownload pipeline:
// archive items and their files, CSV output rows, and per-stage configuration.
package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString decodes an archive metadata value that may arrive as a JSON
// string, number, or list of strings. Lists are joined with "; " so the
// value stays scalar for CSV output.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = FlexString(strings.Join(list, "; "))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	// Mixed-type list; fall back to stringifying each element.
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parts := make([]string, 0, len(raw))
	for _, v := range raw {
		switch t := v.(type) {
		case string:
			parts = append(parts, t)
		case float64:
			parts = append(parts, strconv.FormatFloat(t, 'f', -1, 64))
		}
	}
	*f = FlexString(strings.Join(parts, "; "))
	return nil
}

// String returns the value as a plain string.
func (f FlexString) String() string { return string(f) }

// FlexInt64 decodes a non-negative integer that the archive reports as
// either a JSON number or a quoted string (file sizes use both).
type FlexInt64 int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*f = FlexInt64(n)
	return nil
}

// Item holds the descriptive metadata for one archive catalog entry.
// All fields except Identifier are optional; missing values stay "".
type Item struct {
	// Identifier is the unique item ID within the archive catalog.
	Identifier string `json:"identifier" yaml:"identifier"`

	Title       string `json:"title" yaml:"title"`
	Creator     string `json:"creator" yaml:"creator"`
	Publisher   string `json:"publisher" yaml:"publisher"`
	Date        string `json:"date" yaml:"date"`
	Subject     string `json:"subject" yaml:"subject"`
	Language    string `json:"language" yaml:"language"`
	Description string `json:"description" yaml:"description"`

	// CallNumber is the archive's "call number" metadata field.
	CallNumber string `json:"call_number" yaml:"call_number"`
}

// FileEntry is one file belonging to an Item.
type FileEntry struct {
	// Name is the filename, unique within the item.
	Name string `json:"name"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Format is the archive's format tag (e.g. "Text PDF", "Abbyy GZ").
	Format string `json:"format"`
}

// IsPDF reports whether the entry's format tag indicates a PDF. The
// archive uses tags like "Text PDF" and "Additional Text PDF" rather
// than a bare "PDF", so the check accepts any tag whose lowercased
// value is "pdf" or ends in " pdf".
func (f FileEntry) IsPDF() bool {
	format := strings.ToLower(strings.TrimSpace(f.Format))
	return format == "pdf" || strings.HasSuffix(format, " pdf")
}
