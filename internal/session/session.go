// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session saves a search and its matched item identifiers to a
// YAML file so a later download run can reuse them without re-querying
// the archive.
package session

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// File is the on-disk representation of one search session.
type File struct {
	Query   string   `yaml:"query"`
	Items   []string `yaml:"items"`
	Summary Summary  `yaml:"summary"`
}

// Summary stores result statistics and a timestamp.
type Summary struct {
	Total     int64     `yaml:"total"`
	Collected int       `yaml:"collected"`
	Timestamp time.Time `yaml:"timestamp"`
}

// Write saves a session to path.
func Write(path, query string, items []string, total int64) error {
	f := File{
		Query: query,
		Items: items,
		Summary: Summary{
			Total:     total,
			Collected: len(items),
			Timestamp: time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Read loads a session from path.
func Read(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading session file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if len(f.Items) == 0 {
		return File{}, fmt.Errorf("session file %s lists no items", path)
	}
	return f, nil
}
