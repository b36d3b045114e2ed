package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "iadownload/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of identifiers requested per scrape-API page.
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxRetries bounds retries on HTTP 429 responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// DownloadConfig holds settings for the download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// FileDelay is the delay between consecutive file downloads.
	FileDelay time.Duration `json:"file_delay" yaml:"file_delay"`

	// TargetDir is the directory PDFs are written to.
	TargetDir string `json:"target_dir" yaml:"target_dir"`
}

// HistoryConfig holds settings for the optional download history log.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Download DownloadConfig `json:"download" yaml:"download"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}
