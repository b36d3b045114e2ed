// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the iadownload CLI.
//
// Run bare, it walks the interactive prompt sequence: search query,
// action choice, and download directory. The size, download, and
// history subcommands expose the same stages non-interactively for
// scripting.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joncrangle/iadownload/internal/archive"
	"github.com/joncrangle/iadownload/internal/console"
	"github.com/joncrangle/iadownload/internal/controller"
	"github.com/joncrangle/iadownload/internal/history"
	"github.com/joncrangle/iadownload/internal/session"
	"github.com/joncrangle/iadownload/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "iadownload/0.1"
)

// rootCmd is the base command; running it with no subcommand starts
// the interactive flow.
var rootCmd = &cobra.Command{
	Use:   "iadownload",
	Short: "Search the Internet Archive and download PDFs",
	Long: `iadownload searches the Internet Archive catalog, reports aggregate PDF
file sizes for matching items, and downloads those PDFs while recording
per-file metadata to a CSV.

Run without a subcommand for the interactive prompt sequence, or use
the size and download subcommands directly.`,
	RunE: runInteractive,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./iadownload.yaml or ~/.config/iadownload/config.yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	rootCmd.PersistentFlags().String("history", "", "SQLite file recording download outcomes (default: none)")

	rootCmd.Flags().String("save", "", "save the search session to a YAML file")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("iadownload")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "iadownload"))
		}
	}

	viper.SetEnvPrefix("IADOWNLOAD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// httpConfig resolves the shared HTTP settings: flag, then config
// file, then default.
func httpConfig(cmd *cobra.Command) types.HTTPConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("http.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	userAgent := viper.GetString("http.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return types.HTTPConfig{Timeout: timeout, UserAgent: userAgent}
}

func searchConfig(cmd *cobra.Command) types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: httpConfig(cmd),
		PageSize:   viper.GetInt("search.page_size"),
		MaxRetries: viper.GetInt("search.max_retries"),
	}
}

func downloadConfig(cmd *cobra.Command) types.DownloadConfig {
	delay := viper.GetDuration("download.file_delay")
	if delay == 0 {
		delay = defaultDelay
	}
	return types.DownloadConfig{
		HTTPConfig: httpConfig(cmd),
		FileDelay:  delay,
	}
}

// openHistory opens the history store when a path is configured via
// flag or config file. A nil store disables history.
func openHistory(cmd *cobra.Command) (*history.Store, error) {
	path, _ := cmd.Flags().GetString("history")
	if path == "" {
		path = viper.GetString("history.path")
	}
	if path == "" {
		return nil, nil
	}
	return history.Open(types.HistoryConfig{
		Path:       path,
		MaxResults: viper.GetInt("history.max_results"),
	})
}

func newRunner(cmd *cobra.Command) (*controller.Runner, func(), error) {
	hist, err := openHistory(cmd)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if hist != nil {
			hist.Close()
		}
	}

	cons := console.New(os.Stdout)
	return &controller.Runner{
		Client:  archive.NewClient(searchConfig(cmd)),
		Console: cons,
		Out:     os.Stdout,
		History: hist,
	}, cleanup, nil
}

// resolveItems produces the item list either from a saved session or
// by running the search now.
func resolveItems(cmd *cobra.Command, runner *controller.Runner) (query string, items []string, total int64, err error) {
	sessionPath, _ := cmd.Flags().GetString("from-session")
	if sessionPath != "" {
		f, err := session.Read(sessionPath)
		if err != nil {
			return "", nil, 0, err
		}
		return f.Query, f.Items, f.Summary.Total, nil
	}

	query, _ = cmd.Flags().GetString("query")
	if query == "" {
		return "", nil, 0, fmt.Errorf("provide --query or --from-session")
	}

	it, err := runner.Client.Search(cmd.Context(), query)
	if err != nil {
		return "", nil, 0, err
	}
	items, err = it.Collect()
	if err != nil {
		return "", nil, 0, err
	}
	if len(items) == 0 {
		return "", nil, 0, fmt.Errorf("no items matched query %q", query)
	}
	return query, items, it.Total(), nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	runner, cleanup, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	savePath, _ := cmd.Flags().GetString("save")
	prompter := controller.NewPrompter(os.Stdin, runner.Console)

	return runner.RunInteractive(cmd.Context(), prompter, controller.InteractiveOptions{
		Download:    downloadConfig(cmd),
		SessionPath: savePath,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
