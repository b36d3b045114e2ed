// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/joncrangle/iadownload/internal/session"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download PDFs for matching items and record metadata",
	Long: `Download fetches every PDF for items matching the query into the target
directory, skipping files that already exist there, and appends one row
per file to the metadata CSV inside that directory.

Failed items and files are reported at the end; they do not stop the run.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("query", "", "Internet Archive search query")
	downloadCmd.Flags().String("from-session", "", "read the item list from a saved session file instead of searching")
	downloadCmd.Flags().String("dir", ".", "download target directory")
	downloadCmd.Flags().Duration("delay", 0, "pause between file downloads (default 1s)")
	downloadCmd.Flags().String("save", "", "save the search session to a YAML file")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	runner, cleanup, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	query, items, total, err := resolveItems(cmd, runner)
	if err != nil {
		return err
	}
	runner.Console.Successf("Found %d items matching your search.\n", len(items))

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := session.Write(savePath, query, items, total); err != nil {
			return err
		}
		runner.Console.Successf("Session saved to: %s\n", savePath)
	}

	cfg := downloadConfig(cmd)
	cfg.TargetDir, _ = cmd.Flags().GetString("dir")
	if delay, _ := cmd.Flags().GetDuration("delay"); delay > 0 {
		cfg.FileDelay = delay
	}

	res, err := runner.RunDownload(cmd.Context(), items, cfg)
	if err != nil {
		return err
	}
	runner.PrintErrorTail(res.Errors)

	runner.Console.Successf("\n=== Download Summary ===\n")
	runner.Console.Printf("Downloaded %d file(s), skipped %d already present, %d failed.\n",
		res.Batch.Downloaded, res.Batch.Skipped, res.Batch.Failed)
	runner.Console.Printf("Metadata file created: %s (%d rows)\n", res.CSVPath, res.Rows)
	return nil
}
