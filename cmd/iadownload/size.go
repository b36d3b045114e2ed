// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/joncrangle/iadownload/internal/controller"
	"github.com/joncrangle/iadownload/internal/report"
	"github.com/joncrangle/iadownload/internal/sizecheck"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Report aggregate PDF size for matching items",
	Long: `Size fetches metadata for every item matching the query and prints the
total PDF byte count without downloading anything. Pass --report to also
write the per-item breakdown to a CSV.`,
	RunE: runSize,
}

func init() {
	sizeCmd.Flags().String("query", "", "Internet Archive search query")
	sizeCmd.Flags().String("from-session", "", "read the item list from a saved session file instead of searching")
	sizeCmd.Flags().Bool("report", false, "write the per-item size report CSV")
	sizeCmd.Flags().String("report-file", controller.SizeReportName, "size report output path")

	rootCmd.AddCommand(sizeCmd)
}

func runSize(cmd *cobra.Command, args []string) error {
	runner, cleanup, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	query, items, _, err := resolveItems(cmd, runner)
	if err != nil {
		return err
	}
	runner.Console.Successf("Found %d items matching your search.\n", len(items))

	res, err := runner.RunSizeCheck(cmd.Context(), items)
	if err != nil {
		return err
	}
	runner.PrintErrorTail(res.Errors)

	runner.Console.Successf("\n=== File Size Summary ===\n")
	runner.Console.Printf("Search Query: %s\n", query)
	runner.Console.Printf("Total Items Scanned: %d\n", len(items))
	runner.Console.Printf("Total PDF Files: %d\n", res.Agg.PDFCount())
	runner.Console.Printf("Total Size: %s\n", sizecheck.FormatSize(res.Agg.GrandTotal()))

	if export, _ := cmd.Flags().GetBool("report"); export {
		path, _ := cmd.Flags().GetString("report-file")
		if err := report.WriteSizeReport(path, res.Agg.Rows()); err != nil {
			return err
		}
		runner.Console.Successf("Size report exported to: %s\n", path)
	}
	return nil
}
