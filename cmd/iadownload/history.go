// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/joncrangle/iadownload/internal/sizecheck"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent download outcomes",
	Long: `History lists the most recent entries from the download history
database. Requires a history path via --history, the config file, or
the IADOWNLOAD_HISTORY_PATH environment variable.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum entries to show (default from config)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("no history database configured; pass --history or set history.path")
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No history entries recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RECORDED\tOUTCOME\tITEM\tFILE\tSIZE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.RecordedAt.Local().Format(time.DateTime),
			e.Outcome, e.ItemID, e.FileName,
			sizecheck.FormatSize(e.Bytes))
	}
	return w.Flush()
}
