package controller

import (
	"context"
	"fmt"

	"github.com/joncrangle/iadownload/internal/report"
	"github.com/joncrangle/iadownload/internal/session"
	"github.com/joncrangle/iadownload/internal/sizecheck"
	"github.com/joncrangle/iadownload/pkg/types"
)

// InteractiveOptions configures one interactive run.
type InteractiveOptions struct {
	// Download carries the HTTP and delay settings for the download
	// stage; TargetDir is filled from the directory prompt.
	Download types.DownloadConfig

	// SessionPath, when set, saves the query and matched identifiers
	// to a YAML session file after the search.
	SessionPath string
}

// RunInteractive drives the full prompt sequence: query, search,
// action, then the chosen stage and its summary. It returns an error
// only for fatal conditions (bad query, unreachable search service,
// unusable target directory); per-item degradation completes normally.
func (r *Runner) RunInteractive(ctx context.Context, p *Prompter, opts InteractiveOptions) error {
	r.Console.Headerf("=== Internet Archive Download Tool ===\n")
	r.Console.Printf("\nExamples of search queries:\n")
	r.Console.Printf("  title:(\"Statutes of the Province of Ontario\") AND collection:(ontario_council_university_libraries)\n")
	r.Console.Printf("  creator:\"Ontario\" AND mediatype:texts\n")
	r.Console.Printf("  collection:americana AND date:[1800 TO 1900]\n\n")

	query, err := p.AskQuery()
	if err != nil {
		return err
	}

	r.Console.Infof("\nSearching Internet Archive...\n")
	it, err := r.Client.Search(ctx, query)
	if err != nil {
		return err
	}
	items, err := it.Collect()
	if err != nil {
		// A failure while listing the search results is fatal; there
		// is no complete item set to degrade to.
		return err
	}
	if len(items) == 0 {
		r.Console.Errorf("No items found for the search query: %s\n", query)
		r.Console.Errorf("Please check your search syntax and try again.\n")
		return fmt.Errorf("no items matched query %q", query)
	}
	r.Console.Successf("Found %d items matching your search.\n", len(items))

	if opts.SessionPath != "" {
		if err := session.Write(opts.SessionPath, query, items, it.Total()); err != nil {
			return err
		}
		r.Console.Successf("Session saved to: %s\n", opts.SessionPath)
	}

	action, err := p.AskAction()
	if err != nil {
		return err
	}

	switch action {
	case ActionSizeCheck:
		return r.interactiveSizeCheck(ctx, p, query, items)
	default:
		return r.interactiveDownload(ctx, p, query, items, opts.Download)
	}
}

func (r *Runner) interactiveSizeCheck(ctx context.Context, p *Prompter, query string, items []string) error {
	res, err := r.RunSizeCheck(ctx, items)
	if err != nil {
		return err
	}
	r.PrintErrorTail(res.Errors)

	r.Console.Successf("\n=== File Size Summary ===\n")
	r.Console.Printf("Search Query: %s\n", query)
	r.Console.Printf("Total Items Scanned: %d\n", len(items))
	r.Console.Printf("Total PDF Files: %d\n", res.Agg.PDFCount())
	r.Console.Printf("Total Size: %s\n\n", sizecheck.FormatSize(res.Agg.GrandTotal()))

	export, err := p.AskConfirm("Export detailed size report to CSV?")
	if err != nil {
		return err
	}
	if export {
		if err := report.WriteSizeReport(SizeReportName, res.Agg.Rows()); err != nil {
			return err
		}
		r.Console.Successf("Size report exported to: %s\n", SizeReportName)
	}
	return nil
}

func (r *Runner) interactiveDownload(ctx context.Context, p *Prompter, query string, items []string, cfg types.DownloadConfig) error {
	dir, err := p.AskDirectory()
	if err != nil {
		return err
	}
	cfg.TargetDir = dir

	r.Console.Successf("\nDownload Settings:\n")
	r.Console.Printf("  Search Query: %s\n", query)
	r.Console.Printf("  Items found: %d\n", len(items))
	r.Console.Printf("  Download location: %s\n\n", dir)

	proceed, err := p.AskConfirm("Proceed with download?")
	if err != nil {
		return err
	}
	if !proceed {
		r.Console.Infof("Download cancelled.\n")
		return nil
	}

	res, err := r.RunDownload(ctx, items, cfg)
	if err != nil {
		return err
	}
	r.PrintErrorTail(res.Errors)

	r.Console.Successf("\n=== Download Summary ===\n")
	r.Console.Printf("Downloaded %d file(s), skipped %d already present, %d failed.\n",
		res.Batch.Downloaded, res.Batch.Skipped, res.Batch.Failed)
	r.Console.Printf("PDFs saved to: %s\n", dir)
	r.Console.Printf("Metadata file created: %s (%d rows)\n", res.CSVPath, res.Rows)
	return nil
}
