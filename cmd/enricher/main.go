// Package main provides the enricher command-line tool: it reads a
// spreadsheet of URLs with traffic data, queries Reddit for each URL's
// comment count, and writes the enriched spreadsheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"threadstats/internal/config"
	"threadstats/internal/enrich"
	"threadstats/internal/logger"
	"threadstats/internal/reddit"
	"threadstats/internal/report"
	"threadstats/internal/sheet"
)

const previewRows = 10

func main() {
	configFile := flag.String("config", "", "Path to optional YAML job settings file")

	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}

	inputFile := flag.Arg(0)

	if _, err := os.Stat(inputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: the file '%s' does not exist.\n", inputFile)
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Job.LogLevel)

	// Load and validate the input before any API call is made.
	// Setup failures (bad file, bad schema) are the only errors that
	// change the exit code.
	records, err := sheet.ReadInput(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("Loaded %d URLs from %s", len(records), inputFile))
	log.Info(cfg.String())

	// One authenticated handle, reused for every query. Credentials
	// are exchanged lazily on the first call.
	client := reddit.NewClient(cfg.Reddit)
	enricher := enrich.NewEnricher(client, log, cfg.Job.BatchSize, cfg.Job.Pause())

	output := enricher.Run(context.Background(), records)

	log.Info(fmt.Sprintf("Enriched %d/%d URLs (%d dropped)", len(output), len(records), len(records)-len(output)))

	written, err := sheet.WriteOutput(output, cfg.Job.OutputPath)
	if err != nil {
		// Per-run policy: a late write failure is reported but does
		// not change the exit code, since setup succeeded and all API
		// work is done.
		fmt.Fprintf(os.Stderr, "An unexpected error occurred: %v\n", err)

		return
	}

	fmt.Print(report.Preview(output, previewRows))
	log.Info(fmt.Sprintf("Process completed. Results saved to --> %s", written))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: enricher [-config settings.yaml] <input.xlsx>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Reads an xlsx file with 'URL' and 'Traffic with commercial intents in top 20'")
	fmt.Fprintln(os.Stderr, "columns, fetches each URL's Reddit comment count, and writes url / traffic /")
	fmt.Fprintln(os.Stderr, "comment_count rows to output.xlsx (suffix-incremented if it already exists).")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Credentials are read from REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET,")
	fmt.Fprintln(os.Stderr, "REDDIT_USER_AGENT, REDDIT_USERNAME and REDDIT_PASSWORD (a .env file works).")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}
