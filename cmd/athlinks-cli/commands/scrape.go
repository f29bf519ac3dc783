package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"athlinks-backend/lib/configutil"
	"athlinks-backend/lib/scrapers/athlinks"
	"athlinks-backend/lib/serviceutil"
	"athlinks-backend/lib/sqliteutil"
	"athlinks-backend/lib/telemetry"
	"athlinks-backend/services/analytics"
	"athlinks-backend/services/analytics/db"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseUrl string `json:"base_url"`
	Debug   bool   `json:"debug"`
}

var (
	scrapeOutput    *string
	scrapeOutputDir *string
	scrapeAllYears  *bool
	scrapeDb        *string
)

func init() {
	scrapeOutput = scrapeCmd.Flags().StringP("output", "o", "", "Output CSV filename.")
	scrapeOutputDir = scrapeCmd.Flags().StringP("output-dir", "d", "", "Output directory. Filenames are generated from the event name.")
	scrapeAllYears = scrapeCmd.Flags().Bool("all-years", false, "If a master event URL is provided, scrape all past years.")
	scrapeDb = scrapeCmd.Flags().String("db", "", "Also ingest results into this analytics database.")
	rootCmd.AddCommand(scrapeCmd)
}

func newClient() *athlinks.Client {
	baseUrl := athlinks.DefaultBaseUrl
	cfg, err := configutil.ReadConfig[Config]("athlinks.json5")
	if err == nil {
		if cfg.BaseUrl != "" {
			baseUrl = cfg.BaseUrl
		}
		if cfg.Debug {
			telemetry.InitSlog(true)
		}
	}
	return athlinks.NewClient(baseUrl)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url|event id> [-o out.csv | -d outdir/] [--all-years] [--db results.db]",
	Short: "Scrapes race results to CSV, optionally ingesting them into an analytics database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client := newClient()
		input := args[0]

		if eventID, ok := athlinks.ResolveEventID(input); ok {
			processEvent(ctx, client, eventID, "")
			return
		}

		if masterID, ok := athlinks.ResolveMasterID(input); ok {
			scrapeMaster(ctx, client, masterID)
			return
		}

		if isDigits(input) {
			processEvent(ctx, client, input, "")
			return
		}

		serviceutil.Fatal("could not determine event id", errUnresolvable(input))
	},
}

type errUnresolvable string

func (e errUnresolvable) Error() string {
	return "input is neither an athlinks URL nor a numeric event id: " + string(e)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func scrapeMaster(ctx context.Context, client *athlinks.Client, masterID string) {
	slog.Info("detected master event", "master_id", masterID)

	events := client.ListChildEvents(ctx, masterID)
	if len(events) == 0 {
		slog.Info("no events found for this master id", "master_id", masterID)
		return
	}

	if *scrapeAllYears {
		slog.Info("scraping all years", "count", len(events))
		for _, event := range events {
			slog.Info("processing event", "name", event.Name, "date", event.Date)
			processEvent(ctx, client, strconv.FormatInt(event.ID, 10), masterID)
		}
		return
	}

	latest := events[0]
	slog.Info("scraping latest event", "name", latest.Name, "date", latest.Date, "count", len(events))
	processEvent(ctx, client, strconv.FormatInt(latest.ID, 10), masterID)
}

// processEvent runs the full fetch-flatten-export pipeline for one event.
// Failures are reported and skipped rather than aborting a multi-year run.
func processEvent(ctx context.Context, client *athlinks.Client, eventID, masterID string) {
	slog.Info("scraping results", "event_id", eventID)

	meta := client.GetEventMetadata(ctx, eventID)
	blocks, err := client.FetchAllResults(ctx, eventID)
	if err != nil {
		slog.Warn("fetch ended early, export may be incomplete", "event_id", eventID, "err", err)
	}

	table := athlinks.BuildTable(athlinks.Flatten(blocks, meta))
	if table.Empty() {
		slog.Info("no results found", "event_id", eventID)
		return
	}
	if masterID != "" {
		table.AddColumn(athlinks.MasterIDColumn, masterID)
	}

	// long exports only preview the first rows
	preview := table
	if len(preview.Records) > 10 {
		preview.Records = preview.Records[:10]
	}
	preview.Render()

	path := outputPath(table)
	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create output file", "path", path, "err", err)
		return
	}
	defer file.Close()

	err = table.WriteCSV(file)
	if err != nil {
		slog.Error("failed to write csv", "path", path, "err", err)
		return
	}
	slog.Info("saved results", "rows", len(table.Records), "path", path)

	if *scrapeDb != "" {
		ingest(ctx, table, masterID)
	}
}

func ingest(ctx context.Context, table athlinks.Table, masterID string) {
	database, err := sqliteutil.OpenDB(db.Schema, *scrapeDb)
	if err != nil {
		slog.Error("failed to open analytics db", "path", *scrapeDb, "err", err)
		return
	}
	defer database.Close()

	inserted, err := analytics.NewService(database).Ingest(ctx, table, masterID)
	if err != nil {
		slog.Error("failed to ingest results", "err", err)
		return
	}
	slog.Info("ingested results", "rows", inserted, "db", *scrapeDb)
}

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

func sanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, " ", "_")
}

func outputPath(table athlinks.Table) string {
	if *scrapeOutput != "" {
		return *scrapeOutput
	}
	if *scrapeOutputDir != "" {
		// first record carries the event fields, every row of one export
		// shares them
		eventName := table.Records[0][1]
		eventID := table.Records[0][0]
		name := sanitizeFilename(eventName + "_" + eventID)

		os.MkdirAll(*scrapeOutputDir, 0755)
		return filepath.Join(*scrapeOutputDir, name+".csv")
	}
	return "results.csv"
}
