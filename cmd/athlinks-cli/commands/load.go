package commands

import (
	"log/slog"
	"os"

	"athlinks-backend/lib/scrapers/athlinks"
	"athlinks-backend/lib/serviceutil"
	"athlinks-backend/lib/sqliteutil"
	"athlinks-backend/services/analytics"
	"athlinks-backend/services/analytics/db"

	"github.com/spf13/cobra"
)

var loadDb *string

func init() {
	loadDb = loadCmd.Flags().String("db", "results.db", "The analytics database to write to.")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load <export.csv>... [--db results.db]",
	Short: "Loads previously exported result CSVs into an analytics database.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database, err := sqliteutil.OpenDB(db.Schema, *loadDb)
		if err != nil {
			serviceutil.Fatal("failed to open analytics db", err)
		}
		defer database.Close()
		svc := analytics.NewService(database)

		for _, path := range args {
			file, err := os.Open(path)
			if err != nil {
				slog.Error("failed to open export", "path", path, "err", err)
				continue
			}

			t, err := athlinks.ReadCSV(file)
			file.Close()
			if err != nil {
				slog.Error("failed to parse export", "path", path, "err", err)
				continue
			}

			inserted, err := svc.Ingest(ctx, t, "")
			if err != nil {
				slog.Error("failed to ingest export", "path", path, "err", err)
				continue
			}
			slog.Info("loaded export", "path", path, "rows", inserted)
		}
	},
}
