package commands

import (
	"athlinks-backend/lib/serviceutil"
	"athlinks-backend/lib/sqliteutil"
	"athlinks-backend/lib/telemetry"
	"athlinks-backend/services/analytics"
	"athlinks-backend/services/analytics/db"

	"github.com/spf13/cobra"
)

var (
	serveDb   *string
	servePort *int
)

func init() {
	serveDb = serveCmd.Flags().String("db", "results.db", "The analytics database to serve.")
	servePort = serveCmd.Flags().Int("port", 8111, "The port to listen on.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--db results.db] [--port 8111]",
	Short: "Serves the analytics queries as a JSON API for the dashboard.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *serveDb)
		if err != nil {
			serviceutil.Fatal("failed to open analytics db", err)
		}
		defer database.Close()

		telemetry.InstrumentPerfStats(cmd.Context())

		mux := analytics.NewServeMux(analytics.NewService(database))
		serviceutil.StartHttpServer(*servePort, mux)
	},
}
