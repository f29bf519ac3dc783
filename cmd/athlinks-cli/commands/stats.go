package commands

import (
	"fmt"

	"athlinks-backend/lib/serviceutil"
	"athlinks-backend/lib/sqliteutil"
	"athlinks-backend/lib/tableutil"
	"athlinks-backend/services/analytics"
	"athlinks-backend/services/analytics/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statsDb *string

func init() {
	statsDb = statsCmd.Flags().String("db", "results.db", "The analytics database to read.")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [--db results.db]",
	Short: "Prints overview stats and the hall of fame from an analytics database.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database, err := sqliteutil.OpenDB(db.Schema, *statsDb)
		if err != nil {
			serviceutil.Fatal("failed to open analytics db", err)
		}
		defer database.Close()
		svc := analytics.NewService(database)

		overview, err := svc.Overview(ctx)
		if err != nil {
			serviceutil.Fatal("failed to query overview", err)
		}

		t := tableutil.NewTable()
		t.AppendHeader(table.Row{"Total Runners", "Average Pace", "Fastest Time", "Slowest Time"})
		t.AppendRow(table.Row{
			overview.TotalRunners,
			fmt.Sprintf("%s /mi", analytics.FormatPaceSeconds(int(overview.AvgPaceSeconds))),
			overview.FastestTime,
			overview.SlowestTime,
		})
		t.Render()

		hof, err := svc.HallOfFame(ctx)
		if err != nil {
			serviceutil.Fatal("failed to query hall of fame", err)
		}
		if len(hof) == 0 {
			return
		}

		t = tableutil.NewTable()
		t.AppendHeader(table.Row{"Name", "Races", "Best Pace"})
		for _, runner := range hof {
			t.AppendRow(table.Row{runner.Name, runner.RaceCount, runner.BestPace})
		}
		t.Render()
	},
}
