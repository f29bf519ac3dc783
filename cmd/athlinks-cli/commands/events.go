package commands

import (
	"athlinks-backend/lib/scrapers/athlinks"
	"athlinks-backend/lib/serviceutil"
	"athlinks-backend/lib/tableutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(eventsCmd)
}

var eventsCmd = &cobra.Command{
	Use:   "events <master url|master id>",
	Short: "Lists the yearly events grouped under a master event, newest first.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]

		masterID, ok := athlinks.ResolveMasterID(input)
		if !ok {
			if !isDigits(input) {
				serviceutil.Fatal("could not determine master id", errUnresolvable(input))
			}
			masterID = input
		}

		client := newClient()
		events := client.ListChildEvents(cmd.Context(), masterID)

		t := tableutil.NewTable()
		t.AppendHeader(table.Row{"ID", "Name", "Date"})
		for _, event := range events {
			t.AppendRow(table.Row{event.ID, event.Name, event.Date})
		}
		t.Render()
	},
}
