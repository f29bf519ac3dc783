package athlinks

import (
	"encoding/csv"
	"io"

	"athlinks-backend/lib/tableutil"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Columns is the exact column order exported files and the analytics layer
// rely on. Renaming or reordering anything here is a breaking change for
// every downstream consumer.
var Columns = []string{
	"Event ID",
	"Event Name",
	"Event Date",
	"Race Type",
	"Name",
	"Gender",
	"Age",
	"Bib",
	"City",
	"State",
	"Country",
	"Time",
	"Pace",
	"Overall Rank",
	"Gender Rank",
	"Division Rank",
	"Status",
}

// MasterIDColumn is the companion column the aggregation layer stamps onto
// per-year exports before concatenating them.
const MasterIDColumn = "Master ID"

// Table is the columnar output contract of the pipeline. An empty scrape
// produces zero records but always the full column set, downstream schema
// checks depend on the columns being present.
type Table struct {
	Columns []string
	Records [][]string
}

func BuildTable(rows []Row) Table {
	t := Table{Columns: append([]string(nil), Columns...)}
	for _, r := range rows {
		t.Records = append(t.Records, []string{
			r.EventID,
			r.EventName,
			r.EventDate,
			r.RaceType,
			r.Name,
			r.Gender,
			r.Age,
			r.Bib,
			r.City,
			r.State,
			r.Country,
			r.Time,
			r.Pace,
			r.OverallRank,
			r.GenderRank,
			r.DivisionRank,
			r.Status,
		})
	}
	return t
}

func (t Table) Empty() bool {
	return len(t.Records) == 0
}

// AddColumn appends a constant-valued column to every record.
func (t *Table) AddColumn(name, value string) {
	t.Columns = append(t.Columns, name)
	for i := range t.Records {
		t.Records[i] = append(t.Records[i], value)
	}
}

// Render pretty-prints the table to stdout and returns the rendered text.
func (t Table) Render() string {
	w := tableutil.NewTable()

	header := make(table.Row, 0, len(t.Columns))
	for _, name := range t.Columns {
		header = append(header, name)
	}
	w.AppendHeader(header)

	for _, record := range t.Records {
		row := make(table.Row, 0, len(record))
		for _, field := range record {
			row = append(row, field)
		}
		w.AppendRow(row)
	}
	return w.Render()
}

func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	err := cw.Write(t.Columns)
	if err != nil {
		return err
	}
	for _, record := range t.Records {
		err = cw.Write(record)
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a table previously written by WriteCSV. The column set is
// whatever the file's header says, so files with the extra master id column
// round-trip unchanged.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{Columns: append([]string(nil), Columns...)}, nil
	}
	return Table{Columns: records[0], Records: records[1:]}, nil
}
