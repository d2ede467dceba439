package commands

import (
	"os"
	"strconv"
	"time"

	"csstats-backend/internal/timeseries"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// render writes the table as CSV when --csv is set.
func render(t table.Writer) {
	if *csvOutput {
		t.RenderCSV()
		return
	}
	t.Render()
}

// formatValue leaves missing values blank, tables get 2 decimal places and
// CSV full precision.
func formatValue(v float64) string {
	if timeseries.IsMissing(v) {
		return ""
	}
	precision := 2
	if *csvOutput {
		precision = -1
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func renderSeries(series timeseries.Table) {
	t := newTable()

	header := table.Row{"Date"}
	for _, name := range series.Categories() {
		header = append(header, name)
	}
	t.AppendHeader(header)

	rows := make([]table.Row, series.Len())
	for i, date := range series.Dates {
		row := make(table.Row, 0, len(series.Columns)+1)
		row = append(row, formatDate(date))
		for _, c := range series.Columns {
			row = append(row, formatValue(c.Values[i]))
		}
		rows[i] = row
	}
	t.AppendRows(rows)

	render(t)
}
