package timeseries

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var nan = Missing()

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func days(start time.Time, n int) []time.Time {
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func repeat(v float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return values
}

func table(t *testing.T, dates []time.Time, columns ...Column) Table {
	t.Helper()
	out := NewTable(dates)
	for _, c := range columns {
		err := out.AddColumn(c.Name, c.Values)
		if err != nil {
			t.Fatal(err)
		}
	}
	return out
}

func requireTable(t *testing.T, expected, actual Table) {
	t.Helper()
	diff := cmp.Diff(
		expected, actual,
		cmpopts.EquateApprox(0, 1e-9),
		cmpopts.EquateNaNs(),
		cmpopts.EquateEmpty(),
	)
	if diff != "" {
		t.Fatal(diff)
	}
}
