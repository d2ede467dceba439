package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestBackfill(t *testing.T) {
	history := table(
		t,
		days(date(2024, time.March, 30), 2),
		Column{Name: "A", Values: []float64{1, 1}},
	)
	recent := []Recent{{Category: "A", Daily: 70, Weekly: 140, Monthly: 300}}

	filled := Backfill(history, recent, time.Date(2024, time.April, 10, 15, 30, 0, 0, time.UTC))

	requireTable(t, table(
		t,
		days(date(2024, time.March, 30), 12),
		Column{Name: "A", Values: concat(
			[]float64{1, 1},
			// Apr 1-3: monthly / 30
			repeat(10, 3),
			// Apr 4-9: weekly / 7
			repeat(20, 6),
			// Apr 10: daily
			[]float64{70},
		)},
	), filled)

	// the input is untouched
	require.Equal(t, 2, history.Len())
	require.Len(t, history.Columns[0].Values, 2)
}

func TestBackfillAcrossMonthBoundary(t *testing.T) {
	history := table(
		t,
		days(date(2024, time.March, 24), 2),
		Column{Name: "A", Values: []float64{4, 4}},
	)

	cases := []struct {
		name     string
		recent   Recent
		expected []float64
	}{
		{
			name:   "all figures",
			recent: Recent{Category: "A", Daily: 5, Weekly: 70, Monthly: 90},
			expected: concat(
				[]float64{4, 4},
				// Mar 26-27 are older than a week and outside April
				[]float64{nan, nan},
				// Mar 28 - Apr 2
				repeat(10, 6),
				[]float64{5},
			),
		},
		{
			name:   "no weekly figure",
			recent: Recent{Category: "A", Daily: 5, Weekly: nan, Monthly: 90},
			expected: concat(
				[]float64{4, 4},
				repeat(nan, 6),
				// Apr 1-2: monthly / 30
				[]float64{3, 3},
				[]float64{5},
			),
		},
		{
			name:   "no daily figure",
			recent: Recent{Category: "A", Daily: nan, Weekly: 70, Monthly: 90},
			expected: concat(
				[]float64{4, 4},
				[]float64{nan, nan},
				repeat(10, 7),
			),
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			filled := Backfill(history, []Recent{test.recent}, date(2024, time.April, 3))
			requireTable(t, table(
				t,
				days(date(2024, time.March, 24), 11),
				Column{Name: "A", Values: test.expected},
			), filled)
		})
	}
}

func TestBackfillIsIdempotent(t *testing.T) {
	history := table(
		t,
		days(date(2024, time.January, 1), 60),
		Column{Name: "A", Values: repeat(3, 60)},
		Column{Name: "B", Values: repeat(nan, 60)},
	)
	recent := []Recent{
		{Category: "B", Daily: 1, Weekly: 14, Monthly: 62},
		{Category: "C", Daily: 9, Weekly: nan, Monthly: nan},
	}
	today := date(2024, time.March, 20)

	once := Backfill(history, recent, today)
	twice := Backfill(once, recent, today)
	requireTable(t, once, twice)

	// a day later only the new day is added
	later := Backfill(once, recent, today.AddDate(0, 0, 1))
	require.Equal(t, once.Len()+1, later.Len())
	for _, c := range once.Columns {
		laterColumn, ok := later.Column(c.Name)
		require.True(t, ok)
		requireTable(
			t,
			table(t, once.Dates, c),
			table(t, once.Dates, Column{Name: c.Name, Values: laterColumn.Values[:once.Len()]}),
		)
	}
}

func TestBackfillTodayInsideHistory(t *testing.T) {
	history := table(
		t,
		days(date(2024, time.January, 1), 10),
		Column{Name: "A", Values: repeat(3, 10)},
	)
	recent := []Recent{{Category: "A", Daily: 100, Weekly: 100, Monthly: 100}}

	requireTable(t, history, Backfill(history, recent, date(2024, time.January, 10)))
	requireTable(t, history, Backfill(history, recent, date(2023, time.December, 1)))
}

func TestBackfillNewCategory(t *testing.T) {
	history := table(
		t,
		days(date(2024, time.May, 1), 2),
		Column{Name: "A", Values: []float64{2, 2}},
	)
	recent := []Recent{{Category: "Gallery Case", Daily: 6, Weekly: 21, Monthly: 31}}

	filled := Backfill(history, recent, date(2024, time.May, 4))

	requireTable(t, table(
		t,
		days(date(2024, time.May, 1), 4),
		Column{Name: "A", Values: []float64{2, 2, nan, nan}},
		Column{Name: "Gallery Case", Values: []float64{nan, nan, 3, 6}},
	), filled)
}

func TestBackfillEmptyHistory(t *testing.T) {
	recent := []Recent{{Category: "A", Daily: 4, Weekly: 14, Monthly: 60}}

	filled := Backfill(NewTable(nil), recent, date(2024, time.June, 3))

	requireTable(t, table(
		t,
		days(date(2024, time.June, 1), 3),
		Column{Name: "A", Values: []float64{2, 2, 4}},
	), filled)
}
