package timeseries

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpandMonthly(t *testing.T) {
	monthly := table(
		t,
		[]time.Time{date(2022, time.January, 1), date(2022, time.February, 1)},
		Column{Name: "A", Values: []float64{31, 28}},
	)

	daily, err := ExpandMonthly(monthly)
	if err != nil {
		t.Fatal(err)
	}

	requireTable(t, table(
		t,
		days(date(2022, time.January, 1), 31+28),
		Column{Name: "A", Values: repeat(1, 31+28)},
	), daily)
}

func TestExpandMonthlySingleMonth(t *testing.T) {
	monthly := table(
		t,
		[]time.Time{date(2024, time.February, 1)},
		Column{Name: "Kilowatt Case", Values: []float64{58}},
		Column{Name: "Recoil Case", Values: []float64{nan}},
	)

	daily, err := ExpandMonthly(monthly)
	if err != nil {
		t.Fatal(err)
	}

	requireTable(t, table(
		t,
		days(date(2024, time.February, 1), 29),
		Column{Name: "Kilowatt Case", Values: repeat(2, 29)},
		Column{Name: "Recoil Case", Values: repeat(nan, 29)},
	), daily)
}

func TestExpandMonthlyPreservesTotals(t *testing.T) {
	rndm := rand.New(rand.NewSource(42))

	months := EnumerateMonths(date(2019, time.January, 1), date(2025, time.January, 1))
	totals := make([]float64, len(months))
	for i := range totals {
		totals[i] = float64(rndm.Intn(5_000_000))
	}
	monthly := table(t, months, Column{Name: "A", Values: totals})

	daily, err := ExpandMonthly(monthly)
	if err != nil {
		t.Fatal(err)
	}

	first := date(2019, time.January, 1)
	last := date(2024, time.December, 31)
	require.Equal(t, first, daily.Dates[0])
	require.Equal(t, last, daily.Dates[daily.Len()-1])
	for i := 1; i < daily.Len(); i++ {
		require.Equal(t, daily.Dates[i-1].AddDate(0, 0, 1), daily.Dates[i])
	}

	column, ok := daily.Column("A")
	require.True(t, ok)
	sums := map[time.Time]float64{}
	for i, d := range daily.Dates {
		sums[time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)] += column.Values[i]
	}
	for i, month := range months {
		require.Equal(t, totals[i], math.Round(sums[month]), month.String())
	}
}

func TestExpandMonthlyRejectsMalformed(t *testing.T) {
	gap := table(
		t,
		[]time.Time{date(2022, time.January, 1), date(2022, time.March, 1)},
		Column{Name: "A", Values: []float64{1, 2}},
	)
	_, err := ExpandMonthly(gap)
	require.ErrorIs(t, err, ErrMonthGap)

	midMonth := table(
		t,
		[]time.Time{date(2022, time.January, 15)},
		Column{Name: "A", Values: []float64{1}},
	)
	_, err = ExpandMonthly(midMonth)
	require.ErrorIs(t, err, ErrNotMonthly)

	backwards := table(
		t,
		[]time.Time{date(2022, time.February, 1), date(2022, time.January, 1)},
	)
	_, err = ExpandMonthly(backwards)
	require.ErrorIs(t, err, ErrShape)
}

func TestExpandMonthlyEmpty(t *testing.T) {
	daily, err := ExpandMonthly(table(t, nil, Column{Name: "A"}))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 0, daily.Len())
	require.Equal(t, []string{"A"}, daily.Categories())
}
