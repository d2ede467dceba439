package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAlignMonthly(t *testing.T) {
	snapshots := []MonthSnapshot{
		{
			Month: date(2023, time.March, 1),
			Counts: []CategoryCount{
				{Name: "Revolution Case", Count: 2},
				{Name: "Clutch Case", Count: 12},
			},
		},
		{
			Month: date(2023, time.January, 1),
			Counts: []CategoryCount{
				{Name: "Clutch  Case", Count: 10},
				{Name: "Prisma Case", Count: 5},
			},
		},
		{
			Month: date(2023, time.February, 1),
			Counts: []CategoryCount{
				{Name: "prisma case", Count: 6},
				{Name: "Clutch Case", Count: 11},
				{Name: "Revolution Case", Count: 1},
				{Name: "Revolution Case", Count: 0.5},
			},
		},
	}

	monthly, err := AlignMonthly(snapshots)
	if err != nil {
		t.Fatal(err)
	}

	requireTable(t, table(
		t,
		[]time.Time{
			date(2023, time.January, 1),
			date(2023, time.February, 1),
			date(2023, time.March, 1),
		},
		Column{Name: "Revolution Case", Values: []float64{0, 1.5, 2}},
		Column{Name: "Clutch Case", Values: []float64{10, 11, 12}},
		Column{Name: "prisma case", Values: []float64{5, 6, nan}},
	), monthly)
}

func TestAlignMonthlyRejectsGaps(t *testing.T) {
	_, err := AlignMonthly([]MonthSnapshot{
		{Month: date(2023, time.January, 1)},
		{Month: date(2023, time.April, 1)},
	})
	require.ErrorIs(t, err, ErrMonthGap)

	_, err = AlignMonthly([]MonthSnapshot{
		{Month: date(2023, time.January, 1)},
		{Month: date(2023, time.January, 1)},
	})
	require.Error(t, err)
}

func TestEnumerateMonths(t *testing.T) {
	months := EnumerateMonths(date(2023, time.November, 20), date(2024, time.February, 2))
	require.Equal(t, []time.Time{
		date(2023, time.November, 1),
		date(2023, time.December, 1),
		date(2024, time.January, 1),
	}, months)

	require.Empty(t, EnumerateMonths(date(2024, time.February, 1), date(2024, time.February, 28)))
}
