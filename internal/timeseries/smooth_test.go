package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMovingAverage(t *testing.T) {
	daily := table(
		t,
		days(date(2023, time.May, 1), 5),
		Column{Name: "B", Values: []float64{1, 2, 3, 4, 5}},
	)

	smoothed, err := MovingAverage(daily, 3)
	if err != nil {
		t.Fatal(err)
	}

	requireTable(t, table(
		t,
		days(date(2023, time.May, 1), 5),
		Column{Name: "B", Values: []float64{1, 1.5, 2, 3, 4}},
	), smoothed)
}

func TestMovingAverageSingleDayIsIdentity(t *testing.T) {
	daily := table(
		t,
		days(date(2023, time.December, 30), 6),
		Column{Name: "A", Values: []float64{0.1, 7, nan, 3.3333, 1e9, 2}},
		Column{Name: "B", Values: []float64{5, 4, 3, 2, 1, 0}},
	)

	smoothed, err := MovingAverage(daily, 1)
	if err != nil {
		t.Fatal(err)
	}
	requireTable(t, daily, smoothed)
}

func TestMovingAverageIsCausal(t *testing.T) {
	dates := days(date(2023, time.January, 1), 10)
	original := table(t, dates, Column{Name: "A", Values: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}})
	changed := table(t, dates, Column{Name: "A", Values: []float64{1, 2, 3, 4, 5, 600, 700, 800, 900, 1000}})

	a, err := MovingAverage(original, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MovingAverage(changed, 4)
	if err != nil {
		t.Fatal(err)
	}

	colA, _ := a.Column("A")
	colB, _ := b.Column("A")
	require.Equal(t, colA.Values[:5], colB.Values[:5])
	require.NotEqual(t, colA.Values[5], colB.Values[5])
}

func TestMovingAverageUsesElapsedTime(t *testing.T) {
	dates := []time.Time{
		date(2023, time.January, 1),
		date(2023, time.January, 2),
		date(2023, time.January, 5),
		date(2023, time.January, 6),
	}
	daily := table(t, dates, Column{Name: "A", Values: []float64{1, 2, 5, 6}})

	smoothed, err := MovingAverage(daily, 3)
	if err != nil {
		t.Fatal(err)
	}

	// Jan 5's window is Jan 3..5 and Jan 6's is Jan 4..6, neither reaches Jan 2.
	requireTable(t, table(t, dates, Column{Name: "A", Values: []float64{1, 1.5, 5, 5.5}}), smoothed)
}

func TestMovingAverageSkipsMissing(t *testing.T) {
	dates := days(date(2023, time.January, 1), 5)
	daily := table(t, dates, Column{Name: "A", Values: []float64{nan, nan, 4, nan, 8}})

	smoothed, err := MovingAverage(daily, 2)
	if err != nil {
		t.Fatal(err)
	}
	requireTable(t, table(t, dates, Column{Name: "A", Values: []float64{nan, nan, 4, 4, 8}}), smoothed)
}

func TestMovingAverageInvalidWindow(t *testing.T) {
	_, err := MovingAverage(table(t, days(date(2023, time.January, 1), 2)), 0)
	require.ErrorIs(t, err, ErrInvalidWindow)
}
