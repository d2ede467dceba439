package timeseries

import (
	"time"

	"csstats-backend/internal/components/chrono"
)

// Recent is a point-in-time read of a category's counters. Any of the
// figures may be Missing() when the source did not supply it.
type Recent struct {
	Category string
	Daily    float64
	// Weekly is the total over the last 7 days.
	Weekly float64
	// Monthly is the total over the current calendar month.
	Monthly float64
}

// Backfill extends `daily` through `today` and fills the new days from the
// recent counters: today gets the daily figure, unset days among the last 7
// get weekly/7, and unset days since the first of today's month get
// monthly/days-in-month. Days none of these cover stay missing.
//
// Existing rows are never modified. If `today` is not after the last date
// the table is returned as is.
func Backfill(daily Table, recent []Recent, today time.Time) Table {
	out := daily.Clone()

	var start time.Time
	if out.Len() == 0 {
		today = chrono.StartOfDay(today)
		start = chrono.StartOfMonth(today)
	} else {
		last := out.Dates[out.Len()-1]
		today = chrono.StartOfDay(today.In(last.Location()))
		start = last.AddDate(0, 0, 1)
	}
	if start.After(today) {
		return out
	}

	firstNew := out.Len()
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		out.Dates = append(out.Dates, day)
	}
	for i := range out.Columns {
		out.Columns[i].Values = append(
			out.Columns[i].Values,
			missingColumn(out.Len()-firstNew)...,
		)
	}

	todayIdx := out.Len() - 1
	weekStart := today.AddDate(0, 0, -6)
	monthStart := chrono.StartOfMonth(today)
	daysInMonth := float64(chrono.DaysIn(today))

	fill := func(values []float64, from time.Time, value float64) {
		if IsMissing(value) {
			return
		}
		for i := firstNew; i <= todayIdx; i++ {
			if out.Dates[i].Before(from) || !IsMissing(values[i]) {
				continue
			}
			values[i] = value
		}
	}

	for _, r := range recent {
		idx := out.columnIndex(r.Category)
		if idx < 0 {
			out.Columns = append(out.Columns, Column{
				Name:   r.Category,
				Values: missingColumn(out.Len()),
			})
			idx = len(out.Columns) - 1
		}
		values := out.Columns[idx].Values

		if !IsMissing(r.Daily) && IsMissing(values[todayIdx]) {
			values[todayIdx] = r.Daily
		}
		fill(values, weekStart, r.Weekly/7)
		fill(values, monthStart, r.Monthly/daysInMonth)
	}

	return out
}
