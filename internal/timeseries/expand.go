package timeseries

import (
	"time"

	"csstats-backend/internal/components/chrono"
)

// ExpandMonthly redistributes every monthly total uniformly over the days of
// its month, producing one row per calendar day from the first day of the
// first month to the last day of the last month.
func ExpandMonthly(monthly Table) (Table, error) {
	err := ValidateMonthly(monthly)
	if err != nil {
		return Table{}, err
	}
	if monthly.Len() == 0 {
		out := NewTable(nil)
		for _, c := range monthly.Columns {
			out.Columns = append(out.Columns, Column{Name: c.Name})
		}
		return out, nil
	}

	first := monthly.Dates[0]
	end := monthly.Dates[monthly.Len()-1].AddDate(0, 1, 0)

	var dates []time.Time
	// monthOf[i] is the index in `monthly` of the month containing dates[i]
	var monthOf []int
	month := 0
	for day := first; day.Before(end); day = day.AddDate(0, 0, 1) {
		if month+1 < monthly.Len() && !day.Before(monthly.Dates[month+1]) {
			month++
		}
		dates = append(dates, day)
		monthOf = append(monthOf, month)
	}

	out := NewTable(dates)
	for _, c := range monthly.Columns {
		rates := make([]float64, len(c.Values))
		for i, v := range c.Values {
			rates[i] = v / float64(chrono.DaysIn(monthly.Dates[i]))
		}

		values := make([]float64, len(dates))
		for i := range dates {
			values[i] = rates[monthOf[i]]
		}
		err := out.AddColumn(c.Name, values)
		if err != nil {
			return Table{}, err
		}
	}
	return out, nil
}
