package timeseries

import (
	"fmt"
	"slices"
)

// MovingAverage replaces every value with the mean of the column's
// non-missing values dated within the trailing `windowDays` days, the current
// day included. The window is measured in elapsed days, not rows, so gaps in
// the date index shrink it. Early days use whatever part of the window exists.
func MovingAverage(daily Table, windowDays int) (Table, error) {
	if windowDays < 1 {
		return Table{}, fmt.Errorf("%w: got %d", ErrInvalidWindow, windowDays)
	}
	err := daily.Validate()
	if err != nil {
		return Table{}, err
	}

	// windowStart[i] is the first row inside the window ending on row i
	windowStart := make([]int, daily.Len())
	start := 0
	for i, date := range daily.Dates {
		cutoff := date.AddDate(0, 0, -windowDays)
		for !daily.Dates[start].After(cutoff) {
			start++
		}
		windowStart[i] = start
	}

	out := NewTable(slices.Clone(daily.Dates))
	for _, c := range daily.Columns {
		values := make([]float64, len(c.Values))
		for i := range c.Values {
			sum := 0.0
			count := 0
			for _, v := range c.Values[windowStart[i] : i+1] {
				if IsMissing(v) {
					continue
				}
				sum += v
				count++
			}
			if count == 0 {
				values[i] = Missing()
				continue
			}
			values[i] = sum / float64(count)
		}
		err := out.AddColumn(c.Name, values)
		if err != nil {
			return Table{}, err
		}
	}
	return out, nil
}
