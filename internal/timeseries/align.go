package timeseries

import (
	"slices"
	"time"

	"csstats-backend/pkg/textutil"
)

type CategoryCount struct {
	Name  string
	Count float64
}

// MonthSnapshot is one month's listing of per-category counts, in the order
// the source displays them.
type MonthSnapshot struct {
	Month  time.Time
	Counts []CategoryCount
}

type alignedCategory struct {
	key     string
	display string
}

// AlignMonthly pivots per-month listings into a MonthlyCount table.
//
// Categories are ordered as the most recent month lists them, followed by
// categories missing from it (newest listing first). Names are compared after
// textutil.NormalizeName. A category counts as 0 for the months before it was
// first listed and as missing for later months that do not list it.
func AlignMonthly(snapshots []MonthSnapshot) (Table, error) {
	sorted := slices.Clone(snapshots)
	slices.SortStableFunc(sorted, func(a, b MonthSnapshot) int {
		return a.Month.Compare(b.Month)
	})

	dates := make([]time.Time, len(sorted))
	for i, s := range sorted {
		dates[i] = s.Month
	}
	out := NewTable(dates)
	err := ValidateMonthly(out)
	if err != nil {
		return Table{}, err
	}

	// per month: normalized name -> summed count
	counts := make([]map[string]float64, len(sorted))
	var order []alignedCategory
	seen := map[string]bool{}
	for i := len(sorted) - 1; i >= 0; i-- {
		counts[i] = map[string]float64{}
		for _, c := range sorted[i].Counts {
			key := textutil.NormalizeName(c.Name)
			counts[i][key] += c.Count
			if seen[key] {
				continue
			}
			seen[key] = true
			order = append(order, alignedCategory{key: key, display: c.Name})
		}
	}

	for _, category := range order {
		values := make([]float64, len(sorted))
		listed := false
		for i := range sorted {
			count, ok := counts[i][category.key]
			switch {
			case ok:
				listed = true
				values[i] = count
			case listed:
				values[i] = Missing()
			default:
				values[i] = 0
			}
		}
		err := out.AddColumn(category.display, values)
		if err != nil {
			return Table{}, err
		}
	}

	return out, nil
}

// EnumerateMonths lists the first day of every month from `start`'s month up
// to but excluding `end`'s month.
func EnumerateMonths(start, end time.Time) []time.Time {
	current := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	stop := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, start.Location())

	var months []time.Time
	for current.Before(stop) {
		months = append(months, current)
		current = current.AddDate(0, 1, 0)
	}
	return months
}
