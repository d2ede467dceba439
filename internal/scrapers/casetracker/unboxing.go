package casetracker

import (
	"context"

	"csstats-backend/internal/timeseries"
	"csstats-backend/pkg/textutil"
)

const (
	pathDaily   = "/calculations/calcDaily.csv"
	pathWeekly  = "/calculations/calcWeekly.csv"
	pathMonthly = "/calculations/calculation.csv"
	pathTotal   = "/calculations/calculationTotal.csv"
)

// UnboxingCount is a case's unboxing figures as currently published, any of
// them may be timeseries.Missing().
type UnboxingCount struct {
	Name    string
	Total   float64
	Monthly float64
	Weekly  float64
	Daily   float64
}

// listingTotals sums the rows of a listing by textutil.NormalizeName, `order`
// holds each case's first-seen row with the summed count.
type listingTotals struct {
	order  []listingRow
	counts map[string]float64
}

func sumListing(rows []listingRow) listingTotals {
	totals := listingTotals{counts: make(map[string]float64, len(rows))}
	for _, r := range rows {
		key := textutil.NormalizeName(r.name)
		if _, ok := totals.counts[key]; !ok {
			totals.order = append(totals.order, r)
		}
		totals.counts[key] += r.count
	}
	for i, r := range totals.order {
		totals.order[i].count = totals.counts[textutil.NormalizeName(r.name)]
	}
	return totals
}

func (t listingTotals) lookup(name string) float64 {
	count, ok := t.counts[textutil.NormalizeName(name)]
	if !ok {
		return timeseries.Missing()
	}
	return count
}

// Unboxing downloads the daily, weekly, monthly and total listings and
// joins them by case name, in the order of the total listing. Names are
// compared after textutil.NormalizeName and duplicate rows are summed, the
// same way timeseries.AlignMonthly treats them.
func (c *Client) Unboxing(ctx context.Context) ([]UnboxingCount, error) {
	listings := make([][]listingRow, 4)
	for i, path := range []string{pathTotal, pathMonthly, pathWeekly, pathDaily} {
		rows, err := c.fetchListing(ctx, path)
		if err != nil {
			c.tel.ReportBroken(report_client_unboxing, err)
			return nil, err
		}
		listings[i] = rows
	}

	total := sumListing(listings[0])
	monthly := sumListing(listings[1])
	weekly := sumListing(listings[2])
	daily := sumListing(listings[3])

	counts := make([]UnboxingCount, 0, len(total.order))
	for _, row := range total.order {
		counts = append(counts, UnboxingCount{
			Name:    row.name,
			Total:   row.count,
			Monthly: monthly.lookup(row.name),
			Weekly:  weekly.lookup(row.name),
			Daily:   daily.lookup(row.name),
		})
	}

	c.tel.ReportCount(report_client_unboxing, int64(len(counts)))
	return counts, nil
}
