package casetracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"csstats-backend/internal/timeseries"
)

func (c *Client) historyUrl(month time.Time) string {
	return strings.NewReplacer(
		"{year}", fmt.Sprintf("%04d", month.Year()),
		"{month}", fmt.Sprintf("%02d", int(month.Month())),
	).Replace(c.historyTemplate)
}

// MonthlySnapshots downloads the archived monthly listing of each month, one
// after another. Counts keep the order the listing displays them in.
func (c *Client) MonthlySnapshots(ctx context.Context, months []time.Time) ([]timeseries.MonthSnapshot, error) {
	snapshots := make([]timeseries.MonthSnapshot, len(months))
	for i, month := range months {
		rows, err := c.fetchListing(ctx, c.historyUrl(month))
		if err != nil {
			c.tel.ReportBroken(report_client_history, err, month.Format("2006-01"))
			return nil, err
		}

		counts := make([]timeseries.CategoryCount, len(rows))
		for j, r := range rows {
			counts[j] = timeseries.CategoryCount{Name: r.name, Count: r.count}
		}
		snapshots[i] = timeseries.MonthSnapshot{Month: month, Counts: counts}
	}
	return snapshots, nil
}
