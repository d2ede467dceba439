package stats

import (
	"context"
	"fmt"
	"time"

	"csstats-backend/internal/scrapers/casetracker"
	"csstats-backend/internal/timeseries"
	"csstats-backend/pkg/textutil"
)

type ReconstructOptions struct {
	// HistoryStart is the first month of archived listings to fetch.
	HistoryStart time.Time
	WindowDays   int
	Smoothing    bool
}

// Reconstruct builds a daily unboxing series per case: archived monthly
// listings from HistoryStart up to the current month are spread evenly
// over their days, the current month is filled from the live daily, weekly
// and monthly figures, and the result is optionally smoothed.
func (s Service) Reconstruct(ctx context.Context, opts ReconstructOptions) (timeseries.Table, error) {
	table, err := s.reconstruct(ctx, opts)
	if err != nil {
		s.tel.ReportBroken(report_service_reconstruct, err)
		return timeseries.Table{}, err
	}
	return table, nil
}

func (s Service) reconstruct(ctx context.Context, opts ReconstructOptions) (timeseries.Table, error) {
	if opts.Smoothing && opts.WindowDays < 1 {
		return timeseries.Table{}, fmt.Errorf("%w: %d days", timeseries.ErrInvalidWindow, opts.WindowDays)
	}

	now := s.clock.Now()
	// the year and month of HistoryStart are taken as is, in the clock's zone
	months := timeseries.EnumerateMonths(
		time.Date(opts.HistoryStart.Year(), opts.HistoryStart.Month(), 1, 0, 0, 0, 0, s.clock.Location()),
		now,
	)
	s.tel.ReportDebug("reconstruct months", len(months))

	daily := timeseries.NewTable(nil)
	if len(months) > 0 {
		snapshots, err := s.history.MonthlySnapshots(ctx, months)
		if err != nil {
			return timeseries.Table{}, fmt.Errorf("fetch history: %w", err)
		}
		monthly, err := timeseries.AlignMonthly(snapshots)
		if err != nil {
			return timeseries.Table{}, fmt.Errorf("align history: %w", err)
		}
		daily, err = timeseries.ExpandMonthly(monthly)
		if err != nil {
			return timeseries.Table{}, fmt.Errorf("expand history: %w", err)
		}
	}

	counts, err := s.unboxing.Unboxing(ctx)
	if err != nil {
		return timeseries.Table{}, fmt.Errorf("fetch unboxing: %w", err)
	}
	daily = timeseries.Backfill(daily, recentFrom(daily, counts), now)

	if !opts.Smoothing {
		return daily, nil
	}
	smoothed, err := timeseries.MovingAverage(daily, opts.WindowDays)
	if err != nil {
		return timeseries.Table{}, fmt.Errorf("smooth: %w", err)
	}
	return smoothed, nil
}

// recentFrom names each live count after the history column it matches, so
// that archived and live figures for the same case share a column.
func recentFrom(daily timeseries.Table, counts []casetracker.UnboxingCount) []timeseries.Recent {
	columns := map[string]string{}
	for _, name := range daily.Categories() {
		columns[textutil.NormalizeName(name)] = name
	}

	recent := make([]timeseries.Recent, len(counts))
	for i, c := range counts {
		name := c.Name
		if column, ok := columns[textutil.NormalizeName(c.Name)]; ok {
			name = column
		}
		recent[i] = timeseries.Recent{
			Category: name,
			Daily:    c.Daily,
			Weekly:   c.Weekly,
			Monthly:  c.Monthly,
		}
	}
	return recent
}
