package stats

import (
	"context"
	"fmt"
	"time"

	"csstats-backend/internal/market"
	"csstats-backend/internal/timeseries"

	"golang.org/x/time/rate"
)

type PriceOptions struct {
	// RequestDelay is the minimum time between the starts of two item
	// fetches. It does not add a pause after a fetch: when a fetch takes
	// longer than RequestDelay the next one starts immediately.
	RequestDelay time.Duration
	// Smoothing aggregates each item's observations into daily figures.
	Smoothing bool
}

type ItemPrices struct {
	Item         string
	Observations []market.PriceObservation
	// Days is only set when PriceOptions.Smoothing is.
	Days []market.DailyPrice
}

// PriceHistories fetches each item's price history in order, spacing the
// fetch starts by RequestDelay. The first failure aborts the whole batch.
func (s Service) PriceHistories(ctx context.Context, appId int, items []string, opts PriceOptions) ([]ItemPrices, error) {
	limit := rate.Inf
	if opts.RequestDelay > 0 {
		limit = rate.Every(opts.RequestDelay)
	}
	limiter := rate.NewLimiter(limit, 1)

	result := make([]ItemPrices, len(items))
	for i, item := range items {
		err := limiter.Wait(ctx)
		if err != nil {
			s.tel.ReportBroken(report_service_prices, err, item)
			return nil, err
		}

		observations, err := s.prices.PriceHistory(ctx, appId, item)
		if err != nil {
			s.tel.ReportBroken(report_service_prices, err, item)
			return nil, fmt.Errorf("price history of %s: %w", item, err)
		}

		result[i] = ItemPrices{
			Item:         item,
			Observations: observations,
		}
		if opts.Smoothing {
			result[i].Days = market.NormalizeDaily(observations)
		}
	}
	return result, nil
}

// JoinedPriceHistories fetches like PriceHistories and joins every item's
// daily series into one table keyed by date.
func (s Service) JoinedPriceHistories(ctx context.Context, appId int, items []string, opts PriceOptions) (timeseries.Table, error) {
	opts.Smoothing = true
	prices, err := s.PriceHistories(ctx, appId, items, opts)
	if err != nil {
		return timeseries.Table{}, err
	}

	histories := make([]market.ItemHistory, len(prices))
	for i, p := range prices {
		histories[i] = market.ItemHistory{Item: p.Item, Days: p.Days}
	}
	table, err := market.JoinDaily(histories)
	if err != nil {
		s.tel.ReportBroken(report_service_prices, err)
		return timeseries.Table{}, err
	}
	return table, nil
}
