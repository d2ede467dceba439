package market

import (
	"fmt"
	"slices"
	"time"

	"csstats-backend/internal/components/chrono"
	"csstats-backend/internal/timeseries"

	"github.com/shopspring/decimal"
)

// DailyPrice is a day's mean sale price and total quantity sold.
type DailyPrice struct {
	Date  time.Time
	Price decimal.Decimal
	Sold  int64
}

// NormalizeDaily groups observations by calendar day, averaging the price and
// summing the quantity. The result is ordered by date.
func NormalizeDaily(observations []PriceObservation) []DailyPrice {
	type bucket struct {
		sum   decimal.Decimal
		count int64
		sold  int64
	}

	buckets := map[time.Time]*bucket{}
	var order []time.Time
	for _, o := range observations {
		day := chrono.StartOfDay(o.Time)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
			order = append(order, day)
		}
		b.sum = b.sum.Add(o.Price)
		b.count++
		b.sold += o.Sold
	}

	slices.SortFunc(order, func(a, b time.Time) int {
		return a.Compare(b)
	})

	result := make([]DailyPrice, len(order))
	for i, day := range order {
		b := buckets[day]
		result[i] = DailyPrice{
			Date:  day,
			Price: b.sum.Div(decimal.NewFromInt(b.count)),
			Sold:  b.sold,
		}
	}
	return result
}

// ItemHistory is the daily price series of one market item.
type ItemHistory struct {
	Item string
	Days []DailyPrice
}

func PriceColumn(item string) string {
	return fmt.Sprintf("%s price", item)
}

func SoldColumn(item string) string {
	return fmt.Sprintf("%s sold", item)
}

// JoinDaily full outer joins the items' series on date. Every item
// contributes a price and a sold column, dates an item has no data for are
// missing in its columns.
func JoinDaily(items []ItemHistory) (timeseries.Table, error) {
	var dates []time.Time
	seen := map[time.Time]bool{}
	for _, item := range items {
		for _, d := range item.Days {
			if seen[d.Date] {
				continue
			}
			seen[d.Date] = true
			dates = append(dates, d.Date)
		}
	}
	slices.SortFunc(dates, func(a, b time.Time) int {
		return a.Compare(b)
	})

	rowOf := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		rowOf[d] = i
	}

	out := timeseries.NewTable(dates)
	for _, item := range items {
		prices := make([]float64, len(dates))
		sold := make([]float64, len(dates))
		for i := range dates {
			prices[i] = timeseries.Missing()
			sold[i] = timeseries.Missing()
		}
		for _, d := range item.Days {
			row := rowOf[d.Date]
			prices[row] = d.Price.InexactFloat64()
			sold[row] = float64(d.Sold)
		}

		err := out.AddColumn(PriceColumn(item.Item), prices)
		if err != nil {
			return timeseries.Table{}, err
		}
		err = out.AddColumn(SoldColumn(item.Item), sold)
		if err != nil {
			return timeseries.Table{}, err
		}
	}
	return out, nil
}
