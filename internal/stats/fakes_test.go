package stats

import (
	"context"
	"errors"
	"sync"
	"time"

	"csstats-backend/internal/market"
	"csstats-backend/internal/scrapers/casetracker"
	"csstats-backend/internal/scrapers/steam"
	"csstats-backend/internal/timeseries"
)

var errUpstream = errors.New("upstream unavailable")

type fakePlayers struct {
	count steam.PlayerCount
	err   error
}

func (f fakePlayers) PlayerCount(ctx context.Context, appId int) (steam.PlayerCount, error) {
	return f.count, f.err
}

type priceCall struct {
	item string
	at   time.Time
}

type fakePrices struct {
	lock         sync.Mutex
	calls        []priceCall
	observations map[string][]market.PriceObservation
	failOn       string
	// how long each fetch takes
	latency time.Duration
}

func (f *fakePrices) PriceHistory(ctx context.Context, appId int, item string) ([]market.PriceObservation, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, priceCall{item: item, at: time.Now()})
	time.Sleep(f.latency)
	if item == f.failOn {
		return nil, errUpstream
	}
	return f.observations[item], nil
}

type fakeUnboxing struct {
	counts []casetracker.UnboxingCount
	err    error
}

func (f fakeUnboxing) Unboxing(ctx context.Context) ([]casetracker.UnboxingCount, error) {
	return f.counts, f.err
}

type fakeHistory struct {
	snapshots map[time.Time][]timeseries.CategoryCount
	requested []time.Time
	err       error
}

func (f *fakeHistory) MonthlySnapshots(ctx context.Context, months []time.Time) ([]timeseries.MonthSnapshot, error) {
	f.requested = append(f.requested, months...)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]timeseries.MonthSnapshot, len(months))
	for i, m := range months {
		out[i] = timeseries.MonthSnapshot{Month: m, Counts: f.snapshots[m]}
	}
	return out, nil
}
