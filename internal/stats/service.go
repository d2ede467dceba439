package stats

import (
	"context"
	"time"

	"csstats-backend/internal/components/assert"
	"csstats-backend/internal/components/chrono"
	"csstats-backend/internal/components/telemetry"
	"csstats-backend/internal/market"
	"csstats-backend/internal/scrapers/casetracker"
	"csstats-backend/internal/scrapers/steam"
	"csstats-backend/internal/timeseries"
)

const (
	report_service_player_count = "service.player-count"
	report_service_unboxing     = "service.unboxing"
	report_service_reconstruct  = "service.reconstruct"
	report_service_prices       = "service.price-histories"
)

type PlayerSource interface {
	PlayerCount(ctx context.Context, appId int) (steam.PlayerCount, error)
}

type PriceSource interface {
	PriceHistory(ctx context.Context, appId int, item string) ([]market.PriceObservation, error)
}

type UnboxingSource interface {
	Unboxing(ctx context.Context) ([]casetracker.UnboxingCount, error)
}

type HistorySource interface {
	MonthlySnapshots(ctx context.Context, months []time.Time) ([]timeseries.MonthSnapshot, error)
}

// Service wires the scrapers into the time series pipeline.
type Service struct {
	players  PlayerSource
	prices   PriceSource
	unboxing UnboxingSource
	history  HistorySource
	clock    chrono.API
	tel      telemetry.API
}

func NewService(
	players PlayerSource,
	prices PriceSource,
	unboxing UnboxingSource,
	history HistorySource,
	clock chrono.API,
	tel telemetry.API,
) Service {
	assert.NotNil(players)
	assert.NotNil(prices)
	assert.NotNil(unboxing)
	assert.NotNil(history)
	assert.NotNil(clock)
	assert.NotNil(tel)

	return Service{
		players:  players,
		prices:   prices,
		unboxing: unboxing,
		history:  history,
		clock:    clock,
		tel:      telemetry.NewScopedAPI("stats", tel),
	}
}

func (s Service) PlayerCount(ctx context.Context, appId int) (steam.PlayerCount, error) {
	count, err := s.players.PlayerCount(ctx, appId)
	if err != nil {
		s.tel.ReportBroken(report_service_player_count, err, appId)
		return steam.PlayerCount{}, err
	}
	return count, nil
}

func (s Service) Unboxing(ctx context.Context) ([]casetracker.UnboxingCount, error) {
	counts, err := s.unboxing.Unboxing(ctx)
	if err != nil {
		s.tel.ReportBroken(report_service_unboxing, err)
		return nil, err
	}
	return counts, nil
}
