package stats

import (
	"context"
	"fmt"

	"csstats-backend/internal/scrapers/steam"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const metric_players = "csstats.players"

// PlayerGauge records sampled player counts, one data point per app id
// and kind (current, peak_24h, all_time_peak).
type PlayerGauge struct {
	players metric.Int64Gauge
}

func NewPlayerGauge(meter metric.Meter) (PlayerGauge, error) {
	players, err := meter.Int64Gauge(
		metric_players,
		metric.WithDescription("Player counts sampled from steam."),
		metric.WithUnit("{player}"),
	)
	if err != nil {
		return PlayerGauge{}, fmt.Errorf("create %s gauge: %w", metric_players, err)
	}
	return PlayerGauge{players: players}, nil
}

func (g PlayerGauge) Record(ctx context.Context, appId int, count steam.PlayerCount) {
	kinds := []struct {
		kind  string
		value int64
	}{
		{"current", count.Current},
		{"peak_24h", count.Peak24h},
		{"all_time_peak", count.AllTimePeak},
	}
	for _, k := range kinds {
		g.players.Record(ctx, k.value, metric.WithAttributes(
			attribute.Int("app_id", appId),
			attribute.String("kind", k.kind),
		))
	}
}
