package chrono

import (
	"context"
	"fmt"
	"time"

	"csstats-backend/internal/components/telemetry"

	"github.com/robfig/cron/v3"
)

// CronAPI is the interface that anything sampling on a schedule should use.
type CronAPI interface {
	// Cron runs `callback` on the standard 5 field spec or a descriptor like
	// "@every 10m". Runs of the same job never overlap, a run that is still
	// going when the next is due makes the next one be skipped.
	Cron(spec string, callback func()) error
	// Stop stops scheduling, the returned context is done once running jobs finish.
	Stop() context.Context
}

// StandardCron is the standard implementation of CronAPI using `github.com/robfig/cron/v3`
type StandardCron struct {
	cron   *cron.Cron
	logger cronLogger
}

func NewStandardCron(location *time.Location, tel telemetry.API) StandardCron {
	logger := cronLogger{tel: telemetry.NewScopedAPI("cron", tel)}
	cronner := cron.New(
		cron.WithLogger(logger),
		cron.WithLocation(location),
	)
	cronner.Start()

	return StandardCron{
		cron:   cronner,
		logger: logger,
	}
}

func (s StandardCron) Cron(spec string, callback func()) error {
	_, err := s.cron.AddJob(
		spec,
		cron.NewChain(cron.SkipIfStillRunning(s.logger)).Then(cron.FuncJob(callback)),
	)
	return err
}

func (s StandardCron) Stop() context.Context {
	return s.cron.Stop()
}

type cronLogger struct {
	tel telemetry.API
}

func (l cronLogger) formatParams(keysAndValues []any) []any {
	params := []any{}
	for i := 0; i < len(keysAndValues)/2; i++ {
		idx := i * 2
		key := keysAndValues[idx]
		value := keysAndValues[idx+1]
		params = append(params, fmt.Sprintf("%v: %v", key, value))
	}
	return params
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.tel.ReportDebug(msg, l.formatParams(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.tel.ReportBroken(
		"scheduler",
		append([]any{fmt.Errorf("%s: %w", msg, err)}, l.formatParams(keysAndValues)...)...,
	)
}
