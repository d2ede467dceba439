package casetracker

import (
	"time"

	"csstats-backend/internal/components/assert"
	"csstats-backend/internal/components/restyutil"
	"csstats-backend/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_unboxing = "client.unboxing"
	report_client_history  = "client.history"
	report_client_dump     = "client.dump"
)

const (
	DefaultBaseUrl = "https://csgocasetracker.com"
	// DefaultHistoryTemplate is expanded per month, {year} is 4 digits and
	// {month} is zero-padded to 2.
	DefaultHistoryTemplate = DefaultBaseUrl + "/calculations/history/{year}-{month}.csv"
)

type ClientOptions struct {
	BaseUrl         string
	HistoryTemplate string
	Timeout         time.Duration
	// Dump receives every exchange when set.
	Dump restyutil.Output
}

// Client downloads the unboxing listings published by csgocasetracker.
type Client struct {
	http            *resty.Client
	baseUrl         string
	historyTemplate string
	tel             telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) *Client {
	assert.NotNil(tel)

	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	historyTemplate := opts.HistoryTemplate
	if historyTemplate == "" {
		historyTemplate = DefaultHistoryTemplate
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	tel = telemetry.NewScopedAPI("casetracker_scraper", tel)

	httpClient := resty.New()
	httpClient.SetTimeout(timeout)
	httpClient.SetBaseURL(baseUrl)
	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	telemetry.InstrumentResty(httpClient, "scrapers/casetracker/http", tel)
	if opts.Dump != nil {
		restyutil.Dump(httpClient, opts.Dump, func(id string, err error) {
			tel.ReportWarning(report_client_dump, err, id)
		})
	}

	return &Client{
		http:            httpClient,
		baseUrl:         baseUrl,
		historyTemplate: historyTemplate,
		tel:             tel,
	}
}
