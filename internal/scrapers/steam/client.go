package steam

import (
	"time"

	"csstats-backend/internal/components/assert"
	"csstats-backend/internal/components/restyutil"
	"csstats-backend/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	report_client_player_count  = "client.player-count"
	report_client_price_history = "client.price-history"
	report_client_dump          = "client.dump"
)

type Endpoints struct {
	// steamcharts.com, HTML
	Steamcharts string `json:"steamcharts"`
	// api.steampowered.com, JSON
	WebApi string `json:"steam_api"`
	// steamcommunity.com, HTML
	Community string `json:"market"`
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Steamcharts: "https://steamcharts.com",
		WebApi:      "https://api.steampowered.com",
		Community:   "https://steamcommunity.com",
	}
}

type ClientOptions struct {
	Endpoints Endpoints
	Timeout   time.Duration
	// BypassCloudflare wraps the transport so that the HTML sites fronted by
	// cloudflare serve pages instead of challenges.
	BypassCloudflare bool
	// Dump receives every exchange when set.
	Dump restyutil.Output
}

// Client scrapes steamcharts, the steam web api and the community market.
type Client struct {
	http      *resty.Client
	endpoints Endpoints
	tel       telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) *Client {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.Endpoints.Steamcharts)
	assert.NotEmptyStr(opts.Endpoints.WebApi)
	assert.NotEmptyStr(opts.Endpoints.Community)

	tel = telemetry.NewScopedAPI("steam_scraper", tel)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	httpClient := resty.New()
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	if opts.BypassCloudflare {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	telemetry.InstrumentResty(httpClient, "scrapers/steam/http", tel)
	if opts.Dump != nil {
		restyutil.Dump(httpClient, opts.Dump, func(id string, err error) {
			tel.ReportWarning(report_client_dump, err, id)
		})
	}

	return &Client{
		http:      httpClient,
		endpoints: opts.Endpoints,
		tel:       tel,
	}
}
