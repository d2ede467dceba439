package steam

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"csstats-backend/internal/market"
	"csstats-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoPriceHistory = errors.New("steam: no price history on listing page")

var priceHistoryRegex = regexp.MustCompile(`(?s)var line1\s*=\s*(\[.*?\]);`)

// PriceHistory returns the sale history embedded in an item's market listing
// page, which covers roughly the last month hourly and daily before that.
func (c *Client) PriceHistory(ctx context.Context, appId int, item string) ([]market.PriceObservation, error) {
	c.tel.ReportDebug(report_client_price_history, appId, item)

	observations, err := c.priceHistory(ctx, appId, item)
	if err != nil {
		c.tel.ReportBroken(report_client_price_history, err, item)
		return nil, err
	}

	c.tel.ReportDebug(
		fmt.Sprintf("%s response", report_client_price_history),
		item,
		len(observations),
	)
	return observations, nil
}

func (c *Client) priceHistory(ctx context.Context, appId int, item string) ([]market.PriceObservation, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf(
			"%s/market/listings/%d/%s",
			c.endpoints.Community,
			appId,
			url.PathEscape(item),
		))
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch listing: %s", res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}

	script, ok := htmlutil.FindScript(doc, "var line1")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPriceHistory, item)
	}
	groups := priceHistoryRegex.FindStringSubmatch(script)
	if len(groups) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrNoPriceHistory, item)
	}

	observations, err := market.ParseTriples(groups[1])
	if err != nil {
		return nil, fmt.Errorf("parse price history of %s: %w", item, err)
	}
	return observations, nil
}
