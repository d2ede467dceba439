package steam

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"csstats-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var ErrMissingStat = errors.New("steam: player statistic not found on page")

type PlayerCount struct {
	Current     int64
	Peak24h     int64
	AllTimePeak int64
}

// PlayerCount reads the 24-hour and all-time peaks from steamcharts and the
// current player count from the steam web api.
func (c *Client) PlayerCount(ctx context.Context, appId int) (PlayerCount, error) {
	c.tel.ReportDebug(report_client_player_count, appId)

	peak24h, allTime, err := c.peaks(ctx, appId)
	if err != nil {
		c.tel.ReportBroken(report_client_player_count, err, appId)
		return PlayerCount{}, err
	}

	current, err := c.currentPlayers(ctx, appId)
	if err != nil {
		c.tel.ReportBroken(report_client_player_count, err, appId)
		return PlayerCount{}, err
	}

	return PlayerCount{
		Current:     current,
		Peak24h:     peak24h,
		AllTimePeak: allTime,
	}, nil
}

func parseCount(text string) (int64, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	return strconv.ParseInt(text, 10, 64)
}

func (c *Client) peaks(ctx context.Context, appId int) (int64, int64, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/app/%d", c.endpoints.Steamcharts, appId))
	if err != nil {
		return 0, 0, fmt.Errorf("fetch steamcharts: %w", err)
	}
	if res.IsError() {
		return 0, 0, fmt.Errorf("fetch steamcharts: %s", res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return 0, 0, fmt.Errorf("parse steamcharts html: %w", err)
	}

	// current players, 24-hour peak, all-time peak
	stats := doc.Find("div#app-heading div.app-stat")
	if stats.Length() < 3 {
		return 0, 0, fmt.Errorf("%w: found %d of 3 app-stat blocks", ErrMissingStat, stats.Length())
	}

	var values [2]int64
	for i, idx := range []int{1, 2} {
		span := stats.Eq(idx).Find("span").First()
		if span.Length() == 0 {
			return 0, 0, fmt.Errorf("%w: app-stat %d has no span", ErrMissingStat, idx)
		}
		text := htmlutil.CleanText(span)
		values[i], err = parseCount(text)
		if err != nil {
			return 0, 0, fmt.Errorf("parse app-stat %d %q: %w", idx, text, err)
		}
	}

	return values[0], values[1], nil
}

type currentPlayersResponse struct {
	Response struct {
		PlayerCount int64 `json:"player_count"`
		Result      int   `json:"result"`
	} `json:"response"`
}

func (c *Client) currentPlayers(ctx context.Context, appId int) (int64, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("appid", strconv.Itoa(appId)).
		Get(c.endpoints.WebApi + "/ISteamUserStats/GetNumberOfCurrentPlayers/v1/")
	if err != nil {
		return 0, fmt.Errorf("fetch current players: %w", err)
	}
	if res.IsError() {
		return 0, fmt.Errorf("fetch current players: %s", res.Status())
	}

	var parsed currentPlayersResponse
	err = json.Unmarshal(res.Body(), &parsed)
	if err != nil {
		return 0, fmt.Errorf("unmarshal current players: %w", err)
	}
	// an absent player_count reads as 0
	return parsed.Response.PlayerCount, nil
}
