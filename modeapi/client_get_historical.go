package modeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"modesdk/marketdata"
)

// GetHistorical fetches historical OHLCV bars for one symbol over
// [start, end] at the given interval (e.g. "daily", "1min") and validates
// the response into a Series. Bars keep the delivery order of the service.
func (c *Client) GetHistorical(ctx context.Context, symbol string, start, end time.Time, interval string) (marketdata.Series, error) {
	query := url.Values{}
	query.Set("startTime", start.Format("2006-01-02"))
	query.Set("endTime", end.Format("2006-01-02"))
	query.Set("interval", interval)

	path := "/api/v1/market-data/historical/" + url.PathEscape(marketdata.NormalizeSymbol(symbol))
	req, err := c.newRequest(ctx, path+"?"+query.Encode())
	if err != nil {
		return marketdata.Series{}, err
	}

	res, err := c.get(req)
	if err != nil {
		return marketdata.Series{}, err
	}
	defer res.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return marketdata.Series{}, &APIError{StatusCode: res.StatusCode, Message: fmt.Sprintf("decoding historical response: %v", err)}
	}

	series, err := marketdata.ValidateSeries(body)
	if err != nil {
		return marketdata.Series{}, fmt.Errorf("historical response: %w", err)
	}
	c.logger.Debug().Str("symbol", series.Symbol).Int("bars", len(series.Bars)).Msg("fetched historical data")
	return series, nil
}
