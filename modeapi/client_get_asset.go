package modeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"modesdk/marketdata"
)

// GetAsset fetches reference data for one instrument and validates it into
// an Asset.
func (c *Client) GetAsset(ctx context.Context, symbol string) (marketdata.Asset, error) {
	path := "/api/v1/market-data/assets/" + url.PathEscape(marketdata.NormalizeSymbol(symbol))
	req, err := c.newRequest(ctx, path)
	if err != nil {
		return marketdata.Asset{}, err
	}

	res, err := c.get(req)
	if err != nil {
		return marketdata.Asset{}, err
	}
	defer res.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return marketdata.Asset{}, &APIError{StatusCode: res.StatusCode, Message: fmt.Sprintf("decoding asset response: %v", err)}
	}

	asset, err := marketdata.ValidateAsset(body)
	if err != nil {
		return marketdata.Asset{}, fmt.Errorf("asset response: %w", err)
	}
	c.logger.Debug().Str("symbol", asset.Symbol).Str("type", string(asset.Type)).Msg("fetched asset")
	return asset, nil
}
