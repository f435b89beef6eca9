package modeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"modesdk/marketdata"
)

// GetQuotes fetches real-time quotes for the given symbols and validates
// the response into a QuoteBook. An empty symbol list resolves to an empty
// book without any network call.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (marketdata.QuoteBook, error) {
	if len(symbols) == 0 {
		return marketdata.EmptyQuoteBook(), nil
	}

	query := url.Values{}
	query.Set("symbols", strings.Join(symbols, ","))

	req, err := c.newRequest(ctx, "/api/v1/market-data/quotes?"+query.Encode())
	if err != nil {
		return marketdata.QuoteBook{}, err
	}

	res, err := c.get(req)
	if err != nil {
		return marketdata.QuoteBook{}, err
	}
	defer res.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return marketdata.QuoteBook{}, &APIError{StatusCode: res.StatusCode, Message: fmt.Sprintf("decoding quotes response: %v", err)}
	}

	book, err := marketdata.ValidateQuoteBook(body)
	if err != nil {
		return marketdata.QuoteBook{}, fmt.Errorf("quotes response: %w", err)
	}
	c.logger.Debug().Int("quotes", len(book.Quotes)).Int("errors", len(book.Errors)).Msg("fetched quotes")
	return book, nil
}
