package marketdata

import (
	"strings"
	"time"
)

// Quote is a point-in-time price record for one instrument.
//
// Symbol is stored exactly as received: for quote collections the
// authoritative upper-case key lives on the QuoteBook map, and forcing case
// here would hide key/symbol mismatches instead of surfacing them.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`

	Bid    *float64 `json:"bid,omitempty"`
	Ask    *float64 `json:"ask,omitempty"`
	Volume *int64   `json:"volume,omitempty"`

	Change        *float64 `json:"change,omitempty"`
	ChangePercent *float64 `json:"change_percent,omitempty"`
	DayHigh       *float64 `json:"day_high,omitempty"`
	DayLow        *float64 `json:"day_low,omitempty"`
	PreviousClose *float64 `json:"previous_close,omitempty"`
	Open          *float64 `json:"open,omitempty"`
}

// MidPrice is the bid/ask midpoint, or the last price when either side is
// missing.
func (q Quote) MidPrice() float64 {
	if q.Bid != nil && q.Ask != nil {
		return (*q.Bid + *q.Ask) / 2
	}
	return q.Price
}

// Spread is ask minus bid. The second return is false when either side is
// missing.
func (q Quote) Spread() (float64, bool) {
	if q.Bid == nil || q.Ask == nil {
		return 0, false
	}
	return *q.Ask - *q.Bid, true
}

// ValidateQuote builds a Quote from a decoded JSON object, or fails with a
// *ValidationError naming the offending field and rule.
func ValidateQuote(obj map[string]any) (Quote, error) {
	var q Quote
	var err error

	// Phase one: decode every candidate field.
	if q.Symbol, err = reqString(obj, "symbol"); err != nil {
		return Quote{}, err
	}
	if q.Price, err = reqFloat(obj, "price"); err != nil {
		return Quote{}, err
	}
	if q.Timestamp, err = reqTime(obj, "timestamp"); err != nil {
		return Quote{}, err
	}
	if q.Bid, err = optFloat(obj, "bid"); err != nil {
		return Quote{}, err
	}
	if q.Ask, err = optFloat(obj, "ask"); err != nil {
		return Quote{}, err
	}
	if q.Volume, err = optInt(obj, "volume"); err != nil {
		return Quote{}, err
	}
	if q.Change, err = optFloat(obj, "change"); err != nil {
		return Quote{}, err
	}
	if q.ChangePercent, err = optFloat(obj, "changePercent"); err != nil {
		return Quote{}, err
	}
	if q.DayHigh, err = optFloat(obj, "dayHigh"); err != nil {
		return Quote{}, err
	}
	if q.DayLow, err = optFloat(obj, "dayLow"); err != nil {
		return Quote{}, err
	}
	if q.PreviousClose, err = optFloat(obj, "previousClose"); err != nil {
		return Quote{}, err
	}
	if q.Open, err = optFloat(obj, "open"); err != nil {
		return Quote{}, err
	}

	// Phase two: whole-object invariants.
	if err := nonNegative("price", q.Price); err != nil {
		return Quote{}, err
	}
	if q.Bid != nil {
		if err := nonNegative("bid", *q.Bid); err != nil {
			return Quote{}, err
		}
	}
	if q.Ask != nil {
		if err := nonNegative("ask", *q.Ask); err != nil {
			return Quote{}, err
		}
	}
	if q.Volume != nil && *q.Volume < 0 {
		return Quote{}, errRule("volume", RuleNonNegative, "%d is negative", *q.Volume)
	}
	if q.Bid != nil && q.Ask != nil && *q.Ask < *q.Bid {
		return Quote{}, errRule("ask", RuleBidAskOrder, "ask %v < bid %v", *q.Ask, *q.Bid)
	}
	return q, nil
}

// QuoteBook maps upper-case ticker keys to validated quotes, plus upstream
// per-symbol error messages for tickers the service could not resolve. A
// symbol absent from both maps was simply not returned; partial results are
// valid.
type QuoteBook struct {
	Quotes map[string]Quote  `json:"quotes"`
	Errors map[string]string `json:"errors"`
}

// EmptyQuoteBook is the value an empty symbol request resolves to without
// any upstream interaction.
func EmptyQuoteBook() QuoteBook {
	return QuoteBook{Quotes: map[string]Quote{}, Errors: map[string]string{}}
}

// ValidateQuoteBook builds a QuoteBook from a decoded quotes response. Each
// nested quote is validated independently, then every map key is checked
// against its quote's own symbol: a mismatch means the upstream payload is
// structurally untrustworthy and fails the whole collection, not just the
// offending entry.
func ValidateQuoteBook(obj map[string]any) (QuoteBook, error) {
	book := EmptyQuoteBook()
	if obj == nil {
		return book, nil
	}

	if raw, ok := obj["quotes"]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return QuoteBook{}, errType("quotes", raw)
		}
		for key, qraw := range m {
			qobj, ok := qraw.(map[string]any)
			if !ok {
				return QuoteBook{}, errType("quotes."+key, qraw)
			}
			q, err := ValidateQuote(qobj)
			if err != nil {
				return QuoteBook{}, prefix("quotes."+key, err)
			}
			if q.Symbol != "" && !strings.EqualFold(key, q.Symbol) {
				return QuoteBook{}, errRule("quotes."+key, RuleKeySymbolMatch,
					"key %q does not match nested symbol %q", key, q.Symbol)
			}
			book.Quotes[key] = q
		}
	}

	if raw, ok := obj["errors"]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return QuoteBook{}, errType("errors", raw)
		}
		for key, v := range m {
			s, ok := v.(string)
			if !ok {
				return QuoteBook{}, errType("errors."+key, v)
			}
			book.Errors[key] = s
		}
	}
	return book, nil
}
