package marketdata

import (
	"fmt"
	"time"
)

// Bar is a single OHLCV sample. Every price field is optional; only the
// timestamp is mandatory. Absent fields stay absent, they are never
// defaulted to zero, and cross-field checks run only over the fields that
// are actually present.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      *float64  `json:"open,omitempty"`
	High      *float64  `json:"high,omitempty"`
	Low       *float64  `json:"low,omitempty"`
	Close     *float64  `json:"close,omitempty"`
	Volume    *int64    `json:"volume,omitempty"`
}

// ValidateBar builds a Bar from a decoded JSON object, or fails with a
// *ValidationError.
func ValidateBar(obj map[string]any) (Bar, error) {
	var b Bar
	var err error

	if b.Timestamp, err = reqTime(obj, "timestamp"); err != nil {
		return Bar{}, err
	}
	if b.Open, err = optFloat(obj, "open"); err != nil {
		return Bar{}, err
	}
	if b.High, err = optFloat(obj, "high"); err != nil {
		return Bar{}, err
	}
	if b.Low, err = optFloat(obj, "low"); err != nil {
		return Bar{}, err
	}
	if b.Close, err = optFloat(obj, "close"); err != nil {
		return Bar{}, err
	}
	if b.Volume, err = optInt(obj, "volume"); err != nil {
		return Bar{}, err
	}

	prices := []struct {
		field string
		v     *float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
	}
	for _, p := range prices {
		if p.v == nil {
			continue
		}
		if err := nonNegative(p.field, *p.v); err != nil {
			return Bar{}, err
		}
	}
	if b.Volume != nil && *b.Volume < 0 {
		return Bar{}, errRule("volume", RuleNonNegative, "%d is negative", *b.Volume)
	}

	// High must bound open/close/low from above, low from below, over
	// whichever fields are present.
	if b.High != nil {
		for _, p := range []struct {
			field string
			v     *float64
		}{{"open", b.Open}, {"close", b.Close}, {"low", b.Low}} {
			if p.v != nil && *b.High < *p.v {
				return Bar{}, errRule("high", RuleHighLow, "high %v < %s %v", *b.High, p.field, *p.v)
			}
		}
	}
	if b.Low != nil {
		for _, p := range []struct {
			field string
			v     *float64
		}{{"open", b.Open}, {"close", b.Close}, {"high", b.High}} {
			if p.v != nil && *b.Low > *p.v {
				return Bar{}, errRule("low", RuleHighLow, "low %v > %s %v", *b.Low, p.field, *p.v)
			}
		}
	}
	return b, nil
}

// Series is a historical OHLCV sequence for one symbol, kept in the order
// the upstream service delivered it. No inter-bar ordering is enforced
// here; upstream makes no sorting guarantee and ordering is an export
// concern, not a validation one.
type Series struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

// ValidateSeries builds a Series from a decoded historical response:
// the symbol is canonicalized and every entry of dataPoints is validated in
// input order. The first bad bar fails the whole series.
func ValidateSeries(obj map[string]any) (Series, error) {
	sym, err := reqString(obj, "symbol")
	if err != nil {
		return Series{}, err
	}
	s := Series{Symbol: NormalizeSymbol(sym)}

	raw, ok := obj["dataPoints"]
	if !ok || raw == nil {
		return s, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return Series{}, errType("dataPoints", raw)
	}
	s.Bars = make([]Bar, 0, len(list))
	for i, braw := range list {
		bobj, ok := braw.(map[string]any)
		if !ok {
			return Series{}, errType(fmt.Sprintf("dataPoints[%d]", i), braw)
		}
		b, err := ValidateBar(bobj)
		if err != nil {
			return Series{}, prefix(fmt.Sprintf("dataPoints[%d]", i), err)
		}
		s.Bars = append(s.Bars, b)
	}
	return s, nil
}
