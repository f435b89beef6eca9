package marketdata

import (
	"math"
	"time"
)

// Decode helpers over map[string]any payloads. JSON objects decoded with
// encoding/json carry numbers as float64 and everything else as string,
// bool, map[string]any or []any; these helpers assert those shapes and
// report anything else as a type violation on the named field.

func reqString(obj map[string]any, field string) (string, error) {
	v, ok := obj[field]
	if !ok || v == nil {
		return "", errRequired(field)
	}
	s, ok := v.(string)
	if !ok {
		return "", errType(field, v)
	}
	return s, nil
}

func optString(obj map[string]any, field string) (*string, error) {
	v, ok := obj[field]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, errType(field, v)
	}
	return &s, nil
}

func reqFloat(obj map[string]any, field string) (float64, error) {
	v, ok := obj[field]
	if !ok || v == nil {
		return 0, errRequired(field)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, errType(field, v)
	}
	return f, nil
}

func optFloat(obj map[string]any, field string) (*float64, error) {
	v, ok := obj[field]
	if !ok || v == nil {
		return nil, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, errType(field, v)
	}
	return &f, nil
}

// optInt accepts integral JSON numbers. A fractional value on an integer
// field (e.g. volume) is a type violation, not something to round away.
func optInt(obj map[string]any, field string) (*int64, error) {
	v, ok := obj[field]
	if !ok || v == nil {
		return nil, nil
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return nil, errType(field, v)
	}
	n := int64(f)
	return &n, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

// reqTime accepts either an already-parsed time.Time or an upstream string
// encoding, and normalizes the result to UTC.
func reqTime(obj map[string]any, field string) (time.Time, error) {
	v, ok := obj[field]
	if !ok || v == nil {
		return time.Time{}, errRequired(field)
	}
	switch x := v.(type) {
	case time.Time:
		return NormalizeTime(x), nil
	case string:
		t, err := ParseTime(x)
		if err != nil {
			return time.Time{}, &ValidationError{Field: field, Rule: RuleParse, Err: err}
		}
		return t, nil
	}
	return time.Time{}, errType(field, v)
}

func nonNegative(field string, v float64) error {
	if v < 0 {
		return errRule(field, RuleNonNegative, "%v is negative", v)
	}
	return nil
}

// prefix rewrites the Field of a nested ValidationError so collection
// validators report the full path (e.g. "quotes.AAPL.bid").
func prefix(p string, err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*ValidationError); ok {
		return &ValidationError{Field: p + "." + ve.Field, Rule: ve.Rule, Err: ve.Err, msg: ve.msg}
	}
	return err
}
