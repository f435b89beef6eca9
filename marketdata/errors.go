package marketdata

import "fmt"

// Validation rule identifiers. ValidationError.Rule is always one of these.
const (
	RuleRequired       = "required"
	RuleType           = "type"
	RuleParse          = "parse"
	RuleNonNegative    = "non_negative"
	RuleBidAskOrder    = "bid_ask_order"
	RuleHighLow        = "high_low"
	RuleKeySymbolMatch = "key_symbol_mismatch"
	RuleAssetType      = "asset_type"
)

// ValidationError reports a payload that violated a structural or semantic
// invariant. Field is the path of the offending field as received from the
// upstream service (e.g. "quotes.AAPL.bid"); Rule names the violated check.
//
// Validation is fail-fast: the first violated invariant is reported and the
// rest of the payload is not inspected.
type ValidationError struct {
	Field string
	Rule  string
	// Err is the underlying cause, set for parse failures.
	Err error

	msg string
}

func (e *ValidationError) Error() string {
	s := fmt.Sprintf("validating %s: %s", e.Field, e.Rule)
	if e.msg != "" {
		s += ": " + e.msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ValidationError) Unwrap() error { return e.Err }

func errRequired(field string) error {
	return &ValidationError{Field: field, Rule: RuleRequired, msg: "field is missing"}
}

func errType(field string, got any) error {
	return &ValidationError{Field: field, Rule: RuleType, msg: fmt.Sprintf("unexpected type %T", got)}
}

func errRule(field, rule, format string, args ...any) error {
	return &ValidationError{Field: field, Rule: rule, msg: fmt.Sprintf(format, args...)}
}
