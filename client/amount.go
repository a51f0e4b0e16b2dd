package client

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FormatAmount renders d the way the gateway expects amounts: whole values
// keep one fractional digit (100 -> "100.0"), others use the shortest
// exact form (15.50 -> "15.5").
func FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(1)
	}
	return d.String()
}

// AmountNumber is FormatAmount as a JSON number literal.
func AmountNumber(d decimal.Decimal) json.Number {
	return json.Number(FormatAmount(d))
}

// NullAmountNumber returns nil for an unset amount.
func NullAmountNumber(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}
	n := AmountNumber(d.Decimal)
	return &n
}
