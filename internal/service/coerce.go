package service

import (
	"math"
	"strings"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// toDecimal coerces form input (JSON number, numeric string, json.Number)
// into a decimal. ok is false when v is nil or blank.
func toDecimal(field string, v any) (d decimal.Decimal, ok bool, err error) {
	if v == nil {
		return decimal.Zero, false, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero, false, model.NewValidationError(field, field+" must be a number")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false, nil
	}
	d, err = decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, model.NewValidationError(field, field+" must be a number")
	}
	return d, true, nil
}

// maxQuantity bounds a line quantity so it always fits an int.
var maxQuantity = decimal.NewFromInt(math.MaxInt32)

// parsePrice requires a numeric price, clamps it to zero or more and rounds
// it to paise so the shown unit price times quantity equals the line total.
func parsePrice(v any) (decimal.Decimal, error) {
	d, ok, err := toDecimal("price", v)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, model.NewValidationError("price", "price is required")
	}
	return model.ClampPrice(d).Round(2), nil
}

// parseQuantity truncates to a whole number; blank input yields def.
// Clamping to at least one happens in the line item itself.
// Quantities above maxQuantity are rejected rather than truncated.
func parseQuantity(v any, def int) (int, error) {
	d, ok, err := toDecimal("quantity", v)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	if d.GreaterThan(maxQuantity) {
		return 0, model.NewValidationError("quantity", "quantity is too large")
	}
	if d.IsNegative() {
		return 0, nil
	}
	return int(d.IntPart()), nil
}
