package model

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Product is one catalog entry. The catalog is a price list, not counted
// inventory, so there is no stock quantity here.
type Product struct {
	ID            snowflake.ID    `json:"id"`
	Name          string          `json:"name"`
	NameLocalized string          `json:"nameLocalized"`
	Price         decimal.Decimal `json:"price"`
}

// Matches reports whether needle (already case-folded) occurs in either label.
func (p Product) Matches(needle string, fold func(string) string) bool {
	if needle == "" {
		return false
	}
	if strings.Contains(fold(p.Name), needle) {
		return true
	}
	return p.NameLocalized != "" && strings.Contains(fold(p.NameLocalized), needle)
}

// ClampPrice coerces negative amounts to zero.
func ClampPrice(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ClampQuantity coerces quantities below one to one.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
