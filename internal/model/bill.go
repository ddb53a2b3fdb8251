package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of Bill.Date.
const DateLayout = "2006-01-02"

// LineItem is one row of a bill. Name and price are snapshots taken when the
// line was added; ProductRef is kept for display only and never re-resolved.
//
// The line total is not stored: LineTotal derives it on every call and the
// JSON form carries the derived value for readers, ignoring it on decode.
type LineItem struct {
	ID            snowflake.ID    `json:"id"`
	ProductRef    snowflake.ID    `json:"productRef"`
	Name          string          `json:"name"`
	NameLocalized string          `json:"nameLocalized"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}

// NewLineItem snapshots p into a new line with a clamped quantity.
func NewLineItem(id snowflake.ID, p Product, quantity int) LineItem {
	return LineItem{
		ID:            id,
		ProductRef:    p.ID,
		Name:          p.Name,
		NameLocalized: p.NameLocalized,
		Quantity:      ClampQuantity(quantity),
		UnitPrice:     ClampPrice(p.Price),
	}
}

// LineTotal is quantity * unit price.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// WithEdit returns a copy with clamped quantity and price.
func (l LineItem) WithEdit(quantity int, unitPrice decimal.Decimal) LineItem {
	l.Quantity = ClampQuantity(quantity)
	l.UnitPrice = ClampPrice(unitPrice)
	return l
}

func (l LineItem) MarshalJSON() ([]byte, error) {
	type plain LineItem
	return json.Marshal(struct {
		plain
		LineTotal decimal.Decimal `json:"lineTotal"`
	}{plain(l), l.LineTotal()})
}

// Bill is one customer transaction. Items are kept in insertion order, which
// is also the display order.
type Bill struct {
	CustomerName   string     `json:"customerName"`
	CustomerMobile string     `json:"customerMobile"`
	Date           string     `json:"date"`
	Items          []LineItem `json:"items"`
}

// NewBill starts an empty bill dated on the given day.
func NewBill(today time.Time) Bill {
	return Bill{Date: today.Format(DateLayout), Items: []LineItem{}}
}

// GrandTotal sums every line total. It is recomputed on each call.
func (b Bill) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ValidateForDocument checks the fields a printed or exported bill requires.
// They are optional while the bill is being composed.
func (b Bill) ValidateForDocument() error {
	if len(b.Items) == 0 {
		return NewValidationError("items", "No items to print or export")
	}
	if strings.TrimSpace(b.CustomerName) == "" {
		return NewValidationError("customerName", "Customer name is required")
	}
	if strings.TrimSpace(b.CustomerMobile) == "" {
		return NewValidationError("customerMobile", "Mobile number is required")
	}
	return nil
}

// Clone returns a bill whose item slice is not shared with b.
func (b Bill) Clone() Bill {
	items := make([]LineItem, len(b.Items))
	copy(items, b.Items)
	b.Items = items
	return b
}

// BillSnapshot is an immutable entry of the saved-bills log.
type BillSnapshot struct {
	ID             uuid.UUID       `json:"id"`
	CustomerName   string          `json:"customerName"`
	CustomerMobile string          `json:"customerMobile"`
	Date           string          `json:"date"`
	Items          []LineItem      `json:"items"`
	Total          decimal.Decimal `json:"total"`
	SavedAt        time.Time       `json:"savedAt"`
}

// NewBillSnapshot freezes b with its computed total.
func NewBillSnapshot(id uuid.UUID, b Bill, savedAt time.Time) BillSnapshot {
	b = b.Clone()
	return BillSnapshot{
		ID:             id,
		CustomerName:   b.CustomerName,
		CustomerMobile: b.CustomerMobile,
		Date:           b.Date,
		Items:          b.Items,
		Total:          b.GrandTotal(),
		SavedAt:        savedAt.UTC(),
	}
}

// Bill rebuilds the renderable bill from the snapshot.
func (s BillSnapshot) Bill() Bill {
	return Bill{
		CustomerName:   s.CustomerName,
		CustomerMobile: s.CustomerMobile,
		Date:           s.Date,
		Items:          s.Items,
	}.Clone()
}
