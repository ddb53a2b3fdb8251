package dto

import (
	"time"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/billing"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/i18n"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/render"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CustomerRequest struct {
	CustomerName   string `json:"customerName"   validate:"max=120"`
	CustomerMobile string `json:"customerMobile" validate:"max=20"`
	Date           string `json:"date"           validate:"omitempty,datetime=2006-01-02"`
}

// Product ids travel as strings so JavaScript clients keep full precision.
type SelectRequest struct {
	ProductID snowflake.ID `json:"productId" validate:"required"`
}

type NavigateRequest struct {
	Key string `json:"key" validate:"required,oneof=up down enter"`
}

// AddLineRequest adds the selected product, or ProductID directly when set.
// Quantity accepts a number or a numeric string and defaults to 1.
type AddLineRequest struct {
	ProductID *snowflake.ID `json:"productId"`
	Quantity  any           `json:"quantity"`
}

type EditLineRequest struct {
	Quantity  any `json:"quantity"`
	UnitPrice any `json:"unitPrice"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DraftResponse struct {
	ID            uuid.UUID        `json:"id"`
	Language      i18n.Language    `json:"language"`
	Bill          model.Bill       `json:"bill"`
	Search        billing.Search   `json:"search"`
	EditingLineID *snowflake.ID    `json:"editingLineId"`
	Table         render.TableView `json:"table"`
	Total         string           `json:"total"`
	Options       billing.Options  `json:"options"`
}

type BillSummary struct {
	ID             uuid.UUID `json:"id"`
	CustomerName   string    `json:"customerName"`
	CustomerMobile string    `json:"customerMobile"`
	Date           string    `json:"date"`
	Items          int       `json:"items"`
	Total          string    `json:"total"`
	SavedAt        time.Time `json:"savedAt"`
}

type ShellResponse struct {
	ShopName           string          `json:"shopName"`
	Language           i18n.Language   `json:"language"`
	Languages          []i18n.Language `json:"languages"`
	Labels             i18n.Labels     `json:"labels"`
	KeyboardNavigation bool            `json:"keyboardNavigation"`
	BillLog            bool            `json:"billLog"`
}
