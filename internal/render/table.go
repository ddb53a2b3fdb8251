package render

import "github.com/bwmarrin/snowflake"

// Action is a per-row control of the interactive table.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionRemove Action = "remove"
	ActionSave   Action = "save"
	ActionCancel Action = "cancel"
)

type TableRow struct {
	Row
	Editing bool     `json:"editing"`
	Actions []Action `json:"actions"`
}

// TableView is the billing screen's bill table. The print view and PDF carry
// the same rows without the action column.
type TableView struct {
	Headers      []string   `json:"headers"`
	Rows         []TableRow `json:"rows"`
	Empty        bool       `json:"empty"`
	EmptyMessage string     `json:"emptyMessage,omitempty"`
	TotalLabel   string     `json:"totalLabel"`
	Total        string     `json:"total"`
}

// Table builds the interactive view of doc. editing is the line currently in
// Editing, or 0.
func Table(doc Document, editing snowflake.ID) TableView {
	l := doc.Labels
	view := TableView{
		Headers:    []string{l.SerialNo, l.Product, l.Quantity, l.Price, l.Total, l.Action},
		Rows:       make([]TableRow, 0, len(doc.Rows)),
		TotalLabel: l.GrandTotal,
		Total:      doc.Total,
	}
	if len(doc.Rows) == 0 {
		view.Empty = true
		view.EmptyMessage = l.NoItems
		return view
	}
	for _, r := range doc.Rows {
		tr := TableRow{Row: r, Actions: []Action{ActionEdit, ActionRemove}}
		if editing != 0 && r.LineID == editing {
			tr.Editing = true
			tr.Actions = []Action{ActionSave, ActionCancel}
		}
		view.Rows = append(view.Rows, tr)
	}
	return view
}
