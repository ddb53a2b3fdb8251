// Package billing composes a bill from catalog selections.
//
// Composer is a value: every command returns the next state and leaves the
// receiver untouched, so callers can keep or discard a transition freely.
package billing

import (
	"strings"
	"time"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// IDGenerator hands out line ids. *snowflake.Node satisfies it.
type IDGenerator interface {
	Generate() snowflake.ID
}

// Options are the optional behaviours of the billing screen.
type Options struct {
	SeedSampleCatalog        bool `json:"seedSampleCatalog"`
	EnableSaveLog            bool `json:"enableSaveLog"`
	EnableKeyboardNavigation bool `json:"enableKeyboardNavigation"`
}

// Composer is the working state of one bill on the billing screen.
type Composer struct {
	bill    model.Bill
	editing snowflake.ID // 0 when every line is in Viewing
	search  Search
	opts    Options
	ids     IDGenerator
}

// New starts an empty bill dated today.
func New(ids IDGenerator, opts Options, today time.Time) Composer {
	return Composer{
		bill:   model.NewBill(today),
		search: emptySearch(),
		opts:   opts,
		ids:    ids,
	}
}

// Bill returns a detached copy of the bill.
func (c Composer) Bill() model.Bill { return c.bill.Clone() }

// Options returns the behaviour flags this composer was built with.
func (c Composer) Options() Options { return c.opts }

// SearchState returns the suggestion box state.
func (c Composer) SearchState() Search { return c.search }

// Editing returns the id of the line in Editing, if any.
func (c Composer) Editing() (snowflake.ID, bool) { return c.editing, c.editing != 0 }

// Total sums every line total, recomputed on each call.
func (c Composer) Total() decimal.Decimal { return c.bill.GrandTotal() }

// SetCustomer updates the bill header. A blank date keeps the current one.
func (c Composer) SetCustomer(name, mobile, date string) (Composer, error) {
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			return c, model.NewValidationError("date", "Date must be in YYYY-MM-DD format")
		}
		c.bill.Date = date
	}
	c.bill.CustomerName = strings.TrimSpace(name)
	c.bill.CustomerMobile = strings.TrimSpace(mobile)
	return c, nil
}

// Search replaces the query and recomputes suggestions from catalog.
// Any previous selection is dropped.
func (c Composer) Search(catalog []model.Product, query string) Composer {
	c.search = Search{
		Query:       query,
		Suggestions: Match(catalog, query),
		Highlight:   -1,
	}
	return c
}

// Select picks a product among the current suggestions.
func (c Composer) Select(id snowflake.ID) (Composer, error) {
	for _, p := range c.search.Suggestions {
		if p.ID == id {
			return c.choose(p), nil
		}
	}
	return c, model.NewNotFoundError("suggestion", id)
}

func (c Composer) choose(p model.Product) Composer {
	selected := p
	c.search = Search{Query: p.Name, Highlight: -1, Selected: &selected}
	return c
}

// Navigate moves the keyboard highlight through the suggestions, wrapping at
// both ends.
func (c Composer) Navigate(delta int) (Composer, error) {
	if !c.opts.EnableKeyboardNavigation {
		return c, model.NewValidationError("navigation", "Keyboard navigation is disabled")
	}
	n := len(c.search.Suggestions)
	if n == 0 || delta == 0 {
		return c, nil
	}
	h := c.search.Highlight
	if h < 0 && delta < 0 {
		h = 0
	}
	h = ((h+delta)%n + n) % n
	c.search.Highlight = h
	return c, nil
}

// SelectHighlighted selects the keyboard-highlighted suggestion.
func (c Composer) SelectHighlighted() (Composer, error) {
	if !c.opts.EnableKeyboardNavigation {
		return c, model.NewValidationError("navigation", "Keyboard navigation is disabled")
	}
	h := c.search.Highlight
	if h < 0 || h >= len(c.search.Suggestions) {
		return c, model.NewValidationError("highlight", "No suggestion is highlighted")
	}
	return c.choose(c.search.Suggestions[h]), nil
}

// AddLine appends the selected product. Without a selection it is a no-op.
func (c Composer) AddLine(quantity int) Composer {
	if c.search.Selected == nil {
		return c
	}
	return c.AddProduct(*c.search.Selected, quantity)
}

// AddProduct appends a snapshot of p and resets the search box.
func (c Composer) AddProduct(p model.Product, quantity int) Composer {
	line := model.NewLineItem(c.ids.Generate(), p, quantity)
	c.bill = c.bill.Clone()
	c.bill.Items = append(c.bill.Items, line)
	c.search = emptySearch()
	return c
}

// BeginEdit moves a line to Editing. Only one line may be edited at a time;
// the current edit has to be saved or cancelled first.
func (c Composer) BeginEdit(id snowflake.ID) (Composer, error) {
	if c.indexOf(id) < 0 {
		return c, model.NewNotFoundError("line", id)
	}
	if c.editing != 0 && c.editing != id {
		return c, model.NewEditInProgressError(c.editing)
	}
	c.editing = id
	return c, nil
}

// EditLine saves new quantity and price for a line and returns it to Viewing.
// A line can be edited directly from Viewing when nothing else is in Editing.
func (c Composer) EditLine(id snowflake.ID, quantity int, unitPrice decimal.Decimal) (Composer, error) {
	i := c.indexOf(id)
	if i < 0 {
		return c, model.NewNotFoundError("line", id)
	}
	if c.editing != 0 && c.editing != id {
		return c, model.NewEditInProgressError(c.editing)
	}
	c.bill = c.bill.Clone()
	c.bill.Items[i] = c.bill.Items[i].WithEdit(quantity, unitPrice)
	c.editing = 0
	return c, nil
}

// CancelEdit returns the editing line to Viewing unchanged.
func (c Composer) CancelEdit() Composer {
	c.editing = 0
	return c
}

// RemoveLine deletes a line whatever its edit state.
func (c Composer) RemoveLine(id snowflake.ID) (Composer, error) {
	i := c.indexOf(id)
	if i < 0 {
		return c, model.NewNotFoundError("line", id)
	}
	items := make([]model.LineItem, 0, len(c.bill.Items)-1)
	items = append(items, c.bill.Items[:i]...)
	items = append(items, c.bill.Items[i+1:]...)
	c.bill.Items = items
	if c.editing == id {
		c.editing = 0
	}
	return c, nil
}

func (c Composer) indexOf(id snowflake.ID) int {
	for i, item := range c.bill.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
