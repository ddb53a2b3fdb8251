// Package render turns a bill into the one layout shared by the on-screen
// table, the print view and the PDF export.
package render

import (
	"strings"
	"unicode"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/i18n"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every amount.
const CurrencySymbol = "₹"

// Row is one bill line as every surface shows it.
type Row struct {
	LineID    snowflake.ID `json:"lineId"`
	Serial    int          `json:"serial"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice string       `json:"unitPrice"`
	LineTotal string       `json:"lineTotal"`
}

// Document is the rendered form of a bill in one language.
type Document struct {
	Language       i18n.Language `json:"language"`
	Labels         i18n.Labels   `json:"-"`
	ShopName       string        `json:"shopName"`
	CustomerName   string        `json:"customerName"`
	CustomerMobile string        `json:"customerMobile"`
	Date           string        `json:"date"`
	Rows           []Row         `json:"rows"`
	Total          string        `json:"total"`
	Courtesy       string        `json:"courtesy"`
}

// Build lays out b for lang. Serial numbers follow list position; names use
// the active language and fall back to the other one when blank.
func Build(b model.Bill, lang i18n.Language, shopName string) Document {
	labels := i18n.For(lang)
	rows := make([]Row, 0, len(b.Items))
	for i, item := range b.Items {
		rows = append(rows, Row{
			LineID:    item.ID,
			Serial:    i + 1,
			Name:      i18n.PickName(lang, item.Name, item.NameLocalized),
			Quantity:  item.Quantity,
			UnitPrice: FormatMoney(item.UnitPrice),
			LineTotal: FormatMoney(item.LineTotal()),
		})
	}
	return Document{
		Language:       lang,
		Labels:         labels,
		ShopName:       i18n.ShopName(shopName, lang),
		CustomerName:   strings.TrimSpace(b.CustomerName),
		CustomerMobile: strings.TrimSpace(b.CustomerMobile),
		Date:           b.Date,
		Rows:           rows,
		Total:          FormatMoney(b.GrandTotal()),
		Courtesy:       labels.ThankYou,
	}
}

// FormatMoney renders an amount with the currency symbol and two decimals,
// without thousands separators.
func FormatMoney(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}

// FileName is the export file name: "<customer>_<date>_bill.pdf". Anything
// other than letters, marks and digits in the customer name becomes "_".
func FileName(b model.Bill) string {
	var sb strings.Builder
	underscore := false
	for _, r := range strings.TrimSpace(b.CustomerName) {
		if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && sb.Len() > 0 {
			sb.WriteByte('_')
			underscore = true
		}
	}
	name := strings.TrimSuffix(sb.String(), "_")
	if name == "" {
		name = "customer"
	}
	return name + "_" + b.Date + "_bill.pdf"
}
