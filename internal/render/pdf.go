package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

const pdfFontFamily = "NotoSansTamil"

// pdfCompression is switched off in tests so page text can be asserted on.
var pdfCompression = true

// header fill of the item table
var headerFill = [3]int{22, 160, 133}

// PDFResult reports how the document was produced.
type PDFResult struct {
	// Degraded is set when font could not be used and the core Helvetica
	// font was substituted. Non-Latin text is then not legible.
	Degraded bool
	FontErr  error
}

// PDF writes doc as an A4 page to w. font is a TrueType font covering the
// secondary script; when it is nil or unusable the document is still produced
// with Helvetica and the result is marked Degraded.
func PDF(w io.Writer, doc Document, font []byte) (PDFResult, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(pdfCompression)
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(doc.Labels.Bill+" "+doc.CustomerName, true)
	pdf.SetAutoPageBreak(true, 15)

	var res PDFResult
	family := pdfFontFamily
	text := func(s string) string { return s }
	if err := addUTF8Font(pdf, font); err != nil {
		res = PDFResult{Degraded: true, FontErr: err}
		family = "Helvetica"
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		text = func(s string) string {
			return tr(strings.ReplaceAll(s, CurrencySymbol, "Rs."))
		}
	}

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentW := pageW - left - right

	// Header
	pdf.SetFont(family, "", 18)
	pdf.CellFormat(contentW, 10, text(doc.ShopName), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 13)
	pdf.CellFormat(contentW, 8, text(doc.Labels.Bill), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Customer block
	pdf.SetFont(family, "", 11)
	for _, line := range [][2]string{
		{doc.Labels.Customer, doc.CustomerName},
		{doc.Labels.Mobile, doc.CustomerMobile},
		{doc.Labels.Date, doc.Date},
	} {
		pdf.CellFormat(contentW, 6, text(line[0]+": "+line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Items
	widths := []float64{
		contentW * 0.10, // serial
		contentW * 0.40, // name
		contentW * 0.12, // quantity
		contentW * 0.19, // unit price
		contentW * 0.19, // line total
	}
	aligns := []string{"C", "L", "C", "R", "R"}
	headers := []string{
		doc.Labels.SerialNo, doc.Labels.Product, doc.Labels.Quantity,
		doc.Labels.Price, doc.Labels.Total,
	}

	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(family, "", 11)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, text(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(family, "", 10)
	for _, r := range doc.Rows {
		cells := []string{
			strconv.Itoa(r.Serial), r.Name, strconv.Itoa(r.Quantity),
			r.UnitPrice, r.LineTotal,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, text(c), "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Totals
	pdf.SetFont(family, "", 12)
	labelW := widths[0] + widths[1] + widths[2] + widths[3]
	pdf.CellFormat(labelW, 8, text(doc.Labels.GrandTotal), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, text(doc.Total), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(contentW, 6, text(doc.Courtesy), "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return res, fmt.Errorf("pdf: write: %w", err)
	}
	return res, nil
}

// addUTF8Font registers font under pdfFontFamily. fpdf panics on some
// malformed font files, so the parser is run under recover and any failure
// leaves the document free of errors for the fallback font.
func addUTF8Font(pdf *fpdf.Fpdf, font []byte) (err error) {
	if len(font) == 0 {
		return fmt.Errorf("no font data")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse font: %v", r)
		}
		if err != nil {
			pdf.ClearError()
		}
	}()
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", font)
	return pdf.Error()
}
