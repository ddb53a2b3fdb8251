package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/print.html
var templatesFS embed.FS

var printTmpl = template.Must(template.ParseFS(templatesFS, "templates/print.html"))

// PrintHTML writes the static print page for doc: same rows and totals as the
// table view, no action controls, sized for 80 mm receipt paper.
func PrintHTML(w io.Writer, doc Document) error {
	return printTmpl.Execute(w, doc)
}
