package billing

import (
	"strings"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// fold normalises to NFC and applies Unicode case folding. Tamil has no case,
// so folding only matters for the English labels, but NFC keeps composed and
// decomposed vowel signs comparable.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Match is the catalog search: a case-insensitive substring match against both
// labels. An empty query yields no suggestions rather than the whole catalog.
func Match(catalog []model.Product, query string) []model.Product {
	needle := fold(query)
	if needle == "" {
		return nil
	}
	var out []model.Product
	for _, p := range catalog {
		if p.Matches(needle, fold) {
			out = append(out, p)
		}
	}
	return out
}

// Search is the suggestion box state of the billing screen.
type Search struct {
	Query       string          `json:"query"`
	Suggestions []model.Product `json:"suggestions"`
	// Highlight is the keyboard-focused suggestion, -1 when none.
	Highlight int            `json:"highlight"`
	Selected  *model.Product `json:"selected"`
}

func emptySearch() Search { return Search{Highlight: -1} }
