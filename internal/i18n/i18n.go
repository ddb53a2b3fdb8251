// Package i18n holds the two display languages of the shop and every label
// the screens and bill documents print.
package i18n

import "strings"

// Language selects labels and the product-name column everywhere.
type Language string

const (
	English Language = "english" // primary
	Tamil   Language = "tamil"   // secondary, non-Latin script
)

// Languages lists the supported languages in toggle order.
var Languages = []Language{English, Tamil}

// Parse maps a query value to a Language, falling back when unknown.
func Parse(s string, fallback Language) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English
	case Tamil:
		return Tamil
	}
	return fallback
}

// Secondary reports whether l is the localized, non-Latin language.
func (l Language) Secondary() bool { return l == Tamil }

// PickName returns the product label for l, falling back to the other
// language's label when the preferred one is blank.
func PickName(l Language, name, nameLocalized string) string {
	primary, other := name, nameLocalized
	if l.Secondary() {
		primary, other = nameLocalized, name
	}
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	return other
}

// ShopName picks the half of a "<tamil> / <english>" shop name for l.
// A name without a separator is returned unchanged.
func ShopName(full string, l Language) string {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) < 2 {
		return strings.TrimSpace(full)
	}
	tamil, english := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if l.Secondary() {
		if tamil != "" {
			return tamil
		}
		return english
	}
	if english != "" {
		return english
	}
	return tamil
}
