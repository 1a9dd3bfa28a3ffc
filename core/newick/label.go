// core/newick/label.go
package newick

import (
	"strings"
	"unicode"
)

// reserved are the characters an unquoted Newick label may not contain.
const reserved = " ()[]':;,"

// NeedsQuotes reports whether a label can only be written in quoted form.
func NeedsQuotes(label string) bool {
	return label == "" ||
		strings.ContainsAny(label, reserved) ||
		strings.IndexFunc(label, unicode.IsSpace) >= 0
}

// QuoteLabel renders a label in Newick form, quoting and escaping only when
// the label demands it.
func QuoteLabel(label string) string {
	if !NeedsQuotes(label) {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}

// UnquoteLabel undoes QuoteLabel: surrounding quotes are stripped and ''
// collapses back to a literal quote. Unquoted labels pass through.
func UnquoteLabel(label string) string {
	if len(label) >= 2 && strings.HasPrefix(label, "'") && strings.HasSuffix(label, "'") {
		return strings.ReplaceAll(label[1:len(label)-1], "''", "'")
	}
	return label
}
