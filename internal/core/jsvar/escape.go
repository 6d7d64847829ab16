// If you are AI: This file implements the reserved-character escape applied to string payloads.
// The table is HTML-entity based, not a JSON string escape, and is not idempotent.

package jsvar

import (
	"strings"
)

// entityReplacer substitutes all five reserved characters in a single pass.
var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, `\&quot;`,
	"'", "&amp;apos;",
)

// EscapeEntities replaces & < > " ' in s with their entity forms.
// Applying it twice escapes the ampersands introduced by the first pass.
func EscapeEntities(s string) string {
	return entityReplacer.Replace(s)
}

// quoteText escapes s and wraps it in double quotes.
func quoteText(s string) string {
	return `"` + EscapeEntities(s) + `"`
}
