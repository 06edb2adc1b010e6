// Package slug turns human-readable strings (tag names, titles) into the
// URL-safe identifiers used in /tags/ and /blog/ paths. The rules follow the
// content pipeline's slugger so links match the keys of its tag table.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make lowercases s and strips diacritics. Letters, digits, '-' and '_' are
// kept, runs of whitespace become a single hyphen and every other character
// is dropped: "Node.js" becomes "nodejs", "Crème Brûlée & Go" becomes
// "creme-brulee-go".
func Make(s string) string {
	folded, _, err := transform.String(stripMarks(), s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	var b strings.Builder
	space := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			if space {
				b.WriteByte('-')
				space = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// transform.Transformer values keep state, so each call gets a fresh chain.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
