package pdf

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fonturile de bază PDF (helvetica) acoperă doar cp1252, fără ș, ț, ă.
// tr transliterează diacriticele românești la ASCII înainte de desenare:
// descompunere NFD, eliminarea semnelor combinate, recompunere.
var diacriticsFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func tr(s string) string {
	folded, _, err := transform.String(diacriticsFolder, s)
	if err != nil {
		return s
	}
	return folded
}
