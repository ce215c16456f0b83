package grid

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Alphabet is the set of letters a placed word may contain: Latin A–Z plus
// the accented capitals used by the Portuguese catalog.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZÇÁÉÍÓÚÃÕÂÊÔÀ"

// FillerAlphabet is used for noise cells regardless of catalog language.
const FillerAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Normalize uppercases w and strips every rune outside Alphabet.
func Normalize(w string) string {
	// A Caser carries state, so each call builds its own.
	u := cases.Upper(language.Und).String(w)
	var sb strings.Builder
	sb.Grow(len(u))
	for _, r := range u {
		if strings.ContainsRune(Alphabet, r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
