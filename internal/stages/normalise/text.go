// Package normalise provides the name normalisation stages: locale-independent
// lower-casing and accent stripping.
package normalise

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MakeLowercase lower-cases s using language-neutral Unicode rules.
func MakeLowercase(s string) string {
	// Casers are stateful, so one per call.
	return cases.Lower(language.Und).String(s)
}

// RemoveAccents applies compatibility decomposition (NFKD) and then drops
// every rune outside ASCII, so "José" becomes "Jose" and "Ōtsuka" becomes
// "Otsuka". Characters with no ASCII decomposition disappear entirely.
func RemoveAccents(s string) (string, error) {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII
		})),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Normalise strips accents and then lower-cases. Stripping first keeps the
// result stable under repeated application: NFKD can produce upper-case
// ASCII from compatibility characters such as "ℍ".
func Normalise(s string) (string, error) {
	stripped, err := RemoveAccents(s)
	if err != nil {
		return "", err
	}
	return MakeLowercase(stripped), nil
}
