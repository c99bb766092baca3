// Package normalize produces canonical comparison keys for corpus text.
// Keys are used only for equality matching between transcriptions, never
// for display: the master table always stores the contributor's raw text.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Key maps raw source text to its canonical comparison key.
//
// The transform is pure and idempotent: NFC normalization, lowercasing,
// removal of every rune that is not a letter, digit, or whitespace, and
// collapsing whitespace runs to a single space with the ends trimmed.
// Accented letters are kept as-is; NFC only ensures composed and
// decomposed encodings of the same accent compare equal.
//
// Empty or whitespace-only input yields the empty key.
func Key(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Sentence canonicalizes a French prompt sentence for duplicate
// detection. Unlike Key it drops digits too, keeping only letters and
// spaces, which matches how the prompt file has historically been
// deduplicated.
func Sentence(text string) string {
	text = strings.ToLower(norm.NFC.String(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
