package ml

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize lowercases and splits resume text into terms, dropping English
// stop words and one-character fragments. Text is NFKC-normalized first so
// typographic variants of the same characters collide.
func Tokenize(text string) []string {
	normed := norm.NFKC.String(text)
	normed = strings.ToLower(normed)

	fields := strings.FieldsFunc(normed, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) < 2 {
			continue
		}
		if stopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
