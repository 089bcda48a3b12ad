package vocab

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalises a word for lookup: NFKC normalization, surrounding
// whitespace trimmed, control characters dropped. Case is preserved because
// word2vec vocabularies are case-sensitive.
func Normalize(word string) string {
	if isPlainASCII(word) {
		return word
	}
	normed := norm.NFKC.String(word)
	normed = strings.TrimSpace(normed)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
}

// isPlainASCII reports whether word is printable ASCII with no surrounding
// space, the common case that needs no work.
func isPlainASCII(word string) bool {
	if word == "" {
		return true
	}
	if word[0] == ' ' || word[len(word)-1] == ' ' {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 0x20 || c >= 0x7f {
			return false
		}
	}
	return true
}
