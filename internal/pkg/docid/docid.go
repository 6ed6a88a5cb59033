// Package docid derives safe document keys from free-text employee names.
// The permitted set is ASCII letters, digits, underscore and the Arabic
// block U+0600..U+06FF, so Arabic names survive the derivation intact.
package docid

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxKeyLength = 100

// FromName converts a display name to a document key: trim, NFC-normalize,
// collapse whitespace runs to single underscores, drop everything outside
// the safe set, truncate to 100 runes.
func FromName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	inSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte('_')
			inSpace = false
		}
		if isSafe(r) {
			b.WriteRune(r)
		}
	}

	key := b.String()
	runes := []rune(key)
	if len(runes) > maxKeyLength {
		key = string(runes[:maxKeyLength])
	}
	return key
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	}
	return false
}
