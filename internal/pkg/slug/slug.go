package slug

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxLength = 80

// Make derives a URL-safe slug from a display name: lower-cased, everything
// that is not a letter or digit dropped, whitespace runs collapsed to single
// hyphens, capped at a fixed length. Deterministic for a given input.
func Make(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	s := strings.TrimRight(b.String(), "-")
	if len(s) > maxLength {
		// The cap is in bytes; back off to a rune boundary so multi-byte
		// names never truncate into invalid UTF-8.
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimRight(s[:cut], "-")
	}
	return s
}

// Compose joins a shop slug with its area slug: "{shop}-in-{area}".
func Compose(shopSlug, areaSlug string) string {
	return fmt.Sprintf("%s-in-%s", shopSlug, areaSlug)
}

// WithSuffix appends a numeric dedup suffix: "{slug}-{n}".
func WithSuffix(s string, n int) string {
	return fmt.Sprintf("%s-%d", s, n)
}
