// internal/utils/slug.go
package utils

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe key from a display name: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, no leading or trailing
// hyphen. Used for game keys and for legacy products that arrive without one.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
