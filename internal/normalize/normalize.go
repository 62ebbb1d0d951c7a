// Package normalize provides input normalization for catalog fields.
package normalize

import "strings"

// Level normalizes a single location path segment: leading and trailing
// whitespace is trimmed, and a blank or whitespace-only value becomes the
// empty string, which the rest of the system treats as "absent".
func Level(s string) string {
	return strings.TrimSpace(s)
}

// Levels normalizes all five path segments at once.
func Levels(l1, l2, l3, l4, l5 string) [5]string {
	return [5]string{Level(l1), Level(l2), Level(l3), Level(l4), Level(l5)}
}

// LanguageCode trims a language value and strips any locale region suffix,
// so "en-US" and "ru_RU" reduce to their bare codes. Case is preserved:
// filtering matches codes exactly as stored.
func LanguageCode(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	return s
}
