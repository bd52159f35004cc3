package domain

import "strings"

// NormalizeEmail trims whitespace and lowercases an address so lookups and
// notification routing agree on one spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail compares two addresses after normalization. Empty never matches.
func SameEmail(a, b string) bool {
	na := NormalizeEmail(a)
	return na != "" && na == NormalizeEmail(b)
}
