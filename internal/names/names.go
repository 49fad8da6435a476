// Package names normalizes player-typed names of items, characters and
// verbs so lookups ignore case, including accented letters.
package names

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key returns the case-folded form of s used as a lookup key.
func Key(s string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(s))
}

// Equal reports whether a and b name the same thing.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
