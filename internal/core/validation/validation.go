// Package validation holds the small input helpers shared by the domain
// services: enum normalization and membership checks.
package validation

import "strings"

// NormalizeEnum upper-cases a client-provided enum value and folds the common
// hyphenated variants ("in-progress" becomes "IN_PROGRESS").
func NormalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
}

// OneOf reports whether v is in the allowed set.
func OneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
