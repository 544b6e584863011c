package storage

import (
	"strings"
)

// isUniqueConstraintError performs a cheap check across supported drivers.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	// sqlite | mysql | postgres common markers
	return containsAny(msg, "UNIQUE constraint failed") ||
		containsAny(msg, "Duplicate entry", "Error 1062") ||
		containsAny(msg, "duplicate key value", "violates unique constraint")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
