// Package utils provides small helper functions used across layers,
// independent of domain logic.
package utils

import "strconv"

// AtoiDefault converts s to an int, returning def when s is empty or not a
// valid integer. The history and insights endpoints use it to parse the
// optional ?limit= query parameter, where 0 means "service default".
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
