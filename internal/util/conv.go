package util

import (
	"strconv"
)

// MustParseUint converts a path/query parameter to uint, returning 0 when the
// value does not parse.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// RoundPercent computes round-half-up of 100*part/total as an integer
// percentage. A zero total reports 0 instead of dividing by zero.
func RoundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}
