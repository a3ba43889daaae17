package models

import "time"

// Clock values are zero-padded "HH:MM" wall-clock strings. The zero padding
// makes lexicographic comparison agree with chronological order, so the same
// half-open overlap predicate works in Go and in SQL TIME comparisons.
const clockLayout = "15:04"

// ValidClock reports whether s is a well-formed HH:MM wall-clock value.
func ValidClock(s string) bool {
	if len(s) != len(clockLayout) {
		return false
	}
	_, err := time.Parse(clockLayout, s)
	return err == nil
}
