package repository

// DefaultListLimit is the page size used when a caller passes a non-positive limit.
const DefaultListLimit = 50

// MaxListLimit caps page sizes so a single request cannot scan the whole table.
const MaxListLimit = 100

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
