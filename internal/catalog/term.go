package catalog

import (
	"fmt"
	"time"
)

// isSpring reports whether the fall schedule of classes is the one
// currently published: once spring is underway the upcoming fall term
// becomes searchable, and vice versa.
func isSpring(date time.Time) bool {
	month := int(date.Month())
	day := date.Day()

	return (month > 2 && month < 9) ||
		(month == 2 && day >= 21) ||
		(month == 9 && day <= 21)
}

// ClosestTermID returns the term identifier the catalog expects for the
// nearest enrollable term, e.g. "202608" for fall 2026.
func ClosestTermID(date time.Time) string {
	if isSpring(date) {
		return fmt.Sprintf("%d08", date.Year())
	}
	return fmt.Sprintf("%d01", date.Year())
}
