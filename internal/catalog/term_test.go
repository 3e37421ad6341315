package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestClosestTermID(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{date(2026, time.April, 1), "202608"},
		{date(2026, time.July, 15), "202608"},
		{date(2026, time.January, 15), "202601"},
		{date(2026, time.December, 1), "202601"},
		// Season flips on Feb 21 and Sep 21.
		{date(2026, time.February, 20), "202601"},
		{date(2026, time.February, 21), "202608"},
		{date(2026, time.September, 21), "202608"},
		{date(2026, time.September, 22), "202601"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClosestTermID(tc.date), tc.date.Format("2006-01-02"))
	}
}
