package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeBlock is a single weekly recurring meeting interval. Start and End
// are minutes from midnight, with Start < End and End exclusive.
type TimeBlock struct {
	Day      time.Weekday `json:"day"`
	Start    int          `json:"start"`
	End      int          `json:"end"`
	Location string       `json:"location,omitempty"`
}

// Valid reports whether the block covers a non-empty slice of one day.
func (b TimeBlock) Valid() bool {
	return b.Start >= 0 && b.End <= 24*60 && b.Start < b.End
}

func (b TimeBlock) String() string {
	return fmt.Sprintf("%s %s-%s", dayCode(b.Day), FormatClock(b.Start), FormatClock(b.End))
}

// Section is one scheduled offering of a course. Immutable once loaded.
type Section struct {
	ID              string      `json:"section_id"`
	CourseID        string      `json:"course_id"`
	Blocks          []TimeBlock `json:"blocks"`
	SeatsOpen       int         `json:"seats_open"`
	SeatsTotal      int         `json:"seats_total"`
	Waitlist        int         `json:"waitlist,omitempty"`
	SatelliteCampus bool        `json:"satellite_campus,omitempty"`
	FirstYearCohort bool        `json:"first_year_cohort,omitempty"`
	Instructors     []string    `json:"instructors,omitempty"`
}

// Course is a requested catalog entry with its candidate sections.
type Course struct {
	ID       string
	Sections []Section
}

// Schedule is a complete conflict-free assignment of one section per
// requested course. Produced only by the search; Sections preserves the
// request's course order.
type Schedule struct {
	Sections []Section `json:"sections"`
	// Weight is the total idle minutes between consecutive classes,
	// summed per day. Lower is better.
	Weight int `json:"weight"`
	// Span is the tie-break key: per-day first-start to last-end
	// minutes, summed across the week.
	Span            int `json:"span"`
	DaysWithClasses int `json:"days_with_classes"`
}

// SectionFor returns the chosen section for a course.
func (s Schedule) SectionFor(courseID string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.CourseID == courseID {
			return sec, true
		}
	}
	return Section{}, false
}

// Key is a deterministic identity for tie-breaking and deduplication:
// the chosen section IDs, sorted and joined.
func (s Schedule) Key() string {
	ids := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		ids[i] = sec.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, "+")
}

var dayCodes = map[string]time.Weekday{
	"M":  time.Monday,
	"Tu": time.Tuesday,
	"W":  time.Wednesday,
	"Th": time.Thursday,
	"F":  time.Friday,
	"Sa": time.Saturday,
	"Su": time.Sunday,
}

// ParseDays expands a catalog day string like "MWF" or "TuTh" into
// individual weekdays.
func ParseDays(days string) ([]time.Weekday, error) {
	var out []time.Weekday
	for i := 0; i < len(days); {
		// Codes are one capital letter optionally followed by lowercase.
		j := i + 1
		for j < len(days) && days[j] >= 'a' && days[j] <= 'z' {
			j++
		}
		code := days[i:j]
		day, ok := dayCodes[code]
		if !ok {
			return nil, fmt.Errorf("unknown day code %q in %q", code, days)
		}
		out = append(out, day)
		i = j
	}
	return out, nil
}

func dayCode(d time.Weekday) string {
	for code, day := range dayCodes {
		if day == d {
			return code
		}
	}
	return d.String()[:2]
}

// ParseClock converts a wall-clock string to minutes from midnight.
// Both the catalog's "9:30am" style and plain 24-hour "09:30" are
// accepted.
func ParseClock(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty clock value")
	}
	for _, layout := range []string{"3:04PM", "15:04"} {
		if t, err := time.Parse(layout, strings.ToUpper(trimmed)); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized clock value %q", s)
}

// FormatClock renders minutes from midnight in the catalog's style,
// e.g. 555 -> "9:15AM".
func FormatClock(minutes int) string {
	t := time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format("3:04PM")
}
