package schedule

// FilterCriteria holds the user constraints applied to raw section
// lists before the search runs. Read-only during a request.
type FilterCriteria struct {
	EarliestStart          int  `json:"earliest_start"`
	LatestEnd              int  `json:"latest_end"`
	OpenSeatsOnly          bool `json:"open_seats_only"`
	ExcludeSatelliteCampus bool `json:"exclude_satellite_campus"`
	ExcludeFirstYearCohort bool `json:"exclude_first_year_cohort"`
}

// DefaultCriteria returns the stock filter set: 8:00-17:00 window, open
// seats only, satellite-campus and first-year-cohort sections excluded.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		EarliestStart:          8 * 60,
		LatestEnd:              17 * 60,
		OpenSeatsOnly:          true,
		ExcludeSatelliteCampus: true,
		ExcludeFirstYearCohort: true,
	}
}

// Validate reports a usage error for an empty or inverted time window.
func (c FilterCriteria) Validate() error {
	if c.EarliestStart < 0 || c.LatestEnd > 24*60 {
		return &InvalidRequestError{Reason: "time window out of range"}
	}
	if c.EarliestStart >= c.LatestEnd {
		return &InvalidRequestError{Reason: "earliest start must be before latest end"}
	}
	return nil
}

// Allows reports whether a section satisfies every criterion.
func (c FilterCriteria) Allows(s Section) bool {
	if c.OpenSeatsOnly && s.SeatsOpen <= 0 {
		return false
	}
	if c.ExcludeSatelliteCampus && s.SatelliteCampus {
		return false
	}
	if c.ExcludeFirstYearCohort && s.FirstYearCohort {
		return false
	}
	for _, b := range s.Blocks {
		if b.Start < c.EarliestStart || b.End > c.LatestEnd {
			return false
		}
	}
	return true
}

// Apply returns the sections passing the criteria, preserving order.
func (c FilterCriteria) Apply(sections []Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if c.Allows(s) {
			out = append(out, s)
		}
	}
	return out
}
