// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"encoding/json"
	"strings"

	"github.com/plastron-io/plastron-api/internal/schedule"
)

// ScheduleRequest is the body of POST /schedules and its variants.
type ScheduleRequest struct {
	// Courses lists the catalog course IDs to schedule, one section each.
	Courses []string `json:"courses" binding:"required,min=1,max=10,dive,course_id"`
	// Top bounds how many ranked schedules to return. Defaults to 1.
	Top     int              `json:"top" binding:"omitempty,min=1,max=50"`
	Filters *ScheduleFilters `json:"filters" binding:"omitempty"`
}

// ScheduleFilters carries optional section constraints. Absent fields
// keep their defaults: an 08:00-17:00 window with open-seat, satellite
// campus and first-year cohort filtering on.
type ScheduleFilters struct {
	EarliestStart          *string `json:"earliest_start"`
	LatestEnd              *string `json:"latest_end"`
	OpenSeatsOnly          *bool   `json:"open_seats_only"`
	ExcludeSatelliteCampus *bool   `json:"exclude_satellite_campus"`
	ExcludeFirstYearCohort *bool   `json:"exclude_first_year_cohort"`
}

// UnmarshalJSON also accepts the legacy filter keys (open_seats,
// no_esg, no_fc) older clients still send.
func (f *ScheduleFilters) UnmarshalJSON(data []byte) error {
	type plain ScheduleFilters
	var aux struct {
		plain
		OpenSeats *bool `json:"open_seats"`
		NoESG     *bool `json:"no_esg"`
		NoFC      *bool `json:"no_fc"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*f = ScheduleFilters(aux.plain)
	if f.OpenSeatsOnly == nil {
		f.OpenSeatsOnly = aux.OpenSeats
	}
	if f.ExcludeSatelliteCampus == nil {
		f.ExcludeSatelliteCampus = aux.NoESG
	}
	if f.ExcludeFirstYearCohort == nil {
		f.ExcludeFirstYearCohort = aux.NoFC
	}
	return nil
}

// NormalizedCourses returns the request's course IDs upper-cased and
// trimmed, rejecting duplicates.
func (r ScheduleRequest) NormalizedCourses() ([]string, error) {
	out := make([]string, 0, len(r.Courses))
	seen := make(map[string]struct{}, len(r.Courses))
	for _, raw := range r.Courses {
		id := strings.ToUpper(strings.TrimSpace(raw))
		if id == "" {
			return nil, &schedule.InvalidRequestError{Reason: "blank course ID"}
		}
		if _, dup := seen[id]; dup {
			return nil, &schedule.InvalidRequestError{Reason: "duplicate course " + id}
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// Criteria resolves the filter block against the defaults.
func (r ScheduleRequest) Criteria() (schedule.FilterCriteria, error) {
	c := schedule.DefaultCriteria()
	f := r.Filters
	if f == nil {
		return c, nil
	}
	if f.EarliestStart != nil {
		m, err := schedule.ParseClock(*f.EarliestStart)
		if err != nil {
			return c, &schedule.InvalidRequestError{Reason: "earliest_start: " + err.Error()}
		}
		c.EarliestStart = m
	}
	if f.LatestEnd != nil {
		m, err := schedule.ParseClock(*f.LatestEnd)
		if err != nil {
			return c, &schedule.InvalidRequestError{Reason: "latest_end: " + err.Error()}
		}
		c.LatestEnd = m
	}
	if f.OpenSeatsOnly != nil {
		c.OpenSeatsOnly = *f.OpenSeatsOnly
	}
	if f.ExcludeSatelliteCampus != nil {
		c.ExcludeSatelliteCampus = *f.ExcludeSatelliteCampus
	}
	if f.ExcludeFirstYearCohort != nil {
		c.ExcludeFirstYearCohort = *f.ExcludeFirstYearCohort
	}
	return c, nil
}

// ScheduleResponse is the ranked result set for one request.
type ScheduleResponse struct {
	Schedules []GeneratedSchedule `json:"schedules"`
	// ExpandedNodes is how many search states were explored.
	ExpandedNodes int `json:"expanded_nodes"`
	// Truncated reports that the search hit its expansion budget, so
	// the ranking may be incomplete.
	Truncated bool `json:"truncated"`
}

// GeneratedSchedule is one ranked schedule.
type GeneratedSchedule struct {
	Rank             int           `json:"rank"`
	TotalGapMinutes  int           `json:"total_gap_minutes"`
	SpanMinutes      int           `json:"span_minutes"`
	DaysWithMeetings int           `json:"days_with_meetings"`
	Sections         []SectionView `json:"sections"`
}

// SectionView is the API projection of a chosen section.
type SectionView struct {
	SectionID       string        `json:"section_id"`
	CourseID        string        `json:"course_id"`
	SeatsOpen       int           `json:"seats_open"`
	SeatsTotal      int           `json:"seats_total"`
	Waitlist        int           `json:"waitlist,omitempty"`
	SatelliteCampus bool          `json:"satellite_campus,omitempty"`
	FirstYearCohort bool          `json:"first_year_cohort,omitempty"`
	Instructors     []string      `json:"instructors,omitempty"`
	Meetings        []MeetingView `json:"meetings"`
}

// MeetingView is one weekly meeting of a section.
type MeetingView struct {
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
}

// VisualizedResponse pairs the ranked schedules with a text rendering.
type VisualizedResponse struct {
	ScheduleResponse
	Rendered string `json:"rendered"`
}

// NewScheduleResponse converts a search result into its API shape.
func NewScheduleResponse(result schedule.SearchResult) ScheduleResponse {
	out := ScheduleResponse{
		Schedules:     make([]GeneratedSchedule, len(result.Schedules)),
		ExpandedNodes: result.Expanded,
		Truncated:     result.Truncated,
	}
	for i, s := range result.Schedules {
		out.Schedules[i] = newGeneratedSchedule(i+1, s)
	}
	return out
}

func newGeneratedSchedule(rank int, s schedule.Schedule) GeneratedSchedule {
	g := GeneratedSchedule{
		Rank:             rank,
		TotalGapMinutes:  s.Weight,
		SpanMinutes:      s.Span,
		DaysWithMeetings: s.DaysWithClasses,
		Sections:         make([]SectionView, len(s.Sections)),
	}
	for i, sec := range s.Sections {
		view := SectionView{
			SectionID:       sec.ID,
			CourseID:        sec.CourseID,
			SeatsOpen:       sec.SeatsOpen,
			SeatsTotal:      sec.SeatsTotal,
			Waitlist:        sec.Waitlist,
			SatelliteCampus: sec.SatelliteCampus,
			FirstYearCohort: sec.FirstYearCohort,
			Instructors:     sec.Instructors,
			Meetings:        make([]MeetingView, len(sec.Blocks)),
		}
		for j, b := range sec.Blocks {
			view.Meetings[j] = MeetingView{
				Day:      b.Day.String(),
				Start:    schedule.FormatClock(b.Start),
				End:      schedule.FormatClock(b.End),
				Location: b.Location,
			}
		}
		g.Sections[i] = view
	}
	return g
}
