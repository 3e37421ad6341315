package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plastron-io/plastron-api/internal/schedule"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNormalizedCourses(t *testing.T) {
	req := ScheduleRequest{Courses: []string{" cmsc351 ", "Math240"}}
	got, err := req.NormalizedCourses()
	require.NoError(t, err)
	assert.Equal(t, []string{"CMSC351", "MATH240"}, got)
}

func TestNormalizedCoursesRejectsDuplicates(t *testing.T) {
	req := ScheduleRequest{Courses: []string{"CMSC351", "cmsc351"}}
	_, err := req.NormalizedCourses()
	var invalid *schedule.InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "duplicate")
}

func TestCriteriaDefaults(t *testing.T) {
	req := ScheduleRequest{Courses: []string{"CMSC351"}}
	c, err := req.Criteria()
	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultCriteria(), c)
}

func TestCriteriaOverrides(t *testing.T) {
	req := ScheduleRequest{
		Courses: []string{"CMSC351"},
		Filters: &ScheduleFilters{
			EarliestStart:          strPtr("10:00am"),
			LatestEnd:              strPtr("20:00"),
			OpenSeatsOnly:          boolPtr(false),
			ExcludeSatelliteCampus: boolPtr(false),
		},
	}
	c, err := req.Criteria()
	require.NoError(t, err)
	assert.Equal(t, 10*60, c.EarliestStart)
	assert.Equal(t, 20*60, c.LatestEnd)
	assert.False(t, c.OpenSeatsOnly)
	assert.False(t, c.ExcludeSatelliteCampus)
	// Untouched fields keep their defaults.
	assert.True(t, c.ExcludeFirstYearCohort)
}

func TestFiltersAcceptLegacyKeys(t *testing.T) {
	var f ScheduleFilters
	require.NoError(t, json.Unmarshal([]byte(`{"open_seats":false,"no_esg":false,"no_fc":true}`), &f))
	require.NotNil(t, f.OpenSeatsOnly)
	assert.False(t, *f.OpenSeatsOnly)
	require.NotNil(t, f.ExcludeSatelliteCampus)
	assert.False(t, *f.ExcludeSatelliteCampus)
	require.NotNil(t, f.ExcludeFirstYearCohort)
	assert.True(t, *f.ExcludeFirstYearCohort)
}

func TestFiltersPreferCurrentKeys(t *testing.T) {
	var f ScheduleFilters
	require.NoError(t, json.Unmarshal([]byte(`{"open_seats_only":true,"open_seats":false}`), &f))
	require.NotNil(t, f.OpenSeatsOnly)
	assert.True(t, *f.OpenSeatsOnly)
}

func TestCriteriaBadClock(t *testing.T) {
	req := ScheduleRequest{
		Courses: []string{"CMSC351"},
		Filters: &ScheduleFilters{EarliestStart: strPtr("sometime")},
	}
	_, err := req.Criteria()
	var invalid *schedule.InvalidRequestError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "earliest_start")
}

func TestNewScheduleResponse(t *testing.T) {
	result := schedule.SearchResult{
		Schedules: []schedule.Schedule{{
			Sections: []schedule.Section{{
				ID:         "CMSC351-0101",
				CourseID:   "CMSC351",
				SeatsOpen:  5,
				SeatsTotal: 30,
				Blocks: []schedule.TimeBlock{
					{Day: time.Monday, Start: 9 * 60, End: 9*60 + 50, Location: "CSI 1115"},
				},
			}},
			Weight:          15,
			Span:            65,
			DaysWithClasses: 1,
		}},
		Expanded:  42,
		Truncated: false,
	}

	resp := NewScheduleResponse(result)
	require.Len(t, resp.Schedules, 1)
	assert.Equal(t, 42, resp.ExpandedNodes)

	s := resp.Schedules[0]
	assert.Equal(t, 1, s.Rank)
	assert.Equal(t, 15, s.TotalGapMinutes)
	assert.Equal(t, 65, s.SpanMinutes)
	assert.Equal(t, 1, s.DaysWithMeetings)

	require.Len(t, s.Sections, 1)
	require.Len(t, s.Sections[0].Meetings, 1)
	m := s.Sections[0].Meetings[0]
	assert.Equal(t, "Monday", m.Day)
	assert.Equal(t, "9:00AM", m.Start)
	assert.Equal(t, "9:50AM", m.End)
	assert.Equal(t, "CSI 1115", m.Location)
}
