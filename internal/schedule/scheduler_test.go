package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wideOpen() FilterCriteria {
	return FilterCriteria{EarliestStart: 0, LatestEnd: 24 * 60}
}

func TestGeneratorHappyPath(t *testing.T) {
	res, err := Generator{}.Generate(Request{
		Courses:  twoCourseFixture(),
		Criteria: wideOpen(),
		Top:      2,
	})
	require.NoError(t, err)
	require.Len(t, res.Schedules, 2)
	assert.Equal(t, 15, res.Schedules[0].Weight)
}

func TestGeneratorAppliesFilters(t *testing.T) {
	courses := twoCourseFixture()
	// Close B's open seats on its cheap section; the search must route
	// around it.
	for i := range courses[1].Sections {
		if courses[1].Sections[i].ID == "B-0101" {
			courses[1].Sections[i].SeatsOpen = 0
		} else {
			courses[1].Sections[i].SeatsOpen = 5
		}
	}
	for i := range courses[0].Sections {
		courses[0].Sections[i].SeatsOpen = 5
	}

	criteria := wideOpen()
	criteria.OpenSeatsOnly = true
	res, err := Generator{}.Generate(Request{Courses: courses, Criteria: criteria, Top: 5})
	require.NoError(t, err)
	for _, s := range res.Schedules {
		for _, sec := range s.Sections {
			assert.NotEqual(t, "B-0101", sec.ID)
			assert.True(t, criteria.Allows(sec))
		}
	}
}

func TestGeneratorNoCandidateSections(t *testing.T) {
	courses := twoCourseFixture()
	for i := range courses[1].Sections {
		courses[1].Sections[i].SeatsOpen = 0
	}
	criteria := wideOpen()
	criteria.OpenSeatsOnly = true

	_, err := Generator{}.Generate(Request{Courses: courses, Criteria: criteria, Top: 1})
	var noCand *NoCandidateSectionsError
	require.ErrorAs(t, err, &noCand)
	assert.Equal(t, "B", noCand.CourseID)
}

func TestGeneratorInfeasible(t *testing.T) {
	clash := sectionAt("A-0101", time.Monday, 10*60, 11*60)
	clash.CourseID = "A"
	clash2 := clash
	clash2.ID = "B-0101"
	clash2.CourseID = "B"
	_, err := Generator{}.Generate(Request{
		Courses: []Course{
			{ID: "A", Sections: []Section{clash}},
			{ID: "B", Sections: []Section{clash2}},
		},
		Criteria: wideOpen(),
		Top:      1,
	})
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestGeneratorInvalidRequests(t *testing.T) {
	var invalid *InvalidRequestError

	_, err := Generator{}.Generate(Request{Courses: twoCourseFixture(), Criteria: wideOpen(), Top: 0})
	assert.ErrorAs(t, err, &invalid)

	_, err = Generator{}.Generate(Request{Criteria: wideOpen(), Top: 1})
	assert.ErrorAs(t, err, &invalid)

	bad := FilterCriteria{EarliestStart: 18 * 60, LatestEnd: 9 * 60}
	_, err = Generator{}.Generate(Request{Courses: twoCourseFixture(), Criteria: bad, Top: 1})
	assert.ErrorAs(t, err, &invalid)
}

func TestGeneratorIdempotent(t *testing.T) {
	req := Request{Courses: twoCourseFixture(), Criteria: wideOpen(), Top: 3}
	first, err := Generator{}.Generate(req)
	require.NoError(t, err)
	second, err := Generator{}.Generate(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
