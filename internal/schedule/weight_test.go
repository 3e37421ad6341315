package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionAt(id string, day time.Weekday, start, end int) Section {
	return Section{ID: id, Blocks: []TimeBlock{{Day: day, Start: start, End: end}}}
}

func TestEvaluateSingleDayGap(t *testing.T) {
	// 10:00-10:50 then 11:00-11:50 leaves a 10 minute gap.
	cost, ok := Evaluate([]Section{
		sectionAt("C1-10AM", time.Monday, 10*60, 10*60+50),
		sectionAt("C2-11AM", time.Monday, 11*60, 11*60+50),
	})
	require.True(t, ok)
	assert.Equal(t, 10, cost.Weight)
	assert.Equal(t, 1, cost.DaysWithClasses)
	assert.Equal(t, 110, cost.Span)
}

func TestEvaluateSumsAcrossDays(t *testing.T) {
	cost, ok := Evaluate([]Section{
		sectionAt("A", time.Monday, 9*60, 10*60),
		sectionAt("B", time.Monday, 11*60, 12*60),
		sectionAt("C", time.Tuesday, 9*60, 10*60),
		sectionAt("D", time.Tuesday, 10*60+30, 11*60),
	})
	require.True(t, ok)
	assert.Equal(t, 60+30, cost.Weight)
	assert.Equal(t, 2, cost.DaysWithClasses)
}

func TestEvaluateSingleBlockDaysContributeNothing(t *testing.T) {
	cost, ok := Evaluate([]Section{
		sectionAt("A", time.Monday, 9*60, 10*60),
		sectionAt("B", time.Wednesday, 14*60, 15*60),
	})
	require.True(t, ok)
	assert.Equal(t, 0, cost.Weight)
	assert.Equal(t, 2, cost.DaysWithClasses)
}

func TestEvaluateBackToBackIsFree(t *testing.T) {
	cost, ok := Evaluate([]Section{
		sectionAt("A", time.Monday, 9*60, 10*60),
		sectionAt("B", time.Monday, 10*60, 11*60),
	})
	require.True(t, ok)
	assert.Equal(t, 0, cost.Weight)
}

func TestEvaluateDetectsOverlap(t *testing.T) {
	_, ok := Evaluate([]Section{
		sectionAt("A", time.Monday, 9*60, 10*60),
		sectionAt("B", time.Monday, 9*60+30, 10*60+30),
	})
	assert.False(t, ok)
}

func TestEvaluateEmpty(t *testing.T) {
	cost, ok := Evaluate(nil)
	require.True(t, ok)
	assert.Zero(t, cost.Weight)
	assert.Zero(t, cost.DaysWithClasses)
}

func TestEvaluateGapFillingSectionLowersWeight(t *testing.T) {
	// 9:00-10:00 and 13:00-14:00 leave a 180 minute gap; a block that
	// covers 10:00-13:00 fills it entirely.
	prefix, ok := Evaluate([]Section{
		sectionAt("A", time.Monday, 9*60, 10*60),
		sectionAt("B", time.Monday, 13*60, 14*60),
	})
	require.True(t, ok)
	assert.Equal(t, 180, prefix.Weight)

	complete, ok := Evaluate([]Section{
		sectionAt("A", time.Monday, 9*60, 10*60),
		sectionAt("B", time.Monday, 13*60, 14*60),
		sectionAt("C", time.Monday, 10*60, 13*60),
	})
	require.True(t, ok)
	assert.Zero(t, complete.Weight)
	assert.Less(t, complete.Weight, prefix.Weight)
}
