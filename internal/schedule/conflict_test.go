package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mondayBlock(start, end int) TimeBlock {
	return TimeBlock{Day: time.Monday, Start: start, End: end}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b TimeBlock
		want bool
	}{
		{"disjoint", mondayBlock(540, 600), mondayBlock(660, 720), false},
		{"partial overlap", mondayBlock(540, 600), mondayBlock(570, 630), true},
		{"containment", mondayBlock(540, 720), mondayBlock(600, 660), true},
		{"identical", mondayBlock(540, 600), mondayBlock(540, 600), true},
		{"back to back share boundary", mondayBlock(540, 600), mondayBlock(600, 660), false},
		{"different days", mondayBlock(540, 600), TimeBlock{Day: time.Tuesday, Start: 540, End: 600}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.a, tc.b))
			assert.Equal(t, tc.want, Overlaps(tc.b, tc.a))
		})
	}
}

func TestConflicts(t *testing.T) {
	a := Section{ID: "A-0101", Blocks: []TimeBlock{mondayBlock(540, 600), {Day: time.Wednesday, Start: 540, End: 600}}}
	b := Section{ID: "B-0101", Blocks: []TimeBlock{{Day: time.Wednesday, Start: 570, End: 630}}}
	c := Section{ID: "C-0101", Blocks: []TimeBlock{{Day: time.Friday, Start: 540, End: 600}}}

	assert.True(t, Conflicts(a, b))
	assert.False(t, Conflicts(a, c))
	assert.False(t, Conflicts(b, c))
}

func TestConsistent(t *testing.T) {
	chosen := []Section{
		{ID: "A-0101", Blocks: []TimeBlock{mondayBlock(540, 600)}},
		{ID: "B-0101", Blocks: []TimeBlock{mondayBlock(660, 720)}},
	}
	ok := Section{ID: "C-0101", Blocks: []TimeBlock{mondayBlock(600, 660)}}
	clash := Section{ID: "D-0101", Blocks: []TimeBlock{mondayBlock(590, 650)}}

	assert.True(t, Consistent(chosen, ok))
	assert.False(t, Consistent(chosen, clash))
	assert.True(t, Consistent(nil, clash))
}
