package schedule

import (
	"sort"
	"time"
)

// Cost summarises the idle-time evaluation of a (possibly partial)
// assignment.
type Cost struct {
	Weight          int
	Span            int
	DaysWithClasses int
}

// Evaluate scores a set of chosen sections: blocks are grouped per
// weekday, sorted by start, and the gaps between consecutive blocks are
// summed. Days with fewer than two blocks contribute no gap. The second
// return is false when any two blocks overlap, in which case no finite
// weight exists.
//
// The weight of a prefix does not bound its extensions: a later block
// placed inside an existing gap replaces that gap with two smaller
// ones, so adding a section can lower the total. The search must not
// prune on it.
func Evaluate(sections []Section) (Cost, bool) {
	byDay := make(map[time.Weekday][]TimeBlock)
	for _, s := range sections {
		for _, b := range s.Blocks {
			byDay[b.Day] = append(byDay[b.Day], b)
		}
	}

	var cost Cost
	for _, blocks := range byDay {
		sort.Slice(blocks, func(i, j int) bool {
			if blocks[i].Start != blocks[j].Start {
				return blocks[i].Start < blocks[j].Start
			}
			return blocks[i].End < blocks[j].End
		})

		cost.DaysWithClasses++
		cost.Span += blocks[len(blocks)-1].End - blocks[0].Start

		for i := 0; i < len(blocks)-1; i++ {
			if blocks[i].End > blocks[i+1].Start {
				return Cost{}, false
			}
			cost.Weight += blocks[i+1].Start - blocks[i].End
		}
	}
	return cost, true
}

// less orders two evaluated assignments deterministically: weight, then
// span, then the sorted section-ID key. Used for both result ordering
// and bounded top-N retention.
func less(wa, sa int, ka string, wb, sb int, kb string) bool {
	if wa != wb {
		return wa < wb
	}
	if sa != sb {
		return sa < sb
	}
	return ka < kb
}
