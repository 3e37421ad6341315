package schedule

import (
	"container/heap"
	"sort"
)

// DefaultMaxExpansions bounds worst-case latency for pathologically
// unconstrained requests when the caller does not set a budget.
const DefaultMaxExpansions = 200000

// SearchOptions tunes a single search run.
type SearchOptions struct {
	// Top is how many schedules to retain. Must be at least 1.
	Top int
	// MaxExpansions caps the number of partial assignments expanded
	// before the search gives up. Zero selects DefaultMaxExpansions.
	MaxExpansions int
}

// SearchResult carries the ranked schedules plus run diagnostics.
type SearchResult struct {
	Schedules []Schedule
	// Expanded counts the partial assignments taken off the frontier.
	Expanded int
	// Truncated is set when the expansion budget ran out before the
	// frontier was exhausted; the returned schedules are then best
	// found so far rather than proven optimal.
	Truncated bool
}

// node is a partial assignment on the frontier: one chosen section for
// each of the first depth courses in search order.
type node struct {
	cost   Cost
	depth  int
	chosen []Section
	key    string
}

type frontier []*node

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	return less(f[i].cost.Weight, f[i].cost.Span, f[i].key,
		f[j].cost.Weight, f[j].cost.Span, f[j].key)
}
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*node)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	return n
}

// topN is a fixed-capacity retention structure holding the best
// complete schedules seen so far, worst at the root.
type topN struct {
	cap   int
	items []Schedule
	keys  []string
}

func (t *topN) Len() int { return len(t.items) }
func (t *topN) Less(i, j int) bool {
	// Inverted: the worst schedule must sit at the heap root.
	return less(t.items[j].Weight, t.items[j].Span, t.keys[j],
		t.items[i].Weight, t.items[i].Span, t.keys[i])
}
func (t *topN) Swap(i, j int) {
	t.items[i], t.items[j] = t.items[j], t.items[i]
	t.keys[i], t.keys[j] = t.keys[j], t.keys[i]
}
func (t *topN) Push(x interface{}) {
	s := x.(Schedule)
	t.items = append(t.items, s)
	t.keys = append(t.keys, s.Key())
}
func (t *topN) Pop() interface{} {
	s := t.items[len(t.items)-1]
	t.items = t.items[:len(t.items)-1]
	t.keys = t.keys[:len(t.keys)-1]
	return s
}

func (t *topN) full() bool { return len(t.items) >= t.cap }

// offer inserts a candidate, evicting the current worst when the
// candidate beats it. Equal composite keys are kept out.
func (t *topN) offer(s Schedule) {
	if !t.full() {
		heap.Push(t, s)
		return
	}
	key := s.Key()
	if less(s.Weight, s.Span, key, t.items[0].Weight, t.items[0].Span, t.keys[0]) {
		heap.Pop(t)
		heap.Push(t, s)
	}
}

// sorted drains the retention heap into ascending weight order.
func (t *topN) sorted() []Schedule {
	out := make([]Schedule, len(t.items))
	copy(out, t.items)
	sort.Slice(out, func(i, j int) bool {
		return less(out[i].Weight, out[i].Span, out[i].Key(),
			out[j].Weight, out[j].Span, out[j].Key())
	})
	return out
}

// Search enumerates conflict-free one-section-per-course assignments
// and returns the Top lowest-weight complete schedules. The frontier is
// ordered by the weight of each partial assignment so that low-gap
// candidates complete early, but that weight is only a heuristic: a
// later section can land inside an existing gap and shrink the total,
// so no weight-based cutoff is sound. The search therefore visits every
// consistent assignment (conflict pruning only) and is exact whenever
// the expansion budget is not hit; under a hit budget the result is
// best-found-so-far and Truncated is set. Courses are visited most
// constrained first to fail fast.
func Search(courses []Course, opts SearchOptions) (SearchResult, error) {
	if opts.Top <= 0 {
		return SearchResult{}, &InvalidRequestError{Reason: "top must be at least 1"}
	}
	if len(courses) == 0 {
		return SearchResult{}, &InvalidRequestError{Reason: "course list is empty"}
	}
	if opts.MaxExpansions <= 0 {
		opts.MaxExpansions = DefaultMaxExpansions
	}
	for _, c := range courses {
		if len(c.Sections) == 0 {
			return SearchResult{}, &NoCandidateSectionsError{CourseID: c.ID}
		}
	}

	// order[i] is the index into courses of the i-th course assigned.
	order := make([]int, len(courses))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := courses[order[i]], courses[order[j]]
		if len(a.Sections) != len(b.Sections) {
			return len(a.Sections) < len(b.Sections)
		}
		return a.ID < b.ID
	})

	open := &frontier{{}}
	heap.Init(open)
	best := &topN{cap: opts.Top}
	var res SearchResult

	for open.Len() > 0 {
		n := heap.Pop(open).(*node)

		if n.depth == len(courses) {
			best.offer(buildSchedule(courses, order, n))
			continue
		}

		if res.Expanded >= opts.MaxExpansions {
			res.Truncated = true
			break
		}
		res.Expanded++

		for _, sec := range courses[order[n.depth]].Sections {
			if !Consistent(n.chosen, sec) {
				continue
			}
			chosen := make([]Section, len(n.chosen)+1)
			copy(chosen, n.chosen)
			chosen[len(n.chosen)] = sec

			cost, ok := Evaluate(chosen)
			if !ok {
				continue
			}
			heap.Push(open, &node{
				cost:   cost,
				depth:  n.depth + 1,
				chosen: chosen,
				key:    n.key + "+" + sec.ID,
			})
		}
	}

	res.Schedules = best.sorted()
	return res, nil
}

// buildSchedule maps the search-order assignment back onto the
// caller's course order.
func buildSchedule(courses []Course, order []int, n *node) Schedule {
	sections := make([]Section, len(courses))
	for i, sec := range n.chosen {
		sections[order[i]] = sec
	}
	return Schedule{
		Sections:        sections,
		Weight:          n.cost.Weight,
		Span:            n.cost.Span,
		DaysWithClasses: n.cost.DaysWithClasses,
	}
}
