package schedule

// Overlaps reports whether two blocks intersect on the same weekday.
// Intervals are half-open, so back-to-back blocks sharing a boundary
// minute do not conflict.
func Overlaps(a, b TimeBlock) bool {
	return a.Day == b.Day && a.Start < b.End && b.Start < a.End
}

// Conflicts reports whether any pair of the two sections' blocks
// overlaps.
func Conflicts(a, b Section) bool {
	for _, ba := range a.Blocks {
		for _, bb := range b.Blocks {
			if Overlaps(ba, bb) {
				return true
			}
		}
	}
	return false
}

// Consistent reports whether a candidate section conflicts with none of
// the sections already chosen. This is the search's pruning primitive.
func Consistent(chosen []Section, candidate Section) bool {
	for _, s := range chosen {
		if Conflicts(s, candidate) {
			return false
		}
	}
	return true
}
