package schedule

// Generator is the facade the API and CLI layers call: it validates the
// request, filters each course's sections, runs the search and returns
// schedules in ascending weight order. It is stateless and safe for
// concurrent use; each request owns its own course data.
type Generator struct {
	// MaxExpansions caps the search per request. Zero selects
	// DefaultMaxExpansions.
	MaxExpansions int
}

// Request is one schedule-generation invocation.
type Request struct {
	Courses  []Course
	Criteria FilterCriteria
	Top      int
}

// Generate runs filter -> search -> weight over already-loaded section
// data. It performs no I/O. ErrInfeasible is returned alongside the
// (empty) result when every combination conflicts.
func (g Generator) Generate(req Request) (SearchResult, error) {
	if req.Top <= 0 {
		return SearchResult{}, &InvalidRequestError{Reason: "top must be at least 1"}
	}
	if len(req.Courses) == 0 {
		return SearchResult{}, &InvalidRequestError{Reason: "course list is empty"}
	}
	if err := req.Criteria.Validate(); err != nil {
		return SearchResult{}, err
	}

	filtered := make([]Course, len(req.Courses))
	for i, course := range req.Courses {
		kept := req.Criteria.Apply(course.Sections)
		if len(kept) == 0 {
			return SearchResult{}, &NoCandidateSectionsError{CourseID: course.ID}
		}
		filtered[i] = Course{ID: course.ID, Sections: kept}
	}

	result, err := Search(filtered, SearchOptions{Top: req.Top, MaxExpansions: g.MaxExpansions})
	if err != nil {
		return result, err
	}
	if len(result.Schedules) == 0 {
		return result, ErrInfeasible
	}
	return result, nil
}
