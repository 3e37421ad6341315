package schedule

import (
	"errors"
	"fmt"
)

// ErrInfeasible reports that the search completed without finding a
// single conflict-free combination.
var ErrInfeasible = errors.New("no conflict-free schedule exists for the requested courses")

// InvalidRequestError marks a usage error: the caller supplied
// parameters the search cannot meaningfully run with.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid schedule request: " + e.Reason
}

// UnknownCourseError reports a requested course with no entry in the
// supplied section data.
type UnknownCourseError struct {
	CourseID string
}

func (e *UnknownCourseError) Error() string {
	return fmt.Sprintf("course %s not found in catalog", e.CourseID)
}

// NoCandidateSectionsError reports a course whose sections were all
// eliminated by the filter criteria.
type NoCandidateSectionsError struct {
	CourseID string
}

func (e *NoCandidateSectionsError) Error() string {
	return fmt.Sprintf("course %s has no sections left after filtering", e.CourseID)
}
