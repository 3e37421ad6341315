package catalog

import (
	"context"

	"github.com/plastron-io/plastron-api/internal/schedule"
)

// Source supplies the raw section records for a course. The schedule
// core never talks to a Source directly; the service layer fetches and
// hands the core already-loaded data.
type Source interface {
	Sections(ctx context.Context, courseID string) ([]schedule.Section, error)
}
