// Package service holds the orchestration layer between HTTP handlers
// and the schedule domain: catalog fetches, search invocation, error
// normalisation and metrics.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/plastron-io/plastron-api/internal/catalog"
	"github.com/plastron-io/plastron-api/internal/dto"
	"github.com/plastron-io/plastron-api/internal/schedule"
	"github.com/plastron-io/plastron-api/pkg/config"
	appErrors "github.com/plastron-io/plastron-api/pkg/errors"
)

// ScheduleMetrics is the slice of MetricsService the schedule service
// needs. Nil-able for tests and the CLI.
type ScheduleMetrics interface {
	ObserveCatalogFetch(outcome string, duration time.Duration)
	ObserveSearch(expanded int, truncated bool, generated int)
}

// ScheduleService generates ranked schedules for course lists.
type ScheduleService struct {
	source     catalog.Source
	generator  schedule.Generator
	maxCourses int
	defaultTop int
	logger     *zap.Logger
	metrics    ScheduleMetrics
}

// NewScheduleService wires the service.
func NewScheduleService(source catalog.Source, cfg config.SearchConfig, logger *zap.Logger, metrics ScheduleMetrics) *ScheduleService {
	maxCourses := cfg.MaxCourses
	if maxCourses <= 0 {
		maxCourses = 10
	}
	defaultTop := cfg.DefaultTop
	if defaultTop <= 0 {
		defaultTop = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		source:     source,
		generator:  schedule.Generator{MaxExpansions: cfg.MaxExpansions},
		maxCourses: maxCourses,
		defaultTop: defaultTop,
		logger:     logger,
		metrics:    metrics,
	}
}

// Generate resolves the request's courses against the catalog, runs the
// search and returns the ranked result. Errors are already normalised
// to API errors.
func (s *ScheduleService) Generate(ctx context.Context, req dto.ScheduleRequest) (schedule.SearchResult, error) {
	courses, err := req.NormalizedCourses()
	if err != nil {
		return schedule.SearchResult{}, s.apiError(err)
	}
	if len(courses) > s.maxCourses {
		return schedule.SearchResult{}, appErrors.Wrap(
			fmt.Errorf("%d courses requested", len(courses)),
			appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			fmt.Sprintf("at most %d courses per request", s.maxCourses))
	}
	criteria, err := req.Criteria()
	if err != nil {
		return schedule.SearchResult{}, s.apiError(err)
	}

	top := req.Top
	if top <= 0 {
		top = s.defaultTop
	}

	loaded, err := s.loadCourses(ctx, courses)
	if err != nil {
		return schedule.SearchResult{}, s.apiError(err)
	}

	start := time.Now()
	result, err := s.generator.Generate(schedule.Request{Courses: loaded, Criteria: criteria, Top: top})
	if s.metrics != nil {
		s.metrics.ObserveSearch(result.Expanded, result.Truncated, len(result.Schedules))
	}
	if err != nil {
		return result, s.apiError(err)
	}

	s.logger.Info("schedules generated",
		zap.Strings("courses", courses),
		zap.Int("schedules", len(result.Schedules)),
		zap.Int("expanded", result.Expanded),
		zap.Bool("truncated", result.Truncated),
		zap.Duration("search_time", time.Since(start)))
	return result, nil
}

// loadCourses fetches section lists concurrently, preserving request
// order. The first error cancels the rest.
func (s *ScheduleService) loadCourses(ctx context.Context, courseIDs []string) ([]schedule.Course, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loaded := make([]schedule.Course, len(courseIDs))
	errs := make([]error, len(courseIDs))

	var wg sync.WaitGroup
	for i, id := range courseIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			start := time.Now()
			sections, err := s.source.Sections(ctx, id)
			if s.metrics != nil {
				s.metrics.ObserveCatalogFetch(fetchOutcome(err), time.Since(start))
			}
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			loaded[i] = schedule.Course{ID: id, Sections: sections}
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return loaded, nil
}

func fetchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		var unknown *schedule.UnknownCourseError
		if errors.As(err, &unknown) {
			return "unknown_course"
		}
		return "error"
	}
}

// apiError translates domain errors into the typed API error set.
func (s *ScheduleService) apiError(err error) *appErrors.Error {
	var (
		invalid *schedule.InvalidRequestError
		unknown *schedule.UnknownCourseError
		noCand  *schedule.NoCandidateSectionsError
	)
	switch {
	case errors.As(err, &invalid):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, invalid.Reason)
	case errors.As(err, &unknown):
		return appErrors.Wrap(err, appErrors.ErrUnknownCourse.Code, appErrors.ErrUnknownCourse.Status, err.Error())
	case errors.As(err, &noCand):
		return appErrors.Wrap(err, appErrors.ErrNoCandidateSections.Code, appErrors.ErrNoCandidateSections.Status, err.Error())
	case errors.Is(err, schedule.ErrInfeasible):
		return appErrors.Wrap(err, appErrors.ErrInfeasibleSchedule.Code, appErrors.ErrInfeasibleSchedule.Status, appErrors.ErrInfeasibleSchedule.Message)
	default:
		s.logger.Error("catalog fetch failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrCatalogUnavailable.Code, appErrors.ErrCatalogUnavailable.Status, appErrors.ErrCatalogUnavailable.Message)
	}
}
