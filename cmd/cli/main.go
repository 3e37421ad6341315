// Command cli generates schedules from a terminal, printing a week
// grid for each ranked result.
//
// Usage:
//
//	cli [flags] COURSE [COURSE...]
//	cli -n 3 -colored CMSC351 MATH240 ENGL101
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/plastron-io/plastron-api/internal/catalog"
	"github.com/plastron-io/plastron-api/internal/dto"
	"github.com/plastron-io/plastron-api/internal/schedule"
	"github.com/plastron-io/plastron-api/internal/visual"
	"github.com/plastron-io/plastron-api/pkg/config"
)

func main() {
	var (
		top              = flag.Int("n", 1, "number of schedules to generate")
		earliest         = flag.String("earliest", "8:00am", "earliest acceptable class start")
		latest           = flag.String("latest", "5:00pm", "latest acceptable class end")
		allSeats         = flag.Bool("all-seats", false, "include full and waitlisted sections")
		includeSatellite = flag.Bool("include-satellite", false, "include satellite-campus sections")
		includeFirstYear = flag.Bool("include-first-year", false, "include first-year cohort sections")
		colored          = flag.Bool("colored", false, "colorize the week grid")
		asJSON           = flag.Bool("json", false, "print the ranked schedules as JSON")
		timeout          = flag.Duration("timeout", 30*time.Second, "overall deadline")
	)
	flag.Parse()

	courses := flag.Args()
	if len(courses) == 0 {
		fmt.Fprintln(os.Stderr, "usage: cli [flags] COURSE [COURSE...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	criteria, err := buildCriteria(*earliest, *latest, *allSeats, *includeSatellite, *includeFirstYear)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := catalog.NewClient(cfg.Catalog, zap.NewNop())
	loaded := make([]schedule.Course, 0, len(courses))
	for _, id := range courses {
		sections, err := client.Sections(ctx, id)
		if err != nil {
			fatal(err)
		}
		loaded = append(loaded, schedule.Course{ID: id, Sections: sections})
	}

	generator := schedule.Generator{MaxExpansions: cfg.Search.MaxExpansions}
	result, err := generator.Generate(schedule.Request{Courses: loaded, Criteria: criteria, Top: *top})
	if err != nil {
		fatal(err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dto.NewScheduleResponse(result)); err != nil {
			fatal(err)
		}
		return
	}

	fmt.Print(visual.RenderAll(result.Schedules, visual.Options{Colored: *colored}))
	if result.Truncated {
		fmt.Fprintln(os.Stderr, "note: search budget exhausted, ranking may be incomplete")
	}
}

func buildCriteria(earliest, latest string, allSeats, includeSatellite, includeFirstYear bool) (schedule.FilterCriteria, error) {
	criteria := schedule.DefaultCriteria()

	start, err := schedule.ParseClock(earliest)
	if err != nil {
		return criteria, fmt.Errorf("-earliest: %w", err)
	}
	end, err := schedule.ParseClock(latest)
	if err != nil {
		return criteria, fmt.Errorf("-latest: %w", err)
	}

	criteria.EarliestStart = start
	criteria.LatestEnd = end
	criteria.OpenSeatsOnly = !allSeats
	criteria.ExcludeSatelliteCampus = !includeSatellite
	criteria.ExcludeFirstYearCohort = !includeFirstYear
	return criteria, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
