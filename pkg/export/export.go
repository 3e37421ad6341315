// Package export renders ranked schedules as downloadable documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/plastron-io/plastron-api/internal/schedule"
)

var csvHeader = []string{
	"rank", "total_gap_minutes", "course_id", "section_id",
	"day", "start", "end", "location", "instructors",
}

// CSV writes one row per meeting block, with rank and weight repeated
// so the file stays flat and spreadsheet-friendly.
func CSV(w io.Writer, schedules []schedule.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for rank, s := range schedules {
		for _, sec := range s.Sections {
			instructors := strings.Join(sec.Instructors, "; ")
			if len(sec.Blocks) == 0 {
				row := []string{
					strconv.Itoa(rank + 1), strconv.Itoa(s.Weight),
					sec.CourseID, sec.ID, "", "", "", "", instructors,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
				continue
			}
			for _, b := range sec.Blocks {
				row := []string{
					strconv.Itoa(rank + 1), strconv.Itoa(s.Weight),
					sec.CourseID, sec.ID,
					b.Day.String(),
					schedule.FormatClock(b.Start),
					schedule.FormatClock(b.End),
					b.Location,
					instructors,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// PDF writes a one-page-per-schedule document.
func PDF(w io.Writer, schedules []schedule.Schedule) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Course Schedules", false)

	for rank, s := range schedules {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, fmt.Sprintf("Schedule #%d", rank+1), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Total gap: %d min    Days with classes: %d", s.Weight, s.DaysWithClasses), "", 1, "L", false, 0, "")
		pdf.Ln(3)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		widths := []float64{40, 30, 50, 40, 30}
		headers := []string{"Section", "Seats", "Meetings", "Location", "Instructors"}
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, sec := range s.Sections {
			meetings := make([]string, len(sec.Blocks))
			locations := make([]string, 0, len(sec.Blocks))
			for i, b := range sec.Blocks {
				meetings[i] = b.String()
				if b.Location != "" {
					locations = append(locations, b.Location)
				}
			}
			cells := []string{
				sec.ID,
				fmt.Sprintf("%d/%d", sec.SeatsOpen, sec.SeatsTotal),
				strings.Join(meetings, ", "),
				strings.Join(dedupe(locations), ", "),
				strings.Join(sec.Instructors, ", "),
			}
			for i, cell := range cells {
				pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	return pdf.Output(w)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
