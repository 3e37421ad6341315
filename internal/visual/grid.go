// Package visual renders a generated schedule as a week grid suitable
// for terminals and plain-text API responses.
package visual

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/plastron-io/plastron-api/internal/schedule"
)

var days = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

var dayLabels = map[time.Weekday]string{
	time.Monday:    "M",
	time.Tuesday:   "Tu",
	time.Wednesday: "W",
	time.Thursday:  "Th",
	time.Friday:    "F",
}

var colors = []string{
	"\033[91m", // red
	"\033[92m", // green
	"\033[93m", // yellow
	"\033[94m", // blue
	"\033[95m", // magenta
	"\033[96m", // cyan
	"\033[90m", // gray
}

const reset = "\033[0m"

const (
	cellWidth   = 9
	rowInterval = 30
)

var ansiEscape = regexp.MustCompile(`\x1B\[[0-?]*[ -/]*[@-~]`)

// Options controls rendering.
type Options struct {
	// Colored enables ANSI colors, one per section.
	Colored bool
}

// Render draws one schedule as a time-by-day grid followed by a
// section legend.
func Render(s schedule.Schedule, opts Options) string {
	var b strings.Builder

	first, last := timeBounds(s)
	if last <= first {
		b.WriteString("(no scheduled meeting times)\n")
		writeLegend(&b, s, opts)
		return b.String()
	}

	colorMap := assignColors(s, opts)

	// grid[row][day] holds the short section label occupying that slot.
	rows := make([]int, 0, (last-first)/rowInterval+1)
	for t := first; t < last; t += rowInterval {
		rows = append(rows, t)
	}
	grid := make(map[int]map[time.Weekday]string, len(rows))
	for _, t := range rows {
		grid[t] = map[time.Weekday]string{}
	}

	for _, sec := range s.Sections {
		label := colorMap[sec.ID] + shortID(sec.ID) + colorSuffix(opts)
		for _, block := range sec.Blocks {
			if _, shown := dayLabels[block.Day]; !shown {
				continue
			}
			for _, t := range rows {
				if block.Start <= t && t < block.End {
					grid[t][block.Day] = label
				}
			}
		}
	}

	header := make([]string, len(days))
	for i, d := range days {
		header[i] = fmt.Sprintf("%-*s", cellWidth, dayLabels[d])
	}
	b.WriteString("\nTime    | " + strings.Join(header, " | ") + "\n")
	b.WriteString(strings.Repeat("-", 8+len(days)*(cellWidth+3)) + "\n")

	for _, t := range rows {
		cells := make([]string, len(days))
		for i, d := range days {
			cells[i] = pad(grid[t][d], cellWidth)
		}
		b.WriteString(fmt.Sprintf("%-7s | %s\n", schedule.FormatClock(t), strings.Join(cells, " | ")))
	}

	b.WriteString(fmt.Sprintf("Gap minutes: %d\n", s.Weight))
	writeLegend(&b, s, opts)
	return b.String()
}

// RenderAll draws every schedule in rank order.
func RenderAll(schedules []schedule.Schedule, opts Options) string {
	var b strings.Builder
	for i, s := range schedules {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("#%d (weight %d)\n", i+1, s.Weight))
		b.WriteString(Render(s, opts))
	}
	return b.String()
}

func writeLegend(b *strings.Builder, s schedule.Schedule, opts Options) {
	colorMap := assignColors(s, opts)
	for _, sec := range s.Sections {
		blocks := make([]string, len(sec.Blocks))
		for i, block := range sec.Blocks {
			blocks[i] = block.String()
		}
		line := fmt.Sprintf("%s%s%s (%d/%d): %s",
			colorMap[sec.ID], sec.ID, colorSuffix(opts),
			sec.SeatsOpen, sec.SeatsTotal, strings.Join(blocks, ", "))
		if len(sec.Instructors) > 0 {
			line += ", " + strings.Join(sec.Instructors, ", ")
		}
		b.WriteString(line + "\n")
	}
}

func assignColors(s schedule.Schedule, opts Options) map[string]string {
	colorMap := make(map[string]string, len(s.Sections))
	for i, sec := range s.Sections {
		if opts.Colored {
			colorMap[sec.ID] = colors[i%len(colors)]
		} else {
			colorMap[sec.ID] = ""
		}
	}
	return colorMap
}

func colorSuffix(opts Options) string {
	if opts.Colored {
		return reset
	}
	return ""
}

func timeBounds(s schedule.Schedule) (first, last int) {
	first, last = 24*60, 0
	for _, sec := range s.Sections {
		for _, block := range sec.Blocks {
			if block.Start < first {
				first = block.Start
			}
			if block.End > last {
				last = block.End
			}
		}
	}
	return first, last
}

// shortID trims the course prefix from a section ID for grid cells.
func shortID(id string) string {
	if i := strings.LastIndex(id, "-"); i >= 0 && i+1 < len(id) {
		return id[i+1:]
	}
	return id
}

// pad right-pads to width counting visible characters only, so ANSI
// color codes do not skew column alignment.
func pad(s string, width int) string {
	visible := len(strip(s))
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func strip(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}
