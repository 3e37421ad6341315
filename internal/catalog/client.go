package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/plastron-io/plastron-api/internal/schedule"
	"github.com/plastron-io/plastron-api/pkg/config"
)

// Client scrapes section listings from the schedule-of-classes search
// page. It is the only component that performs network I/O.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient builds a catalog client from config.
func NewClient(cfg config.CatalogConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		now:        time.Now,
	}
}

// Sections fetches and parses the section records for one course.
// Courses absent from the catalog yield schedule.UnknownCourseError.
func (c *Client) Sections(ctx context.Context, courseID string) ([]schedule.Section, error) {
	courseID = strings.ToUpper(strings.TrimSpace(courseID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(courseID), nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request for %s: %w", courseID, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog page for %s: %w", courseID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d for %s", resp.StatusCode, courseID)
	}

	sections, err := parseSections(resp.Body, courseID)
	if err != nil {
		return nil, fmt.Errorf("parse catalog page for %s: %w", courseID, err)
	}
	if sections == nil {
		return nil, &schedule.UnknownCourseError{CourseID: courseID}
	}

	c.logger.Debug("catalog fetch",
		zap.String("course", courseID),
		zap.Int("sections", len(sections)))
	return sections, nil
}

func (c *Client) searchURL(courseID string) string {
	q := url.Values{}
	q.Set("courseId", courseID)
	q.Set("termId", ClosestTermID(c.now()))
	q.Set("sectionId", "")
	q.Set("_openSectionsOnly", "on")
	q.Set("creditCompare", ">=")
	q.Set("credits", "0.0")
	q.Set("courseLevelFilter", "ALL")
	q.Set("instructor", "")
	q.Set("_facetoface", "on")
	q.Set("_blended", "on")
	q.Set("_online", "on")
	q.Set("teachingCenter", "ALL")
	for i := 1; i <= 5; i++ {
		q.Set(fmt.Sprintf("_classDay%d", i), "on")
	}
	return c.baseURL + "?" + q.Encode()
}

// parseSections walks the catalog markup. It returns a nil slice when
// the page carries no course container at all, and an empty slice when
// the course exists but lists no sections.
func parseSections(r io.Reader, courseID string) ([]schedule.Section, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	course := findByClass(root, "course")
	if course == nil {
		return nil, nil
	}

	sections := []schedule.Section{}
	for _, sectionEl := range findAllByClass(course, "section") {
		info := findByClass(sectionEl, "section-info-container")
		if info == nil {
			continue
		}
		number := innerText(findByClass(info, "section-id"))
		if number == "" {
			continue
		}

		sec := schedule.Section{
			ID:       courseID + "-" + number,
			CourseID: courseID,
		}
		// Campus and cohort restrictions are encoded in the section
		// number itself.
		sec.SatelliteCampus = strings.Contains(number, "ESG")
		sec.FirstYearCohort = strings.Contains(number, "FC")

		for _, instr := range findAllByClass(info, "section-instructor") {
			if name := innerText(instr); name != "" {
				sec.Instructors = append(sec.Instructors, name)
			}
		}

		if seats := findByClass(info, "seats-info"); seats != nil {
			sec.SeatsTotal = atoi(innerText(findByClass(seats, "total-seats-count")))
			sec.SeatsOpen = atoi(innerText(findByClass(seats, "open-seats-count")))
			sec.Waitlist = atoi(innerText(findByClass(seats, "waitlist-count")))
		}

		if daysEl := findByClass(sectionEl, "class-days-container"); daysEl != nil {
			for _, row := range findAllByClass(daysEl, "row") {
				blocks, err := parseMeetingRow(row)
				if err != nil {
					return nil, fmt.Errorf("section %s: %w", sec.ID, err)
				}
				sec.Blocks = append(sec.Blocks, blocks...)
			}
		}

		sections = append(sections, sec)
	}
	return sections, nil
}

// parseMeetingRow expands one meeting row ("MWF 9:00am-9:50am") into a
// block per weekday. Rows without days or times (online/asynchronous
// meetings) contribute nothing.
func parseMeetingRow(row *html.Node) ([]schedule.TimeBlock, error) {
	dayStr := innerText(findByClass(row, "section-days"))
	startStr := innerText(findByClass(row, "class-start-time"))
	endStr := innerText(findByClass(row, "class-end-time"))
	if dayStr == "" || startStr == "" || endStr == "" {
		return nil, nil
	}

	days, err := schedule.ParseDays(dayStr)
	if err != nil {
		return nil, err
	}
	start, err := schedule.ParseClock(startStr)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseClock(endStr)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("meeting ends before it starts (%s-%s)", startStr, endStr)
	}

	location := strings.TrimSpace(innerText(findByClass(row, "building-code")) + " " + innerText(findByClass(row, "class-room")))

	blocks := make([]schedule.TimeBlock, len(days))
	for i, day := range days {
		blocks[i] = schedule.TimeBlock{Day: day, Start: start, End: end, Location: location}
	}
	return blocks, nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findByClass(n *html.Node, class string) *html.Node {
	if n == nil {
		return nil
	}
	if hasClass(n, class) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByClass(child, class); found != nil {
			return found
		}
	}
	return nil
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if hasClass(node, class) {
			out = append(out, node)
			// Matching containers do not nest in the catalog markup.
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return out
}

func innerText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
