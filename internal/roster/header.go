package roster

import (
	"regexp"
	"strconv"
)

var (
	// nameHeader matches the performer name column.
	nameHeader = regexp.MustCompile(`(?i)^(バンド名|name)$`)

	// durationHeader matches the set-length column. The alternation is
	// unanchored in the middle, so any header containing "duration" or
	// "min", starting with 演奏時間(分), or ending in "time" qualifies.
	durationHeader = regexp.MustCompile(`(?i)^演奏時間\(分\)|duration|min|time$`)

	// availabilityHeader matches "<day>_<hour>" and "<day>日目_<hour>".
	availabilityHeader = regexp.MustCompile(`^(\d+)(?:日目)?_(\d{1,2})$`)
)

// DayLabel returns the day label for a 1-based day index as written in
// availability headers ("1" becomes "1日目").
func DayLabel(index string) string {
	return index + "日目"
}

// availabilityColumn is one "<day>_<hour>" column of the header row.
type availabilityColumn struct {
	pos    int
	header string
	day    string
	hour   int

	// ignored columns have their cells validated but never add an hour.
	ignored bool
}

// layout is the classified header row.
type layout struct {
	name     int // -1 when missing
	duration int // -1 when missing
	avail    []availabilityColumn
	days     []string
}

// classify inspects the header row, returning the column layout and any
// structural or column-level issues. The first matching column wins for
// name and duration. Day labels are ordered by first occurrence; columns
// whose hour is outside 0-23 still contribute their day and have their
// cells checked, but never add availability and are reported once.
func classify(header []string) (layout, []Issue) {
	l := layout{name: -1, duration: -1}
	var issues []Issue
	seenDay := make(map[string]bool)

	for i, raw := range header {
		h := CleanCell(raw)

		if l.name < 0 && nameHeader.MatchString(h) {
			l.name = i
			continue
		}
		if l.duration < 0 && durationHeader.MatchString(h) {
			l.duration = i
			continue
		}

		m := availabilityHeader.FindStringSubmatch(h)
		if m == nil {
			continue
		}
		day := DayLabel(m[1])
		if !seenDay[day] {
			seenDay[day] = true
			l.days = append(l.days, day)
		}

		hour, _ := strconv.Atoi(m[2])
		if hour > 23 {
			issues = append(issues, Issue{
				Column:  h,
				Value:   m[2],
				Kind:    KindColumn,
				Message: "hour must be between 0 and 23: " + m[2],
			})
		}
		l.avail = append(l.avail, availabilityColumn{pos: i, header: h, day: day, hour: hour, ignored: hour > 23})
	}

	if l.name < 0 {
		issues = append(issues, Issue{
			Kind:    KindStructure,
			Message: `required column "name" not found (header バンド名 or name)`,
		})
	}
	if l.duration < 0 {
		issues = append(issues, Issue{
			Kind:    KindStructure,
			Message: `required column "duration" not found (header 演奏時間(分) or duration)`,
		})
	}
	if len(l.avail) == 0 && len(l.days) == 0 {
		issues = append(issues, Issue{
			Kind:    KindStructure,
			Message: `no availability columns found (headers like "1日目_10")`,
		})
	}

	// Column issues come after structural ones so a missing required
	// column is always reported first.
	ordered := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if is.Kind == KindStructure {
			ordered = append(ordered, is)
		}
	}
	for _, is := range issues {
		if is.Kind != KindStructure {
			ordered = append(ordered, is)
		}
	}
	return l, ordered
}
