package roster

// ingest.go validates a roster CSV and turns it into act records.
//
// Validation happens at three levels:
//  1. Header: name, duration and availability columns must be present
//  2. Row: name must be non-empty, duration an integer in 1..240
//  3. Cell: availability values must be "", "0" or "1"
//
// Issues accumulate in input order. A row that fails level 2 is dropped; a
// bad cell is reported and skipped while the row is kept. Stray quotes inside
// unquoted cells are kept literally. Only a CSV that cannot be tokenized, such
// as one with a quoted field that is never closed, stops ingestion, and then
// nothing is returned but the syntax issue.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/JonMunkholm/runsheet/internal/timetable"
)

// Duration bounds for a single act, in minutes.
const (
	MinDurationMin = 1
	MaxDurationMin = 240
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// Result is the outcome of ingesting one roster.
type Result struct {
	Acts   []timetable.ActRecord `json:"acts"`
	Days   []string              `json:"days"`
	Issues []Issue               `json:"issues"`
}

// OK reports whether the roster was ingested without any issue.
func (r Result) OK() bool {
	return len(r.Issues) == 0
}

// Messages renders every issue as a human-readable line with its row and
// column context.
func (r Result) Messages() []string {
	out := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		out[i] = is.Error()
	}
	return out
}

// Parse ingests roster text. Acts carry no id; callers assign ids when the
// roster is adopted by a project. Parse never returns nil slices.
func Parse(text string) Result {
	res := Result{
		Acts:   []timetable.ActRecord{},
		Days:   []string{},
		Issues: []Issue{},
	}

	text = strings.TrimPrefix(text, "\uFEFF")

	records, lines, err := tokenize(text)
	if err != nil {
		res.Issues = append(res.Issues, syntaxIssue(err))
		return res
	}
	if len(records) == 0 {
		res.Issues = append(res.Issues, Issue{Kind: KindStructure, Message: "header row is missing"})
		return res
	}

	l, issues := classify(records[0])
	res.Days = append(res.Days, l.days...)
	res.Issues = append(res.Issues, issues...)

	// Without both required columns no row can produce an act.
	if l.name < 0 || l.duration < 0 {
		return res
	}

	for i, row := range records[1:] {
		line := lines[i+1]
		rec, rowIssues := parseRow(row, line, l, records[0])
		res.Issues = append(res.Issues, rowIssues...)
		if rec != nil {
			res.Acts = append(res.Acts, *rec)
		}
	}
	return res
}

// ParseBytes decodes raw file contents (see Decode) and ingests them.
func ParseBytes(data []byte) Result {
	return Parse(Decode(data))
}

// tokenize reads all records, returning the physical start line of each.
// Blank lines are skipped by the reader.
func tokenize(text string) ([][]string, []int, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	var records [][]string
	var lines []int
	var lastLine, lastCol int
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := r.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
		lastLine, lastCol = r.FieldPos(len(rec) - 1)
	}

	// The lenient reader lets an unterminated quoted field run to the end
	// of input, so only the last field of the last record can be one.
	if len(records) > 0 && unclosedQuote(text, lastLine, lastCol) {
		return nil, nil, &csv.ParseError{StartLine: lastLine, Line: lastLine, Column: lastCol, Err: csv.ErrQuote}
	}
	return records, lines, nil
}

// unclosedQuote reports whether the field starting at line:col (1-based,
// column in bytes) opens a quote that is never closed.
func unclosedQuote(text string, line, col int) bool {
	off := 0
	for i := 1; i < line; i++ {
		j := strings.IndexByte(text[off:], '\n')
		if j < 0 {
			return false
		}
		off += j + 1
	}
	off += col - 1
	if off < 0 || off >= len(text) || text[off] != '"' {
		return false
	}

	rest := text[off+1:]
	for {
		i := strings.IndexByte(rest, '"')
		if i < 0 {
			return true
		}
		rest = rest[i+1:]
		switch {
		case strings.HasPrefix(rest, `"`):
			rest = rest[1:]
		case rest == "", rest[0] == ',', rest[0] == '\n', strings.HasPrefix(rest, "\r\n"):
			return false
		}
	}
}

func syntaxIssue(err error) Issue {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return Issue{
			Kind:    KindSyntax,
			Message: fmt.Sprintf("CSV syntax error on line %d, column %d: %v", perr.Line, perr.Column, perr.Err),
		}
	}
	return Issue{Kind: KindSyntax, Message: "CSV syntax error: " + err.Error()}
}

// parseRow validates one data row. It returns nil when the row is dropped.
func parseRow(row []string, line int, l layout, header []string) (*timetable.ActRecord, []Issue) {
	var issues []Issue

	name := cell(row, l.name)
	if name == "" {
		return nil, []Issue{{Line: line, Kind: KindRow, Message: "name is empty"}}
	}

	durRaw := cell(row, l.duration)
	if !digitsOnly.MatchString(durRaw) {
		return nil, []Issue{{
			Line:    line,
			Column:  CleanCell(header[l.duration]),
			Value:   durRaw,
			Kind:    KindRow,
			Message: fmt.Sprintf("duration is not an integer: %q", durRaw),
		}}
	}
	dur, err := strconv.Atoi(durRaw)
	if err != nil || dur < MinDurationMin || dur > MaxDurationMin {
		return nil, []Issue{{
			Line:    line,
			Column:  CleanCell(header[l.duration]),
			Value:   durRaw,
			Kind:    KindRow,
			Message: fmt.Sprintf("duration must be between %d and %d: %s", MinDurationMin, MaxDurationMin, durRaw),
		}}
	}

	rec := &timetable.ActRecord{
		Name:         name,
		DurationMin:  dur,
		Availability: map[string][]int{},
	}
	for _, col := range l.avail {
		v := cell(row, col.pos)
		switch v {
		case "":
		case "0":
		case "1":
			if !col.ignored {
				rec.Availability[col.day] = append(rec.Availability[col.day], col.hour)
			}
		default:
			issues = append(issues, Issue{
				Line:    line,
				Column:  col.header,
				Value:   v,
				Kind:    KindCell,
				Message: fmt.Sprintf("value must be 0, 1 or empty: %q", v),
			})
		}
	}
	return rec, issues
}

// cell returns the cleaned value at pos, or "" for short rows.
func cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}
