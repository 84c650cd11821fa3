package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/runsheet/internal/roster"
	"github.com/JonMunkholm/runsheet/internal/timetable"
)

// DefaultTitle is used when a project is created without a title.
const DefaultTitle = "Untitled"

// Built-in day defaults, used when neither the DayDef nor Defaults set one.
const (
	DefaultSlotMin         = 15
	DefaultIntermissionMin = 45
)

// DayDef describes one day of a new project, as entered in the creation
// wizard or in a YAML day file.
type DayDef struct {
	Label              string `json:"label" yaml:"label"`
	Date               string `json:"date" yaml:"date"`
	Venue              string `json:"venue" yaml:"venue"`
	Start              string `json:"start" yaml:"start"`
	DefaultDurationMin int    `json:"defaultDurationMin" yaml:"defaultDurationMin"`
	IntermissionCount  int    `json:"intermissionCount" yaml:"intermissionCount"`
	IntermissionMin    int    `json:"intermissionMin" yaml:"intermissionMin"`

	LiveName  string `json:"liveName,omitempty" yaml:"liveName"`
	Weekday   string `json:"weekday,omitempty" yaml:"weekday"`
	LoadIn    string `json:"loadIn,omitempty" yaml:"loadIn"`
	Rehearsal string `json:"rehearsal,omitempty" yaml:"rehearsal"`
	Open      string `json:"open,omitempty" yaml:"open"`
	ClearOut  string `json:"clearOut,omitempty" yaml:"clearOut"`
}

// NewProjectRequest is the input of CreateProject.
type NewProjectRequest struct {
	Title       string   `json:"title" yaml:"title"`
	Days        []DayDef `json:"days" yaml:"days"`
	InitialRows int      `json:"initialRows,omitempty" yaml:"initialRows"`
}

// Defaults fill in DayDef fields left at their zero value.
type Defaults struct {
	SlotMin         int
	Start           string
	IntermissionMin int
}

// NewProject builds a project from req. Blank day labels become "<n>日目",
// intermissions are materialized as count entries of the given length, and
// every day gets InitialRows empty slots. The result is not validated.
func NewProject(req NewProjectRequest, d Defaults, now time.Time) timetable.Project {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultTitle
	}

	days := make([]timetable.Day, len(req.Days))
	for i, def := range req.Days {
		days[i] = newDay(i, def, d)
	}

	p := timetable.Project{
		SchemaVersion: timetable.SchemaVersion,
		Meta: timetable.Meta{
			Title:     title,
			CreatedAt: now.UTC().Truncate(time.Second),
		},
		Days: days,
		Acts: []timetable.Act{},
	}
	p = timetable.EnsureSchedule(p)

	for _, day := range p.Days {
		for n := 0; n < req.InitialRows; n++ {
			p = timetable.AddRow(p, day.Label)
		}
	}
	return p
}

func newDay(i int, def DayDef, d Defaults) timetable.Day {
	label := strings.TrimSpace(def.Label)
	if label == "" {
		label = roster.DayLabel(strconv.Itoa(i + 1))
	}

	start := strings.TrimSpace(def.Start)
	if start == "" {
		start = d.Start
	}

	slotMin := firstPositive(def.DefaultDurationMin, d.SlotMin, DefaultSlotMin)
	breakMin := firstPositive(def.IntermissionMin, d.IntermissionMin, DefaultIntermissionMin)

	intermissions := []int{}
	for n := 0; n < def.IntermissionCount; n++ {
		intermissions = append(intermissions, breakMin)
	}

	return timetable.Day{
		Label:              label,
		Date:               strings.TrimSpace(def.Date),
		Venue:              strings.TrimSpace(def.Venue),
		Start:              start,
		Intermissions:      intermissions,
		DefaultDurationMin: slotMin,
		Extra:              dayExtra(def),
	}
}

func dayExtra(def DayDef) map[string]string {
	fields := []struct{ key, val string }{
		{"liveName", def.LiveName},
		{"weekday", def.Weekday},
		{"loadIn", def.LoadIn},
		{"rehearsal", def.Rehearsal},
		{"open", def.Open},
		{"clearOut", def.ClearOut},
	}

	var extra map[string]string
	for _, f := range fields {
		v := strings.TrimSpace(f.val)
		if v == "" {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[f.key] = v
	}
	return extra
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

// ApplyRoster replaces the project's acts with the ingested records.
//
// A record whose name matches an existing act keeps that act's id, so slots
// already holding the act stay valid. Every other record, including a second
// record with an already claimed name, gets an id from newID. Slots holding
// acts that are no longer on the roster are left as they are.
func ApplyRoster(p timetable.Project, res roster.Result, newID func() string) timetable.Project {
	byName := make(map[string]string, len(p.Acts))
	for _, a := range p.Acts {
		if _, ok := byName[a.Name]; !ok {
			byName[a.Name] = a.ID
		}
	}

	used := make(map[string]bool, len(res.Acts))
	acts := make([]timetable.Act, 0, len(res.Acts))
	for _, rec := range res.Acts {
		id, ok := byName[rec.Name]
		if !ok || used[id] {
			id = newID()
			for used[id] {
				id = newID()
			}
		}
		used[id] = true

		rec.ID = id
		acts = append(acts, timetable.ToCanonical(rec))
	}

	p.Acts = acts
	return p
}

// UnknownDays returns the labels in days that are not days of p, in order.
func UnknownDays(p timetable.Project, days []string) []string {
	out := []string{}
	for _, label := range days {
		if _, ok := p.Day(label); !ok {
			out = append(out, label)
		}
	}
	return out
}
