package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JonMunkholm/runsheet/internal/core"
	"github.com/JonMunkholm/runsheet/internal/store"
	"github.com/JonMunkholm/runsheet/internal/timetable"
)

// styles are bound to one output so colors drop out when it is not a
// terminal.
type styles struct {
	title    lipgloss.Style
	day      lipgloss.Style
	ok       lipgloss.Style
	warn     lipgloss.Style
	err      lipgloss.Style
	dim      lipgloss.Style
	conflict lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4")),
		day:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8B500")),
		ok:       r.NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		warn:     r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		err:      r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
		conflict: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// writeImportReport prints acts, issues and, for applied imports, the days
// and slots the new roster no longer matches.
func writeImportReport(w io.Writer, res core.ImportResult, project bool) {
	s := newStyles(w)

	fmt.Fprintf(w, "%s %d acts, days: %s\n",
		s.title.Render("Roster"), len(res.Acts), strings.Join(res.Days, ", "))
	for _, act := range res.Acts {
		fmt.Fprintf(w, "  %-24s %3d min  %s\n", act.Name, act.DurationMin, availabilitySummary(act, res.Days))
	}

	if len(res.Errors) > 0 {
		fmt.Fprintln(w, s.warn.Render(fmt.Sprintf("%d issue(s)", len(res.Errors))))
		for _, msg := range res.Errors {
			fmt.Fprintln(w, "  "+s.warn.Render(msg))
		}
	}

	if !project {
		return
	}
	if res.Applied {
		fmt.Fprintln(w, s.ok.Render("roster applied"))
	} else {
		fmt.Fprintln(w, s.err.Render("roster not applied: no valid rows"))
	}
	if len(res.UnknownDays) > 0 {
		fmt.Fprintln(w, s.warn.Render("days not in project: "+strings.Join(res.UnknownDays, ", ")))
	}
	for _, ref := range res.OrphanedSlots {
		fmt.Fprintln(w, s.warn.Render(fmt.Sprintf("slot %s #%d refers to removed act %s", ref.Day, ref.Index+1, ref.ActID)))
	}
}

// availabilitySummary renders "1日目 10,11 | 2日目 -" for the given days.
func availabilitySummary(act timetable.ActRecord, days []string) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		hours := act.Availability[d]
		if len(hours) == 0 {
			parts = append(parts, d+" -")
			continue
		}
		hs := make([]string, len(hours))
		for i, h := range hours {
			hs[i] = fmt.Sprint(h)
		}
		parts = append(parts, d+" "+strings.Join(hs, ","))
	}
	return strings.Join(parts, " | ")
}

// writeRunSheet prints each day's slots with times and marks conflicts.
func writeRunSheet(w io.Writer, p timetable.Project, report core.ConflictReport) {
	s := newStyles(w)

	conflicted := make(map[timetable.SlotRef]bool, len(report.Conflicts))
	for _, c := range report.Conflicts {
		conflicted[timetable.SlotRef{Day: c.Day, Index: c.Index}] = true
	}

	fmt.Fprintln(w, s.title.Render(p.Meta.Title))
	for _, d := range p.Days {
		heading := d.Label
		if d.Date != "" {
			heading += " " + d.Date
		}
		if d.Venue != "" {
			heading += " @ " + d.Venue
		}
		fmt.Fprintln(w, s.day.Render(heading))

		times := timetable.SlotTimes(p, d.Label)
		for i, slot := range p.Slots(d.Label) {
			name := s.dim.Render("(empty)")
			if slot.Assigned() {
				if act, ok := p.Act(slot.ActID); ok {
					name = act.Name
				} else {
					name = s.dim.Render("(removed " + slot.ActID + ")")
				}
			}
			line := fmt.Sprintf("  %2d  %s-%s  %s", i+1, times[i].Start, times[i].End, name)
			if conflicted[timetable.SlotRef{Day: d.Label, Index: i}] {
				line += "  " + s.conflict.Render("UNAVAILABLE")
			}
			fmt.Fprintln(w, line)
		}
	}

	if n := len(report.Conflicts); n > 0 {
		fmt.Fprintln(w, s.err.Render(fmt.Sprintf("%d conflict(s)", n)))
	} else {
		fmt.Fprintln(w, s.ok.Render("no conflicts"))
	}
	if len(report.UnassignedActIDs) > 0 {
		names := make([]string, 0, len(report.UnassignedActIDs))
		for _, id := range report.UnassignedActIDs {
			if act, ok := p.Act(id); ok {
				names = append(names, act.Name)
			}
		}
		fmt.Fprintln(w, s.warn.Render("unassigned: "+strings.Join(names, ", ")))
	}
}

func writeProjectList(w io.Writer, list []store.Summary) {
	s := newStyles(w)
	if len(list) == 0 {
		fmt.Fprintln(w, s.dim.Render("no projects"))
		return
	}
	for _, sum := range list {
		fmt.Fprintf(w, "%s  %s  %s\n", sum.ID, s.title.Render(sum.Title),
			s.dim.Render(fmt.Sprintf("%d days, %d acts, updated %s", sum.Days, sum.Acts, sum.UpdatedAt.Format("2006-01-02 15:04"))))
	}
}
