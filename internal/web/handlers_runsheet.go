package web

import (
	"net/http"

	"github.com/JonMunkholm/runsheet/internal/core"
	"github.com/JonMunkholm/runsheet/internal/timetable"
	"github.com/JonMunkholm/runsheet/internal/web/templates"
)

// handleRunSheet renders the read-only HTML run-sheet of a project.
func (s *Server) handleRunSheet(w http.ResponseWriter, r *http.Request) {
	p, err := s.service.Project(r.Context(), projectID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.RunSheet(runSheetView(p)).Render(r.Context(), w); err != nil {
		s.respondError(w, r, err)
	}
}

// runSheetView flattens a project into the page model.
func runSheetView(p timetable.Project) templates.RunSheetView {
	report := core.BuildConflictReport(p)

	conflicted := make(map[timetable.SlotRef]bool, len(report.Conflicts))
	for _, c := range report.Conflicts {
		conflicted[timetable.SlotRef{Day: c.Day, Index: c.Index}] = true
	}

	view := templates.RunSheetView{
		Title:     p.Meta.Title,
		Conflicts: len(report.Conflicts),
	}

	for _, d := range p.Days {
		dv := templates.DayView{Label: d.Label, Date: d.Date, Venue: d.Venue}
		times := timetable.SlotTimes(p, d.Label)
		for i, slot := range p.Slots(d.Label) {
			row := templates.RowView{
				Index:       i,
				Start:       times[i].Start,
				End:         times[i].End,
				DurationMin: firstPositive(slot.DurationMin, d.DefaultDurationMin),
				Conflict:    conflicted[timetable.SlotRef{Day: d.Label, Index: i}],
			}
			if slot.Assigned() {
				if act, ok := p.Act(slot.ActID); ok {
					row.ActName = act.Name
				} else {
					row.ActName = slot.ActID
					row.Orphaned = true
				}
			}
			dv.Rows = append(dv.Rows, row)
		}
		view.Days = append(view.Days, dv)
	}

	for _, id := range report.UnassignedActIDs {
		if act, ok := p.Act(id); ok {
			view.Unassigned = append(view.Unassigned, act.Name)
		}
	}
	return view
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
