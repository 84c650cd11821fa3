package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/runsheet/internal/timetable"
)

// Outcome is what every slot mutation returns: the new project, its
// conflicts recomputed from scratch and, for RemoveRow, the act that was
// taken out of the running order.
type Outcome struct {
	Project      timetable.Project    `json:"project"`
	Conflicts    []timetable.Conflict `json:"conflicts"`
	RemovedActID string               `json:"removedActId,omitempty"`
}

type mutation struct {
	op    string
	day   string
	check func(p timetable.Project) error
	apply func(p timetable.Project) (timetable.Project, string)
}

// mutate runs one read-modify-write cycle under the project's session lock.
// In strict mode m.check runs first and its error aborts the cycle.
func (s *Service) mutate(ctx context.Context, id string, m mutation) (Outcome, error) {
	unlock := s.lock(id)
	defer unlock()

	p, err := s.load(ctx, id)
	if err != nil {
		return Outcome{}, err
	}

	if s.opts.Strict && m.check != nil {
		if err := m.check(p); err != nil {
			return Outcome{}, err
		}
	}

	next, removed := m.apply(p)
	if err := s.store.Put(ctx, id, next); err != nil {
		return Outcome{}, fmt.Errorf("save project %s: %w", id, err)
	}

	conflicts := timetable.DetectConflicts(next)
	s.logger(ctx, id, m.op).Debug("project mutated",
		"day", m.day,
		"slots", len(next.Slots(m.day)),
		"conflicts", len(conflicts),
	)

	return Outcome{Project: next, Conflicts: conflicts, RemovedActID: removed}, nil
}

// AddRow inserts an empty slot into a day. A nil at appends; other positions
// are clamped to the slot list.
func (s *Service) AddRow(ctx context.Context, id, day string, at *int) (Outcome, error) {
	return s.mutate(ctx, id, mutation{
		op:  "add_row",
		day: day,
		check: func(p timetable.Project) error {
			return timetable.CheckDay(p, day)
		},
		apply: func(p timetable.Project) (timetable.Project, string) {
			if at == nil {
				return timetable.AddRow(p, day), ""
			}
			return timetable.InsertRow(p, day, *at), ""
		},
	})
}

// RemoveRow deletes a slot and reports the act that was placed there.
func (s *Service) RemoveRow(ctx context.Context, id, day string, index int) (Outcome, error) {
	return s.mutate(ctx, id, mutation{
		op:  "remove_row",
		day: day,
		check: func(p timetable.Project) error {
			return timetable.CheckSlot(p, day, index)
		},
		apply: func(p timetable.Project) (timetable.Project, string) {
			return timetable.RemoveRow(p, day, index)
		},
	})
}

// PlaceAct assigns an act to a slot, replacing any previous assignment.
func (s *Service) PlaceAct(ctx context.Context, id, day string, index int, actID string) (Outcome, error) {
	return s.mutate(ctx, id, mutation{
		op:  "place_act",
		day: day,
		check: func(p timetable.Project) error {
			return timetable.CheckPlacement(p, day, index, actID)
		},
		apply: func(p timetable.Project) (timetable.Project, string) {
			return timetable.PlaceAct(p, day, index, actID), ""
		},
	})
}

// Swap exchanges two slots of the same day.
func (s *Service) Swap(ctx context.Context, id, day string, a, b int) (Outcome, error) {
	return s.mutate(ctx, id, mutation{
		op:  "swap",
		day: day,
		check: func(p timetable.Project) error {
			if err := timetable.CheckSlot(p, day, a); err != nil {
				return err
			}
			return timetable.CheckSlot(p, day, b)
		},
		apply: func(p timetable.Project) (timetable.Project, string) {
			return timetable.Swap(p, day, a, b), ""
		},
	})
}
