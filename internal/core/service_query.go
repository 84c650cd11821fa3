package core

import (
	"context"
	"sort"

	"github.com/JonMunkholm/runsheet/internal/timetable"
)

// ConflictReport bundles the derived views a run-sheet screen renders: the
// conflicts themselves plus the act palettes they color.
type ConflictReport struct {
	Conflicts        []timetable.Conflict `json:"conflicts"`
	ConflictedActIDs []string             `json:"conflictedActIds"`
	UnassignedActIDs []string             `json:"unassignedActIds"`
	OrphanedSlots    []timetable.SlotRef  `json:"orphanedSlots"`
}

// BuildConflictReport computes a ConflictReport for p.
func BuildConflictReport(p timetable.Project) ConflictReport {
	conflicts := timetable.DetectConflicts(p)

	conflicted := []string{}
	for id := range timetable.ConflictedActs(conflicts) {
		conflicted = append(conflicted, id)
	}
	sort.Strings(conflicted)

	return ConflictReport{
		Conflicts:        conflicts,
		ConflictedActIDs: conflicted,
		UnassignedActIDs: timetable.UnassignedActs(p),
		OrphanedSlots:    timetable.OrphanedSlots(p),
	}
}

// Conflicts returns the conflict report of a project.
func (s *Service) Conflicts(ctx context.Context, id string) (ConflictReport, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return ConflictReport{}, err
	}
	return BuildConflictReport(p), nil
}

// UnavailableSlots returns the slots of day whose start hour the act cannot
// play. In strict mode unknown days and acts are errors.
func (s *Service) UnavailableSlots(ctx context.Context, id, day, actID string) ([]int, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.opts.Strict {
		if err := timetable.CheckDay(p, day); err != nil {
			return nil, err
		}
		if err := timetable.CheckAct(p, actID); err != nil {
			return nil, err
		}
	}
	return timetable.UnavailableSlots(p, day, actID), nil
}

// SortByAvailability returns act ids, most constrained first.
func (s *Service) SortByAvailability(ctx context.Context, id string) ([]string, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return timetable.SortByAvailability(p), nil
}

// SlotTimes returns the clock window of every slot of a day.
func (s *Service) SlotTimes(ctx context.Context, id, day string) ([]timetable.SlotTime, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := timetable.CheckDay(p, day); err != nil {
		if s.opts.Strict {
			return nil, err
		}
		return []timetable.SlotTime{}, nil
	}
	return timetable.SlotTimes(p, day), nil
}
