package timetable

import "fmt"

// ConflictKind classifies a conflict.
type ConflictKind string

// ConflictUnavailable marks a slot whose act is not available for every hour
// the slot touches.
const ConflictUnavailable ConflictKind = "UNAVAILABLE"

// Conflict identifies one offending slot. There is at most one per slot.
type Conflict struct {
	Day   string       `json:"day"`
	Index int          `json:"index"`
	ActID string       `json:"bandId"`
	Kind  ConflictKind `json:"type"`
}

// CoveredHours returns the wall-clock hours touched by a slot that starts
// offset minutes after the day origin and lasts duration minutes.
//
// Starting at begin = startHour*60 + offset, the span is sampled every 60
// minutes up to end = begin + duration - 1, and each sample contributes
// floor(m/60) mod 24. A 90 minute slot at 10:00 therefore covers {10, 11},
// and a slot running past midnight wraps to hour 0. Non-positive durations
// cover nothing.
func CoveredHours(offset, duration, startHour int) HourSet {
	var set HourSet
	begin := startHour*60 + offset
	end := begin + duration - 1
	for m := begin; m <= end; m += 60 {
		set = set.With(hourOf(m))
	}
	return set
}

// hourOf maps an absolute minute to its wall-clock hour.
func hourOf(minute int) int {
	h := (minute / 60) % HoursPerDay
	if h < 0 {
		h += HoursPerDay
	}
	return h
}

// DetectConflicts reports every assigned slot whose covered hours are not a
// subset of the act's availability for that day. Days are visited in project
// order and slots in running order. Slots referring to acts that are not in
// the roster are skipped. The result is never nil.
func DetectConflicts(p Project) []Conflict {
	p = EnsureSchedule(p)
	acts := p.actIndex()

	conflicts := []Conflict{}
	for _, day := range p.Days {
		slots := p.Slots(day.Label)
		offsets := startOffsets(day, slots)
		startHour := StartHour(day)

		for i, s := range slots {
			if !s.Assigned() {
				continue
			}
			act, ok := acts[s.ActID]
			if !ok {
				continue
			}
			covered := CoveredHours(offsets[i], slotDuration(s, day), startHour)
			if !covered.SubsetOf(act.Availability[day.Label]) {
				conflicts = append(conflicts, Conflict{
					Day:   day.Label,
					Index: i,
					ActID: act.ID,
					Kind:  ConflictUnavailable,
				})
			}
		}
	}
	return conflicts
}

// UnavailableSlots returns, in ascending order, the indices of the day's
// slots whose start hour is outside the act's availability. Only the start
// hour is checked, which is what drag highlighting needs before the act is
// placed. Unknown days or acts yield an empty result.
func UnavailableSlots(p Project, label, actID string) []int {
	out := []int{}
	day, okDay := p.Day(label)
	act, okAct := p.Act(actID)
	if !okDay || !okAct {
		return out
	}

	avail := act.Availability[label]
	startHour := StartHour(day)
	for i, off := range startOffsets(day, p.Slots(label)) {
		if !avail.Has(hourOf(startHour*60 + off)) {
			out = append(out, i)
		}
	}
	return out
}

// ConflictedActs returns the set of act ids that appear in conflicts.
func ConflictedActs(conflicts []Conflict) map[string]bool {
	set := make(map[string]bool, len(conflicts))
	for _, c := range conflicts {
		set[c.ActID] = true
	}
	return set
}

// UnassignedActs returns, in roster order, the ids of acts not placed in any
// slot of any day.
func UnassignedActs(p Project) []string {
	placed := make(map[string]bool)
	for _, s := range p.Timetable.Days {
		for _, slot := range s.Slots {
			if slot.Assigned() {
				placed[slot.ActID] = true
			}
		}
	}

	out := []string{}
	for _, a := range p.Acts {
		if !placed[a.ID] {
			out = append(out, a.ID)
		}
	}
	return out
}

// SlotRef addresses one slot.
type SlotRef struct {
	Day   string `json:"day"`
	Index int    `json:"index"`
	ActID string `json:"bandId,omitempty"`
}

// OrphanedSlots returns slots assigned to act ids that are not in the roster,
// which happens after a roster is replaced by a CSV import.
func OrphanedSlots(p Project) []SlotRef {
	acts := p.actIndex()
	out := []SlotRef{}
	for _, s := range p.Timetable.Days {
		for i, slot := range s.Slots {
			if !slot.Assigned() {
				continue
			}
			if _, ok := acts[slot.ActID]; !ok {
				out = append(out, SlotRef{Day: s.Label, Index: i, ActID: slot.ActID})
			}
		}
	}
	return out
}

// SlotTime is the wall-clock window of a slot, formatted "HH:MM".
type SlotTime struct {
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotTimes returns the start and end clock labels for each slot of a day,
// using the day's start hour as origin. Times wrap at midnight.
func SlotTimes(p Project, label string) []SlotTime {
	day, ok := p.Day(label)
	if !ok {
		return nil
	}
	slots := p.Slots(label)
	origin := StartHour(day) * 60

	times := make([]SlotTime, len(slots))
	for i, off := range startOffsets(day, slots) {
		begin := origin + off
		times[i] = SlotTime{
			Index: i,
			Start: clock(begin),
			End:   clock(begin + slotDuration(slots[i], day)),
		}
	}
	return times
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", hourOf(minute), minute%60)
}
