package timetable

import (
	"sort"
	"strconv"
	"strings"
)

// EnsureSchedule guarantees that every day has exactly one slot list.
//
// Existing lists for known days are kept in order, lists for labels that are
// not (or no longer) days are dropped, and an empty list is appended for each
// day that has none. If nothing needs to change, p is returned as is, which
// makes the function idempotent and cheap on well-formed projects.
func EnsureSchedule(p Project) Project {
	known := make(map[string]bool, len(p.Days))
	for _, d := range p.Days {
		known[d.Label] = true
	}

	changed := false
	seen := make(map[string]bool, len(p.Timetable.Days))
	days := make([]DaySchedule, 0, len(p.Days))
	for _, s := range p.Timetable.Days {
		if !known[s.Label] || seen[s.Label] {
			changed = true
			continue
		}
		seen[s.Label] = true
		days = append(days, s)
	}
	for _, d := range p.Days {
		if seen[d.Label] {
			continue
		}
		seen[d.Label] = true
		days = append(days, DaySchedule{Label: d.Label, Slots: []Slot{}})
		changed = true
	}

	if !changed {
		return p
	}
	p.Timetable = Timetable{Days: days}
	return p
}

// AddRow appends an unassigned slot of the day's default duration.
func AddRow(p Project, label string) Project {
	return InsertRow(p, label, len(EnsureSchedule(p).Slots(label)))
}

// InsertRow inserts an unassigned slot of the day's default duration at
// position at, clamped to [0, len]. Unknown days are a no-op.
func InsertRow(p Project, label string, at int) Project {
	p = EnsureSchedule(p)
	day, ok := p.Day(label)
	i := p.scheduleIndex(label)
	if !ok || i < 0 {
		return p
	}

	old := p.Timetable.Days[i].Slots
	if at < 0 {
		at = 0
	}
	if at > len(old) {
		at = len(old)
	}

	slots := make([]Slot, 0, len(old)+1)
	slots = append(slots, old[:at]...)
	slots = append(slots, Slot{DurationMin: day.DefaultDurationMin})
	slots = append(slots, old[at:]...)
	reindex(slots)

	return p.withSlots(i, slots)
}

// RemoveRow deletes the slot at index and returns the id of the act that was
// placed there, if any, so the caller can treat it as unassigned again.
// Unknown days and out-of-range indices are a no-op with an empty id.
func RemoveRow(p Project, label string, index int) (Project, string) {
	p = EnsureSchedule(p)
	i := p.scheduleIndex(label)
	if i < 0 {
		return p, ""
	}

	old := p.Timetable.Days[i].Slots
	if index < 0 || index >= len(old) {
		return p, ""
	}
	removed := old[index].ActID

	slots := make([]Slot, 0, len(old)-1)
	slots = append(slots, old[:index]...)
	slots = append(slots, old[index+1:]...)
	reindex(slots)

	return p.withSlots(i, slots), removed
}

// PlaceAct assigns an act to the slot at index, replacing any previous
// assignment. The slot takes the act's duration, or the day default when the
// act has none. Unknown acts, days or indices are a no-op.
func PlaceAct(p Project, label string, index int, actID string) Project {
	p = EnsureSchedule(p)
	act, okAct := p.Act(actID)
	day, okDay := p.Day(label)
	i := p.scheduleIndex(label)
	if !okAct || !okDay || i < 0 {
		return p
	}

	old := p.Timetable.Days[i].Slots
	if index < 0 || index >= len(old) {
		return p
	}

	dur := act.DurationMin
	if dur <= 0 {
		dur = day.DefaultDurationMin
	}

	slots := make([]Slot, len(old))
	copy(slots, old)
	slots[index].ActID = act.ID
	slots[index].DurationMin = dur

	return p.withSlots(i, slots)
}

// Swap exchanges the contents (assignment and duration) of two slots of the
// same day. Applying it twice with the same indices restores the input.
func Swap(p Project, label string, a, b int) Project {
	p = EnsureSchedule(p)
	i := p.scheduleIndex(label)
	if i < 0 {
		return p
	}

	old := p.Timetable.Days[i].Slots
	if a < 0 || a >= len(old) || b < 0 || b >= len(old) {
		return p
	}

	slots := make([]Slot, len(old))
	copy(slots, old)
	slots[a], slots[b] = slots[b], slots[a]
	reindex(slots)

	return p.withSlots(i, slots)
}

// StartOffsets returns, for each slot of the day, its start in minutes from
// the day's origin. Slots without a duration count as the day default.
// Unknown days yield nil.
func StartOffsets(p Project, label string) []int {
	day, ok := p.Day(label)
	if !ok {
		return nil
	}
	return startOffsets(day, p.Slots(label))
}

func startOffsets(day Day, slots []Slot) []int {
	offsets := make([]int, len(slots))
	acc := 0
	for i, s := range slots {
		offsets[i] = acc
		acc += slotDuration(s, day)
	}
	return offsets
}

func slotDuration(s Slot, day Day) int {
	if s.DurationMin > 0 {
		return s.DurationMin
	}
	return day.DefaultDurationMin
}

// StartHour returns the hour component of the day's start time.
//
// The start is read from Day.Start, falling back to Extra["start"] for
// older project files. Missing or unparseable values (no
// leading digits, or an hour above 23) give DefaultStartHour.
func StartHour(day Day) int {
	start := strings.TrimSpace(day.Start)
	if start == "" && day.Extra != nil {
		start = strings.TrimSpace(day.Extra["start"])
	}
	if start == "" {
		return DefaultStartHour
	}

	head, _, _ := strings.Cut(start, ":")
	end := 0
	for end < len(head) && head[end] >= '0' && head[end] <= '9' {
		end++
	}
	if end == 0 {
		return DefaultStartHour
	}
	h, err := strconv.Atoi(head[:end])
	if err != nil || h >= HoursPerDay {
		return DefaultStartHour
	}
	return h
}

func reindex(slots []Slot) {
	for i := range slots {
		slots[i].Index = i
	}
}

// AvailabilityScore is the total number of available hours an act declares
// across all days. Unknown acts score 0.
func AvailabilityScore(p Project, actID string) int {
	act, ok := p.Act(actID)
	if !ok {
		return 0
	}
	return availabilityScore(act)
}

func availabilityScore(act Act) int {
	n := 0
	for _, set := range act.Availability {
		n += set.Len()
	}
	return n
}

// SortByAvailability returns act ids ordered by ascending AvailabilityScore,
// so the most constrained acts come first. Ties keep roster order.
func SortByAvailability(p Project) []string {
	type scored struct {
		id    string
		score int
	}
	list := make([]scored, len(p.Acts))
	for i, a := range p.Acts {
		list[i] = scored{id: a.ID, score: availabilityScore(a)}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score < list[j].score
	})

	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.id
	}
	return ids
}
