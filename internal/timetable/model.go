package timetable

import (
	"bytes"
	"encoding/json"
	"time"
)

// SchemaVersion is written into every project this package produces.
// Documents without a version are read as the unversioned layout.
const SchemaVersion = 1

// DefaultStartHour is the day origin used when Day.Start is missing or
// cannot be parsed.
const DefaultStartHour = 10

// Project is the aggregate root of a run-sheet.
//
// Field names in JSON follow the persisted layout: acts are stored under
// "bands" and each day's slots under "timetable.days[].slots".
type Project struct {
	SchemaVersion int       `json:"schemaVersion,omitempty"`
	Meta          Meta      `json:"meta"`
	Days          []Day     `json:"days"`
	Acts          []Act     `json:"bands"`
	Timetable     Timetable `json:"timetable"`
}

// Meta holds descriptive project information.
type Meta struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Day is one performance day. Label is the stable key shared by the
// timetable and by act availability.
type Day struct {
	Label              string            `json:"label"`
	Date               string            `json:"date"`
	Venue              string            `json:"venue"`
	Start              string            `json:"start,omitempty"` // "HH:MM"
	Intermissions      []int             `json:"intermissions"`   // minutes, informational only
	DefaultDurationMin int               `json:"defaultDurationMin"`
	Extra              map[string]string `json:"extra,omitempty"`
}

// Act is a performer in canonical form: availability is a set of hours per
// day label.
type Act struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	DurationMin  int          `json:"durationMin"`
	Availability Availability `json:"availability"`
}

// Availability maps a day label to the hours an act can perform that day.
type Availability map[string]HourSet

// Timetable holds one ordered slot list per day.
type Timetable struct {
	Days []DaySchedule `json:"days"`
}

// UnmarshalJSON accepts the object layout and the legacy empty-array layout
// ("timetable": []) written by older project files.
func (t *Timetable) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '[' || bytes.Equal(trimmed, []byte("null")) {
		*t = Timetable{}
		return nil
	}

	type plain Timetable
	var v plain
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*t = Timetable(v)
	return nil
}

// DaySchedule is the running order of one day.
type DaySchedule struct {
	Label string `json:"label"`
	Slots []Slot `json:"slots"`
}

// Slot is one row of a day's running order.
type Slot struct {
	Index       int    `json:"index"`
	DurationMin int    `json:"durationMin"`
	ActID       string `json:"bandId,omitempty"`
}

// Assigned reports whether an act is placed in the slot.
func (s Slot) Assigned() bool {
	return s.ActID != ""
}

// Day returns the day with the given label.
func (p Project) Day(label string) (Day, bool) {
	for _, d := range p.Days {
		if d.Label == label {
			return d, true
		}
	}
	return Day{}, false
}

// Act returns the act with the given id.
func (p Project) Act(id string) (Act, bool) {
	if id == "" {
		return Act{}, false
	}
	for _, a := range p.Acts {
		if a.ID == id {
			return a, true
		}
	}
	return Act{}, false
}

// Slots returns the slot list for a day, or nil if the day has no schedule.
// The returned slice is shared with p and must not be modified.
func (p Project) Slots(label string) []Slot {
	if i := p.scheduleIndex(label); i >= 0 {
		return p.Timetable.Days[i].Slots
	}
	return nil
}

func (p Project) scheduleIndex(label string) int {
	for i, s := range p.Timetable.Days {
		if s.Label == label {
			return i
		}
	}
	return -1
}

func (p Project) actIndex() map[string]Act {
	idx := make(map[string]Act, len(p.Acts))
	for _, a := range p.Acts {
		if _, dup := idx[a.ID]; !dup {
			idx[a.ID] = a
		}
	}
	return idx
}

// withSlots returns a copy of p whose schedule at position i uses slots.
// Only the Timetable.Days slice is copied; other schedules are shared.
func (p Project) withSlots(i int, slots []Slot) Project {
	days := make([]DaySchedule, len(p.Timetable.Days))
	copy(days, p.Timetable.Days)
	days[i].Slots = slots
	p.Timetable = Timetable{Days: days}
	return p
}
