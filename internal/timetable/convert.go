package timetable

// convert.go maps between the flat act record produced at the validation
// boundary (hour arrays) and the canonical in-memory act (hour sets).
//
// The round trip ToRecord(ToCanonical(r)) returns r with every day's hour
// array sorted and deduplicated. Hours outside 0-23 cannot be represented in
// an HourSet and are dropped by ToCanonical; validated input never has them.

import (
	"encoding/json"
	"fmt"
	"math/bits"
)

// HoursPerDay is the number of wall-clock hours an HourSet can hold.
const HoursPerDay = 24

// HourSet is an immutable set of wall-clock hours (0-23).
// Bit h is set when hour h is a member.
type HourSet uint32

// HourSetOf builds a set from the given hours, ignoring values outside 0-23.
func HourSetOf(hours ...int) HourSet {
	var s HourSet
	for _, h := range hours {
		s = s.With(h)
	}
	return s
}

// Has reports whether h is in the set.
func (s HourSet) Has(h int) bool {
	if h < 0 || h >= HoursPerDay {
		return false
	}
	return s&(1<<uint(h)) != 0
}

// With returns s plus h. Out-of-range hours leave s unchanged.
func (s HourSet) With(h int) HourSet {
	if h < 0 || h >= HoursPerDay {
		return s
	}
	return s | 1<<uint(h)
}

// Len returns the number of hours in the set.
func (s HourSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// SubsetOf reports whether every hour in s is also in other.
func (s HourSet) SubsetOf(other HourSet) bool {
	return s&^other == 0
}

// Hours returns the members in ascending order. The result is never nil.
func (s HourSet) Hours() []int {
	out := make([]int, 0, s.Len())
	for h := 0; h < HoursPerDay; h++ {
		if s.Has(h) {
			out = append(out, h)
		}
	}
	return out
}

// MarshalJSON encodes the set as an ascending array of hours.
func (s HourSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Hours())
}

// UnmarshalJSON decodes an array of hours. Duplicates are allowed; values
// outside 0-23 are rejected.
func (s *HourSet) UnmarshalJSON(data []byte) error {
	var hours []int
	if err := json.Unmarshal(data, &hours); err != nil {
		return err
	}
	var set HourSet
	for _, h := range hours {
		if h < 0 || h >= HoursPerDay {
			return fmt.Errorf("hour %d out of range 0..23", h)
		}
		set = set.With(h)
	}
	*s = set
	return nil
}

// ActRecord is the flattened form of an act used at the ingestion boundary
// and over the wire: availability is an array of hours per day label.
type ActRecord struct {
	ID           string           `json:"id,omitempty"`
	Name         string           `json:"name"`
	DurationMin  int              `json:"durationMin"`
	Availability map[string][]int `json:"availability"`
}

// ToCanonical converts a record into an Act.
func ToCanonical(rec ActRecord) Act {
	act := Act{
		ID:          rec.ID,
		Name:        rec.Name,
		DurationMin: rec.DurationMin,
	}
	if rec.Availability != nil {
		act.Availability = make(Availability, len(rec.Availability))
		for label, hours := range rec.Availability {
			act.Availability[label] = HourSetOf(hours...)
		}
	}
	return act
}

// ToRecord converts an Act into a record with ascending, deduplicated hours.
func ToRecord(act Act) ActRecord {
	rec := ActRecord{
		ID:          act.ID,
		Name:        act.Name,
		DurationMin: act.DurationMin,
	}
	if act.Availability != nil {
		rec.Availability = make(map[string][]int, len(act.Availability))
		for label, set := range act.Availability {
			rec.Availability[label] = set.Hours()
		}
	}
	return rec
}

// ToCanonicalAll converts a slice of records, preserving order.
func ToCanonicalAll(recs []ActRecord) []Act {
	acts := make([]Act, len(recs))
	for i, r := range recs {
		acts[i] = ToCanonical(r)
	}
	return acts
}

// ToRecords converts a slice of acts, preserving order.
func ToRecords(acts []Act) []ActRecord {
	recs := make([]ActRecord, len(acts))
	for i, a := range acts {
		recs[i] = ToRecord(a)
	}
	return recs
}
