package timetable

import (
	"reflect"
	"testing"
)

// ============================================================================
// CoveredHours Tests
// ============================================================================

func TestCoveredHours(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		duration  int
		startHour int
		want      []int
	}{
		{"90 minutes from 10:00", 0, 90, 10, []int{10, 11}},
		{"exactly one hour", 0, 60, 10, []int{10}},
		{"one minute over the hour", 0, 61, 10, []int{10, 11}},
		{"sub-hour inside the hour", 15, 30, 10, []int{10}},
		{"misaligned sub-hour sampled once", 45, 30, 10, []int{10}},
		{"offset into next hour", 60, 15, 10, []int{11}},
		{"zero duration", 0, 0, 10, []int{}},
		{"crosses midnight", 30, 90, 23, []int{23, 0}},
		{"starts after midnight", 120, 30, 23, []int{1}},
		{"long set wraps", 0, 240, 22, []int{22, 23, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoveredHours(tt.offset, tt.duration, tt.startHour)
			want := HourSetOf(tt.want...)
			if got != want {
				t.Errorf("CoveredHours(%d, %d, %d) = %v, want %v",
					tt.offset, tt.duration, tt.startHour, got.Hours(), want.Hours())
			}
		})
	}
}

// ============================================================================
// DetectConflicts Tests
// ============================================================================

func TestDetectConflicts_NinetyMinuteSlot(t *testing.T) {
	p := Project{
		Days: []Day{{Label: "1日目", Start: "10:00", DefaultDurationMin: 15}},
		Acts: []Act{{ID: "x", Name: "X", DurationMin: 90, Availability: Availability{"1日目": HourSetOf(10)}}},
	}
	p = AddRow(p, "1日目")
	p = PlaceAct(p, "1日目", 0, "x")

	got := DetectConflicts(p)
	want := []Conflict{{Day: "1日目", Index: 0, ActID: "x", Kind: ConflictUnavailable}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectConflicts = %+v, want %+v", got, want)
	}

	// Fully available: no conflict.
	p.Acts = []Act{{ID: "x", Name: "X", DurationMin: 90, Availability: Availability{"1日目": HourSetOf(10, 11)}}}
	if got := DetectConflicts(p); len(got) != 0 {
		t.Errorf("DetectConflicts = %+v, want none", got)
	}
}

func TestDetectConflicts_SampleProject(t *testing.T) {
	p := sampleProject() // 1日目 starts 13:00
	p = PlaceAct(p, "1日目", 0, "b1") // 13:00-13:15, available 13
	p = PlaceAct(p, "1日目", 1, "b3") // 13:15-13:30, available 14,16 only
	p = PlaceAct(p, "2日目", 0, "b4") // 10:00-10:25, available 12,13 only
	p = PlaceAct(p, "2日目", 1, "b2") // 10:25-10:45, available 10

	got := DetectConflicts(p)
	want := []Conflict{
		{Day: "1日目", Index: 1, ActID: "b3", Kind: ConflictUnavailable},
		{Day: "2日目", Index: 0, ActID: "b4", Kind: ConflictUnavailable},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectConflicts = %+v, want %+v", got, want)
	}
}

func TestDetectConflicts_AtMostOnePerSlot(t *testing.T) {
	p := Project{
		Days: []Day{{Label: "D", Start: "10:00", DefaultDurationMin: 15}},
		Acts: []Act{{ID: "a", DurationMin: 240}}, // no availability at all
	}
	p = AddRow(p, "D")
	p = PlaceAct(p, "D", 0, "a")

	if got := DetectConflicts(p); len(got) != 1 {
		t.Errorf("len(conflicts) = %d, want 1", len(got))
	}
}

func TestDetectConflicts_MidnightRollover(t *testing.T) {
	p := Project{
		Days: []Day{{Label: "Night", Start: "23:00", DefaultDurationMin: 30}},
		Acts: []Act{
			{ID: "late", DurationMin: 90, Availability: Availability{"Night": HourSetOf(23, 0)}},
			{ID: "early", DurationMin: 90, Availability: Availability{"Night": HourSetOf(23, 24)}},
		},
	}
	p = AddRow(p, "Night")
	p = AddRow(p, "Night")
	p = PlaceAct(p, "Night", 0, "late")

	if got := DetectConflicts(p); len(got) != 0 {
		t.Errorf("late act spanning 23:00-00:30 should be available, got %+v", got)
	}

	p = PlaceAct(p, "Night", 0, "early")
	got := DetectConflicts(p)
	if len(got) != 1 || got[0].ActID != "early" {
		t.Errorf("DetectConflicts = %+v, want one conflict for early", got)
	}

	// Second slot starts at 00:30 and only touches hour 0.
	p = PlaceAct(p, "Night", 0, "late")
	p.Acts = append(p.Acts, Act{ID: "zero", DurationMin: 20, Availability: Availability{"Night": HourSetOf(0)}})
	p = PlaceAct(p, "Night", 1, "zero")
	if got := DetectConflicts(p); len(got) != 0 {
		t.Errorf("DetectConflicts = %+v, want none", got)
	}
}

func TestDetectConflicts_SkipsUnknownActsAndEmptySlots(t *testing.T) {
	p := sampleProject()
	days := make([]DaySchedule, len(p.Timetable.Days))
	copy(days, p.Timetable.Days)
	days[0].Slots = []Slot{{Index: 0, DurationMin: 15, ActID: "removed"}, {Index: 1, DurationMin: 15}}
	p.Timetable = Timetable{Days: days}

	if got := DetectConflicts(p); len(got) != 0 {
		t.Errorf("DetectConflicts = %+v, want none", got)
	}
	if got := OrphanedSlots(p); len(got) != 1 || got[0].ActID != "removed" {
		t.Errorf("OrphanedSlots = %+v, want one ref to removed", got)
	}
}

func TestDetectConflicts_SubsetProperty(t *testing.T) {
	base := Project{Days: []Day{{Label: "D", Start: "12:00", DefaultDurationMin: 15}}}
	for dur := 1; dur <= 240; dur += 17 {
		for _, avail := range []HourSet{HourSetOf(12), HourSetOf(12, 13), HourSetOf(12, 13, 14, 15), HourSetOf(13)} {
			p := base
			p.Acts = []Act{{ID: "a", DurationMin: dur, Availability: Availability{"D": avail}}}
			p = AddRow(p, "D")
			p = PlaceAct(p, "D", 0, "a")

			covered := CoveredHours(0, dur, 12)
			wantConflict := !covered.SubsetOf(avail)
			gotConflict := len(DetectConflicts(p)) == 1
			if gotConflict != wantConflict {
				t.Errorf("dur=%d avail=%v: conflict=%v, want %v", dur, avail.Hours(), gotConflict, wantConflict)
			}
		}
	}
}

// ============================================================================
// UnavailableSlots / Derived View Tests
// ============================================================================

func TestUnavailableSlots_StartHourOnly(t *testing.T) {
	p := Project{
		Days: []Day{{Label: "D", Start: "10:00", DefaultDurationMin: 45}},
		Acts: []Act{{ID: "a", DurationMin: 120, Availability: Availability{"D": HourSetOf(10, 12)}}},
	}
	for i := 0; i < 4; i++ {
		p = AddRow(p, "D") // starts 10:00, 10:45, 11:30, 12:15
	}

	got := UnavailableSlots(p, "D", "a")
	want := []int{2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnavailableSlots = %v, want %v", got, want)
	}
}

func TestUnavailableSlots_UnknownInputs(t *testing.T) {
	p := sampleProject()

	if got := UnavailableSlots(p, "nope", "b1"); len(got) != 0 {
		t.Errorf("unknown day: got %v, want empty", got)
	}
	if got := UnavailableSlots(p, "1日目", "nope"); len(got) != 0 {
		t.Errorf("unknown act: got %v, want empty", got)
	}
}

func TestUnassignedAndConflictedActs(t *testing.T) {
	p := PlaceAct(sampleProject(), "1日目", 1, "b3")

	if got, want := UnassignedActs(p), []string{"b1", "b2", "b4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("UnassignedActs = %v, want %v", got, want)
	}

	set := ConflictedActs(DetectConflicts(p))
	if !set["b3"] || len(set) != 1 {
		t.Errorf("ConflictedActs = %v, want {b3}", set)
	}
}

func TestSlotTimes(t *testing.T) {
	p := Project{Days: []Day{{Label: "D", Start: "23:00", DefaultDurationMin: 40}}}
	p = AddRow(p, "D")
	p = AddRow(p, "D")

	got := SlotTimes(p, "D")
	want := []SlotTime{
		{Index: 0, Start: "23:00", End: "23:40"},
		{Index: 1, Start: "23:40", End: "00:20"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SlotTimes = %+v, want %+v", got, want)
	}
}
