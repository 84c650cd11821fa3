package timetable

import (
	"reflect"
	"testing"
)

// sampleProject returns two days with the four sample acts and two empty
// rows per day.
func sampleProject() Project {
	p := Project{
		Meta: Meta{Title: "Spring Live"},
		Days: []Day{
			{Label: "1日目", Start: "13:00", DefaultDurationMin: 15},
			{Label: "2日目", Start: "10:00", DefaultDurationMin: 20},
		},
		Acts: []Act{
			{ID: "b1", Name: "PK shampoo", DurationMin: 15, Availability: Availability{"1日目": HourSetOf(13, 14, 15), "2日目": HourSetOf(10, 11)}},
			{ID: "b2", Name: "Official髭男dism", DurationMin: 20, Availability: Availability{"1日目": HourSetOf(13, 15), "2日目": HourSetOf(10, 11, 12)}},
			{ID: "b3", Name: "King Gnu", DurationMin: 15, Availability: Availability{"1日目": HourSetOf(14, 16), "2日目": HourSetOf(11)}},
			{ID: "b4", Name: "indigo la end", DurationMin: 25, Availability: Availability{"1日目": HourSetOf(15, 16), "2日目": HourSetOf(12, 13)}},
		},
	}
	for _, d := range p.Days {
		p = AddRow(p, d.Label)
		p = AddRow(p, d.Label)
	}
	return p
}

// ============================================================================
// EnsureSchedule Tests
// ============================================================================

func TestEnsureSchedule_AddsMissingDays(t *testing.T) {
	p := Project{Days: []Day{{Label: "1日目"}, {Label: "2日目"}}}

	got := EnsureSchedule(p)

	if len(got.Timetable.Days) != 2 {
		t.Fatalf("len(Timetable.Days) = %d, want 2", len(got.Timetable.Days))
	}
	for i, want := range []string{"1日目", "2日目"} {
		if got.Timetable.Days[i].Label != want {
			t.Errorf("Timetable.Days[%d].Label = %q, want %q", i, got.Timetable.Days[i].Label, want)
		}
		if got.Timetable.Days[i].Slots == nil {
			t.Errorf("Timetable.Days[%d].Slots is nil, want empty slice", i)
		}
	}
	if p.Timetable.Days != nil {
		t.Error("input project was modified")
	}
}

func TestEnsureSchedule_PreservesExistingAndDropsOrphans(t *testing.T) {
	p := Project{
		Days: []Day{{Label: "1日目"}, {Label: "2日目"}},
		Timetable: Timetable{Days: []DaySchedule{
			{Label: "ghost", Slots: []Slot{{Index: 0, DurationMin: 5}}},
			{Label: "2日目", Slots: []Slot{{Index: 0, DurationMin: 30, ActID: "x"}}},
		}},
	}

	got := EnsureSchedule(p)

	want := []DaySchedule{
		{Label: "2日目", Slots: []Slot{{Index: 0, DurationMin: 30, ActID: "x"}}},
		{Label: "1日目", Slots: []Slot{}},
	}
	if !reflect.DeepEqual(got.Timetable.Days, want) {
		t.Errorf("Timetable.Days = %+v, want %+v", got.Timetable.Days, want)
	}
}

func TestEnsureSchedule_Idempotent(t *testing.T) {
	p := EnsureSchedule(Project{Days: []Day{{Label: "A"}}})
	again := EnsureSchedule(p)

	if !reflect.DeepEqual(p, again) {
		t.Errorf("second EnsureSchedule changed project: %+v vs %+v", p, again)
	}
}

// ============================================================================
// Row Mutation Tests
// ============================================================================

func TestAddRow_AppendsDefaultDuration(t *testing.T) {
	p := sampleProject()
	got := AddRow(p, "2日目")

	slots := got.Slots("2日目")
	if len(slots) != 3 {
		t.Fatalf("len(slots) = %d, want 3", len(slots))
	}
	if slots[2].DurationMin != 20 || slots[2].Assigned() {
		t.Errorf("appended slot = %+v, want unassigned 20min", slots[2])
	}
	if len(p.Slots("2日目")) != 2 {
		t.Error("input project was modified")
	}
}

func TestInsertRow_ClampsIndex(t *testing.T) {
	tests := []struct {
		name   string
		at     int
		wantAt int
	}{
		{"front", 0, 0},
		{"middle", 1, 1},
		{"end", 2, 2},
		{"negative clamps to front", -5, 0},
		{"past end clamps to end", 99, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PlaceAct(sampleProject(), "1日目", 0, "b4")
			got := InsertRow(p, "1日目", tt.at)

			slots := got.Slots("1日目")
			if len(slots) != 3 {
				t.Fatalf("len(slots) = %d, want 3", len(slots))
			}
			if slots[tt.wantAt].Assigned() {
				t.Errorf("slot %d should be the new unassigned row, got %+v", tt.wantAt, slots[tt.wantAt])
			}
			for i, s := range slots {
				if s.Index != i {
					t.Errorf("slots[%d].Index = %d, want %d", i, s.Index, i)
				}
			}
		})
	}
}

func TestInsertRow_UnknownDayNoop(t *testing.T) {
	p := sampleProject()
	got := InsertRow(p, "3日目", 0)

	if !reflect.DeepEqual(p, got) {
		t.Error("InsertRow on unknown day changed the project")
	}
}

func TestRemoveRow_ReturnsRemovedAct(t *testing.T) {
	p := PlaceAct(sampleProject(), "1日目", 1, "b2")

	got, removed := RemoveRow(p, "1日目", 1)

	if removed != "b2" {
		t.Errorf("removed = %q, want %q", removed, "b2")
	}
	if n := len(got.Slots("1日目")); n != 1 {
		t.Errorf("len(slots) = %d, want 1", n)
	}
	if n := len(p.Slots("1日目")); n != 2 {
		t.Errorf("input slots = %d, want 2 (unchanged)", n)
	}
}

func TestRemoveRow_OutOfRangeUnchanged(t *testing.T) {
	p := PlaceAct(sampleProject(), "1日目", 0, "b1")

	for _, idx := range []int{-1, 2, 100} {
		got, removed := RemoveRow(p, "1日目", idx)
		if removed != "" {
			t.Errorf("RemoveRow(%d) removed = %q, want empty", idx, removed)
		}
		if !reflect.DeepEqual(p, got) {
			t.Errorf("RemoveRow(%d) changed the project", idx)
		}
	}

	got, removed := RemoveRow(p, "nope", 0)
	if removed != "" || !reflect.DeepEqual(p, got) {
		t.Error("RemoveRow on unknown day should be a no-op")
	}
}

func TestAddRowThenRemoveRow_RestoresSlots(t *testing.T) {
	base := PlaceAct(sampleProject(), "1日目", 0, "b1")
	base = PlaceAct(base, "1日目", 1, "b3")
	before := base.Slots("1日目")

	for at := 0; at <= len(before); at++ {
		added := InsertRow(base, "1日目", at)
		restored, removed := RemoveRow(added, "1日目", at)

		if removed != "" {
			t.Errorf("at=%d: removed = %q, want empty", at, removed)
		}
		if !reflect.DeepEqual(restored.Slots("1日目"), before) {
			t.Errorf("at=%d: slots = %+v, want %+v", at, restored.Slots("1日目"), before)
		}
	}
}

// ============================================================================
// PlaceAct / Swap Tests
// ============================================================================

func TestPlaceAct_SetsDurationAndOverwrites(t *testing.T) {
	p := PlaceAct(sampleProject(), "2日目", 0, "b1")
	p = PlaceAct(p, "2日目", 0, "b4")

	slot := p.Slots("2日目")[0]
	if slot.ActID != "b4" {
		t.Errorf("ActID = %q, want %q", slot.ActID, "b4")
	}
	if slot.DurationMin != 25 {
		t.Errorf("DurationMin = %d, want 25", slot.DurationMin)
	}
}

func TestPlaceAct_FallsBackToDayDefault(t *testing.T) {
	p := sampleProject()
	p.Acts = append(p.Acts, Act{ID: "b5", Name: "No Duration"})

	got := PlaceAct(p, "2日目", 1, "b5")

	if d := got.Slots("2日目")[1].DurationMin; d != 20 {
		t.Errorf("DurationMin = %d, want day default 20", d)
	}
}

func TestPlaceAct_NoopCases(t *testing.T) {
	p := sampleProject()
	tests := []struct {
		name  string
		day   string
		index int
		act   string
	}{
		{"unknown act", "1日目", 0, "zz"},
		{"empty act", "1日目", 0, ""},
		{"unknown day", "9日目", 0, "b1"},
		{"index too large", "1日目", 2, "b1"},
		{"negative index", "1日目", -1, "b1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceAct(p, tt.day, tt.index, tt.act)
			if !reflect.DeepEqual(p, got) {
				t.Error("PlaceAct changed the project")
			}
		})
	}
}

func TestSwap_ExchangesContents(t *testing.T) {
	p := PlaceAct(sampleProject(), "1日目", 0, "b4")

	got := Swap(p, "1日目", 0, 1)
	slots := got.Slots("1日目")

	if slots[0].Assigned() || slots[0].DurationMin != 15 {
		t.Errorf("slots[0] = %+v, want unassigned 15min", slots[0])
	}
	if slots[1].ActID != "b4" || slots[1].DurationMin != 25 {
		t.Errorf("slots[1] = %+v, want b4 25min", slots[1])
	}
	if slots[0].Index != 0 || slots[1].Index != 1 {
		t.Errorf("indices = %d,%d want 0,1", slots[0].Index, slots[1].Index)
	}
}

func TestSwap_IsInvolution(t *testing.T) {
	p := PlaceAct(sampleProject(), "1日目", 0, "b4")
	p = PlaceAct(p, "1日目", 1, "b2")

	pairs := [][2]int{{0, 1}, {1, 0}, {0, 0}, {1, 1}}
	for _, pr := range pairs {
		got := Swap(Swap(p, "1日目", pr[0], pr[1]), "1日目", pr[0], pr[1])
		if !reflect.DeepEqual(p, got) {
			t.Errorf("swap twice (%d,%d) did not restore project", pr[0], pr[1])
		}
	}
}

func TestSwap_OutOfRangeNoop(t *testing.T) {
	p := PlaceAct(sampleProject(), "1日目", 0, "b4")

	if got := Swap(p, "1日目", 0, 2); !reflect.DeepEqual(p, got) {
		t.Error("Swap with out-of-range index changed the project")
	}
	if got := Swap(p, "nope", 0, 1); !reflect.DeepEqual(p, got) {
		t.Error("Swap on unknown day changed the project")
	}
}

// ============================================================================
// Offsets / Start Hour Tests
// ============================================================================

func TestStartOffsets(t *testing.T) {
	p := PlaceAct(sampleProject(), "1日目", 0, "b4") // 25
	p = AddRow(p, "1日目")                             // default 15
	p = PlaceAct(p, "1日目", 2, "b2")                  // 20

	got := StartOffsets(p, "1日目")
	want := []int{0, 25, 40}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StartOffsets = %v, want %v", got, want)
	}

	if got := StartOffsets(p, "missing"); got != nil {
		t.Errorf("StartOffsets(missing) = %v, want nil", got)
	}
}

func TestStartOffsets_ZeroDurationUsesDefault(t *testing.T) {
	p := Project{
		Days: []Day{{Label: "D", DefaultDurationMin: 30}},
		Timetable: Timetable{Days: []DaySchedule{
			{Label: "D", Slots: []Slot{{Index: 0}, {Index: 1, DurationMin: 10}, {Index: 2}}},
		}},
	}

	got := StartOffsets(p, "D")
	want := []int{0, 30, 40}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StartOffsets = %v, want %v", got, want)
	}
}

func TestStartHour(t *testing.T) {
	tests := []struct {
		name string
		day  Day
		want int
	}{
		{"standard", Day{Start: "13:30"}, 13},
		{"single digit", Day{Start: "9:00"}, 9},
		{"midnight", Day{Start: "00:15"}, 0},
		{"empty", Day{}, DefaultStartHour},
		{"garbage", Day{Start: "noon"}, DefaultStartHour},
		{"leading digits only", Day{Start: "18h"}, 18},
		{"hour too large", Day{Start: "25:00"}, DefaultStartHour},
		{"legacy extra start", Day{Extra: map[string]string{"start": "15:00"}}, 15},
		{"start wins over extra", Day{Start: "11:00", Extra: map[string]string{"start": "15:00"}}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartHour(tt.day); got != tt.want {
				t.Errorf("StartHour(%+v) = %d, want %d", tt.day, got, tt.want)
			}
		})
	}
}

// ============================================================================
// Availability Sort Tests
// ============================================================================

func TestAvailabilityScore(t *testing.T) {
	p := sampleProject()
	tests := map[string]int{"b1": 5, "b2": 5, "b3": 3, "b4": 4, "unknown": 0}

	for id, want := range tests {
		if got := AvailabilityScore(p, id); got != want {
			t.Errorf("AvailabilityScore(%q) = %d, want %d", id, got, want)
		}
	}
}

func TestSortByAvailability_StableAscending(t *testing.T) {
	got := SortByAvailability(sampleProject())
	want := []string{"b3", "b4", "b1", "b2"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortByAvailability = %v, want %v", got, want)
	}
}
