package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/runsheet/internal/timetable"
)

func validProject() timetable.Project {
	p := NewProject(NewProjectRequest{Days: []DayDef{{}, {}}, InitialRows: 2}, Defaults{}, testNow)
	p.Acts = []timetable.Act{
		{ID: "a", Name: "A", DurationMin: 15},
		{ID: "b", Name: "B", DurationMin: 240},
	}
	return timetable.PlaceAct(p, "1日目", 0, "a")
}

func TestValidateProject(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *timetable.Project)
		wantField string
	}{
		{"valid", func(p *timetable.Project) {}, ""},
		{"empty day label", func(p *timetable.Project) { p.Days[0].Label = "" }, "days[0].label"},
		{"duplicate day label", func(p *timetable.Project) { p.Days[1].Label = "1日目" }, "days[1].label"},
		{"negative default duration", func(p *timetable.Project) { p.Days[0].DefaultDurationMin = -5 }, "days[0].defaultDurationMin"},
		{"negative intermission", func(p *timetable.Project) { p.Days[1].Intermissions = []int{45, -1} }, "days[1].intermissions[1]"},
		{"empty act id", func(p *timetable.Project) { p.Acts[0].ID = "" }, "bands[0].id"},
		{"duplicate act id", func(p *timetable.Project) { p.Acts[1].ID = "a" }, "bands[1].id"},
		{"empty act name", func(p *timetable.Project) { p.Acts[1].Name = " " }, "bands[1].name"},
		{"act duration zero", func(p *timetable.Project) { p.Acts[0].DurationMin = 0 }, "bands[0].durationMin"},
		{"act duration too long", func(p *timetable.Project) { p.Acts[1].DurationMin = 241 }, "bands[1].durationMin"},
		{"schedule for unknown day", func(p *timetable.Project) { p.Timetable.Days[1].Label = "9日目" }, "timetable.days[1].label"},
		{"index mismatch", func(p *timetable.Project) {
			p.Timetable.Days[0].Slots = []timetable.Slot{{Index: 1, DurationMin: 15}}
		}, "timetable.days[0].slots[0].index"},
		{"negative slot duration", func(p *timetable.Project) {
			p.Timetable.Days[0].Slots = []timetable.Slot{{Index: 0, DurationMin: -15}}
		}, "timetable.days[0].slots[0].durationMin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			tt.mutate(&p)

			errs := ValidateProject(p)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("ValidateProject() = %v, want none", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("ValidateProject() = none, want error on %s", tt.wantField)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidateProject_AllowsOrphansAndMissingSchedules(t *testing.T) {
	p := validProject()
	p.Timetable.Days = p.Timetable.Days[:1]
	p.Timetable.Days[0].Slots = []timetable.Slot{{Index: 0, DurationMin: 15, ActID: "removed"}}

	if errs := ValidateProject(p); len(errs) != 0 {
		t.Errorf("ValidateProject() = %v, want none", errs)
	}
}

func TestValidationFailure(t *testing.T) {
	if validationFailure(nil) != nil {
		t.Error("validationFailure(nil) should be nil")
	}

	err := validationFailure([]ValidationError{
		{Field: "days[0].label", Message: "label is empty"},
		{Field: "bands[0].id", Message: "id is empty"},
	})
	if !errors.Is(err, ErrInvalidProject) {
		t.Errorf("error %v does not wrap ErrInvalidProject", err)
	}
	for _, want := range []string{"days[0].label: label is empty", "bands[0].id: id is empty"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}

	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "days[0].label" {
		t.Errorf("errors.As(ValidationError) = %+v", ve)
	}
}
