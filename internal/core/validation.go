package core

// validation.go checks project documents supplied from outside, such as a
// saved file uploaded through ReplaceProject or a freshly built project.
//
// Validation covers the invariants the engine relies on but cannot repair by
// itself: unique non-empty day labels, unique act ids, sane durations and
// slot indices that match their positions. Missing day schedules are not an
// error; EnsureSchedule adds them.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/runsheet/internal/roster"
	"github.com/JonMunkholm/runsheet/internal/timetable"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Path of the offending field, e.g. "days[1].label"
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidateProject returns every invariant violation found in p, in document
// order. A nil result means the project is usable.
func ValidateProject(p timetable.Project) []ValidationError {
	var errs []ValidationError
	add := func(field, value, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
	}

	labels := make(map[string]bool, len(p.Days))
	for i, d := range p.Days {
		field := fmt.Sprintf("days[%d]", i)
		switch {
		case strings.TrimSpace(d.Label) == "":
			add(field+".label", d.Label, "label is empty")
		case labels[d.Label]:
			add(field+".label", d.Label, "duplicate day label %q", d.Label)
		}
		labels[d.Label] = true

		if d.DefaultDurationMin < 0 {
			add(field+".defaultDurationMin", fmt.Sprint(d.DefaultDurationMin), "default duration must not be negative")
		}
		for j, m := range d.Intermissions {
			if m < 0 {
				add(fmt.Sprintf("%s.intermissions[%d]", field, j), fmt.Sprint(m), "intermission must not be negative")
			}
		}
	}

	ids := make(map[string]bool, len(p.Acts))
	for i, a := range p.Acts {
		field := fmt.Sprintf("bands[%d]", i)
		switch {
		case a.ID == "":
			add(field+".id", "", "id is empty")
		case ids[a.ID]:
			add(field+".id", a.ID, "duplicate act id %q", a.ID)
		}
		ids[a.ID] = true

		if strings.TrimSpace(a.Name) == "" {
			add(field+".name", a.Name, "name is empty")
		}
		if a.DurationMin < roster.MinDurationMin || a.DurationMin > roster.MaxDurationMin {
			add(field+".durationMin", fmt.Sprint(a.DurationMin), "duration must be between %d and %d",
				roster.MinDurationMin, roster.MaxDurationMin)
		}
	}

	scheduled := make(map[string]bool, len(p.Timetable.Days))
	for i, s := range p.Timetable.Days {
		field := fmt.Sprintf("timetable.days[%d]", i)
		switch {
		case !labels[s.Label]:
			add(field+".label", s.Label, "schedule for unknown day %q", s.Label)
		case scheduled[s.Label]:
			add(field+".label", s.Label, "duplicate schedule for day %q", s.Label)
		}
		scheduled[s.Label] = true

		for j, slot := range s.Slots {
			if slot.Index != j {
				add(fmt.Sprintf("%s.slots[%d].index", field, j), fmt.Sprint(slot.Index), "index must equal position %d", j)
			}
			if slot.DurationMin < 0 {
				add(fmt.Sprintf("%s.slots[%d].durationMin", field, j), fmt.Sprint(slot.DurationMin), "duration must not be negative")
			}
		}
	}

	return errs
}

// validationFailure wraps violations in ErrInvalidProject, or returns nil.
func validationFailure(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return fmt.Errorf("%w: %w", ErrInvalidProject, errors.Join(joined...))
}
