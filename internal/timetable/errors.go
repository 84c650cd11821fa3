package timetable

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the Check* functions. Mutators never return
// them; they are for callers that opt into strict diagnostics.
var (
	ErrUnknownDay     = errors.New("unknown day")
	ErrUnknownAct     = errors.New("unknown act")
	ErrSlotOutOfRange = errors.New("slot index out of range")
)

// CheckDay returns ErrUnknownDay if label is not one of the project's days.
func CheckDay(p Project, label string) error {
	if _, ok := p.Day(label); !ok {
		return fmt.Errorf("day %q: %w", label, ErrUnknownDay)
	}
	return nil
}

// CheckSlot verifies that index addresses an existing slot of the day.
func CheckSlot(p Project, label string, index int) error {
	if err := CheckDay(p, label); err != nil {
		return err
	}
	n := len(p.Slots(label))
	if index < 0 || index >= n {
		return fmt.Errorf("day %q index %d (have %d slots): %w", label, index, n, ErrSlotOutOfRange)
	}
	return nil
}

// CheckAct returns ErrUnknownAct if no act has the given id.
func CheckAct(p Project, id string) error {
	if _, ok := p.Act(id); !ok {
		return fmt.Errorf("act %q: %w", id, ErrUnknownAct)
	}
	return nil
}

// CheckPlacement verifies every identifier PlaceAct needs.
func CheckPlacement(p Project, label string, index int, actID string) error {
	if err := CheckAct(p, actID); err != nil {
		return err
	}
	return CheckSlot(p, label, index)
}
