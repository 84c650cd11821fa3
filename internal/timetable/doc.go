// Package timetable provides the run-sheet data model and the pure scheduling
// engine that operates on it.
//
// This package owns every scheduling invariant and has no I/O, no logging and
// no shared state. It can be used by the web host, the CLI, or tests without
// modification.
//
// # Data Model
//
// A [Project] is the aggregate root. It holds the fixed list of [Day] values,
// the act roster ([Act]) and one ordered list of [Slot] per day:
//
//	Project
//	  ├── Meta      title, createdAt
//	  ├── Days      ordered; Label is the stable key
//	  ├── Acts      unique by ID (persisted as "bands")
//	  └── Timetable one DaySchedule per day label
//
// Slot.Index always equals the slot's position in its day. Every structural
// mutation reindexes the affected day.
//
// # Value Semantics
//
// Every operation takes a Project value and returns a new one. Mutators copy
// only the day schedule they touch and share everything else with their input
// (copy-on-write). Callers must treat a Project as immutable: replace the
// whole value, never write through its slices or maps.
//
// # Fail-Soft Mutators
//
// [AddRow], [InsertRow], [RemoveRow], [PlaceAct] and [Swap] silently return the
// schedule-normalized input when a day label, act id or slot index does not
// exist. Callers that need diagnostics check the target first with
// [CheckDay], [CheckSlot] or [CheckPlacement], which return wrapped sentinel
// errors ([ErrUnknownDay], [ErrUnknownAct], [ErrSlotOutOfRange]).
//
// # Availability
//
// Availability is hour-granular: an act declares, per day, the wall-clock hours
// (0-23) during which it can perform. [DetectConflicts] checks every hour a
// placed slot touches; [UnavailableSlots] only checks the hour a slot starts in
// and is meant for live highlighting.
package timetable
