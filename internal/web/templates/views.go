// Package templates renders the server-side HTML pages.
//
// Markup lives in .templ files; run `templ generate` after editing them.
package templates

//go:generate templ generate

// RunSheetView is everything the run-sheet page shows.
type RunSheetView struct {
	Title      string
	Days       []DayView
	Unassigned []string // act names not placed in any slot
	Conflicts  int
}

// DayView is one day table.
type DayView struct {
	Label string
	Date  string
	Venue string
	Rows  []RowView
}

// RowView is one slot row.
type RowView struct {
	Index       int
	Start       string
	End         string
	ActName     string
	DurationMin int
	Conflict    bool
	Orphaned    bool
}
