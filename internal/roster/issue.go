package roster

import "fmt"

// Kind classifies an ingestion issue.
type Kind string

const (
	KindStructure Kind = "structure" // required column missing, no header
	KindSyntax    Kind = "syntax"    // CSV could not be tokenized
	KindRow       Kind = "row"       // row dropped (empty name, bad duration)
	KindCell      Kind = "cell"      // availability cell ignored, row kept
	KindColumn    Kind = "column"    // availability column ignored
)

// Issue is a single problem found while ingesting a roster.
// Line is the 1-based physical line of the CSV (the header is line 1).
type Issue struct {
	Line    int    `json:"line,omitempty"`
	Column  string `json:"column,omitempty"`
	Value   string `json:"value,omitempty"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (i Issue) Error() string {
	switch {
	case i.Line > 0 && i.Column != "":
		return fmt.Sprintf("row %d, column %q: %s", i.Line, i.Column, i.Message)
	case i.Line > 0:
		return fmt.Sprintf("row %d: %s", i.Line, i.Message)
	case i.Column != "":
		return fmt.Sprintf("column %q: %s", i.Column, i.Message)
	default:
		return i.Message
	}
}

// Dropped reports whether the issue caused a row to be excluded.
func (i Issue) Dropped() bool {
	return i.Kind == KindRow
}
