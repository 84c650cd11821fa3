// Package store persists run-sheet projects as JSON documents.
//
// The engine itself never touches storage; hosts load a project, thread it
// through timetable operations and write the result back. Every backend
// stores the same document layout (see timetable.Project) plus a few
// summary columns for listing.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/runsheet/internal/timetable"
)

var (
	// ErrNotFound is returned when no project has the requested id.
	ErrNotFound = errors.New("project not found")
	// ErrExists is returned by Create when the id is already taken.
	ErrExists = errors.New("project already exists")
)

// Summary is the listing view of a stored project.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Days      int       `json:"days"`
	Acts      int       `json:"acts"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectStore saves and loads projects by id.
type ProjectStore interface {
	// Create stores a new project. It fails with ErrExists if id is taken.
	Create(ctx context.Context, id string, p timetable.Project) error
	// Get loads a project. It fails with ErrNotFound if id is unknown.
	Get(ctx context.Context, id string) (timetable.Project, error)
	// Put replaces an existing project. It fails with ErrNotFound if id is unknown.
	Put(ctx context.Context, id string, p timetable.Project) error
	// Delete removes a project. It fails with ErrNotFound if id is unknown.
	Delete(ctx context.Context, id string) error
	// List returns summaries, most recently updated first.
	List(ctx context.Context) ([]Summary, error)
	// Close releases the backend's resources.
	Close() error
}

func encode(p timetable.Project) ([]byte, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return doc, nil
}

func decode(doc []byte) (timetable.Project, error) {
	var p timetable.Project
	if err := json.Unmarshal(doc, &p); err != nil {
		return timetable.Project{}, fmt.Errorf("decode project: %w", err)
	}
	return p, nil
}
