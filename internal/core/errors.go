package core

import (
	"errors"

	"github.com/JonMunkholm/runsheet/internal/store"
)

var (
	// ErrProjectNotFound is returned when no project has the requested id.
	ErrProjectNotFound = store.ErrNotFound
	// ErrProjectExists is returned when a new project id is already taken.
	ErrProjectExists = store.ErrExists
	// ErrInvalidProject is returned when a replacement document breaks the
	// project invariants. It wraps the individual ValidationErrors.
	ErrInvalidProject = errors.New("invalid project")
	// ErrFileTooLarge is returned when an import exceeds the configured size.
	ErrFileTooLarge = errors.New("file too large")
	// ErrEmptyFile is returned when an import body is empty.
	ErrEmptyFile = errors.New("empty file")
)
