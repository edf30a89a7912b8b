package store

import (
	"errors"

	"tasklog/internal/state"
)

// Error categories surfaced by the engine. Callers match with errors.Is;
// wrapped messages carry the specifics (which ID, which field).
var (
	// ErrInvalidInput covers empty or malformed tags, titles, IDs, and
	// note text.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTaskNotFound means the ID is absent from the scan window. A task
	// that exists on disk above the window gets this same error.
	ErrTaskNotFound = errors.New("task not found")
	// ErrLockTimeout means another process held the write lock past the
	// bounded wait.
	ErrLockTimeout = errors.New("timed out waiting for the log lock")
	// ErrNotInitialized means the log or counter state file is missing.
	ErrNotInitialized = errors.New("not initialized: run 'tasklog init' first")
	// ErrCounterStateCorrupt is the state package's corruption error,
	// re-exported so callers only need this package for matching.
	ErrCounterStateCorrupt = state.ErrCorrupt
)
