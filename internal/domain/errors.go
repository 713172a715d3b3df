// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrTrackNotFound is returned when a requested track cannot be found.
	ErrTrackNotFound = errors.New("track not found")

	// ErrPlaylistNotFound is returned when a requested playlist cannot be found.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrQueueEmpty is returned when navigation is attempted on an empty queue.
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrNoTrackLoaded is returned when an operation requires a loaded stream.
	ErrNoTrackLoaded = errors.New("no track loaded")

	// ErrTrackActive is returned when Play is called with a different track
	// while one is already loaded. Callers must Stop first.
	ErrTrackActive = errors.New("another track is loaded: stop before switching")

	// ErrInvalidStreamHandle is returned when an invalid stream handle is used.
	ErrInvalidStreamHandle = errors.New("invalid stream handle")

	// ErrInvalidPosition is returned when seeking to an invalid position.
	ErrInvalidPosition = errors.New("invalid playback position")

	// ErrInvalidFilePath is returned when a file path is empty or malformed.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrNotInitialized is returned when an operation is attempted on an uninitialized engine.
	ErrNotInitialized = errors.New("audio engine not initialized")

	// ErrAlreadyInitialized is returned when initializing an already initialized engine.
	ErrAlreadyInitialized = errors.New("audio engine already initialized")

	// ErrMetadataInvalid is returned when a file's tags cannot be parsed.
	// Not fatal: the caller falls back to placeholder fields.
	ErrMetadataInvalid = errors.New("metadata invalid or unreadable")
)

// LoadError reports that the engine could not open or decode a file.
// Recoverable: the session remains stopped and the caller may retry with a
// different track.
type LoadError struct {
	Path string // File that failed to load
	Err  error  // Underlying engine error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(path string, err error) *LoadError {
	return &LoadError{Path: path, Err: err}
}

// StorageError reports a failed row-store operation. Reads degrade to
// empty/default results where semantically safe; writes are abandoned and the
// in-memory state is the only record until the next successful save.
type StorageError struct {
	Op  string // Operation that failed (e.g. "add_track", "save_session")
	Err error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// EngineError wraps a low-level audio engine failure with operation context.
type EngineError struct {
	Op      string // Operation that failed (e.g. "play", "seek")
	Message string // Engine-supplied message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("audio engine %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(op, message string, err error) *EngineError {
	return &EngineError{Op: op, Message: message, Err: err}
}
