// Package ports defines interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"time"

	"playr/internal/domain"
)

// AudioEngine is the interface for audio decode/mix engines.
// One stream is active at a time; each Load yields a handle that remains valid
// until Unload or Stop.
//
// Implementations must be thread-safe: commands and queries take only short
// engine-internal locks and never block the caller beyond that.
type AudioEngine interface {
	// Initialize sets up the audio engine.
	// device: audio device index (-1 for default)
	// frequency: sample rate in Hz (e.g. 44100)
	//
	// Initialization failure is fatal to the session: no playback is possible.
	Initialize(device int, frequency int) error

	// Shutdown releases all audio engine resources.
	Shutdown() error

	// IsInitialized returns true if the engine has been successfully initialized.
	IsInitialized() bool

	// Load opens and decodes an audio file, returning a handle to the stream.
	// Fails when the file is missing, corrupt or unsupported.
	Load(filePath string) (domain.StreamHandle, error)

	// Unload releases the decoder resources for a loaded stream.
	Unload(handle domain.StreamHandle) error

	// Play starts or resumes the stream at its current cursor.
	Play(handle domain.StreamHandle) error

	// Pause halts the stream without releasing the decoder.
	// The cursor is preserved and playback can resume with Play.
	Pause(handle domain.StreamHandle) error

	// Playing reports whether the stream is currently advancing.
	Playing(handle domain.StreamHandle) (bool, error)

	// HasEnded reports whether the stream reached end-of-media.
	// There is no push notification: callers must poll.
	HasEnded(handle domain.StreamHandle) (bool, error)

	// Seek moves the cursor to the given position within [0, Duration].
	Seek(handle domain.StreamHandle, position time.Duration) error

	// Position returns the live cursor position.
	Position(handle domain.StreamHandle) (time.Duration, error)

	// Duration returns the total length of the stream.
	Duration(handle domain.StreamHandle) (time.Duration, error)

	// SetVolume sets the stream gain from 0.0 (silent) to 1.0 (full).
	SetVolume(handle domain.StreamHandle, volume float64) error
}
