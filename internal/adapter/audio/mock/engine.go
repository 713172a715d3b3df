// Package mock provides an in-memory implementation of the AudioEngine
// interface. It simulates decoding and playback without touching an audio
// device, and is the engine used in tests and headless runs.
package mock

import (
	"sync"
	"time"

	"playr/internal/domain"
	"playr/internal/ports"
)

// Engine is a mock implementation of the AudioEngine interface.
//
// Thread-safety: all operations are protected by sync.RWMutex.
type Engine struct {
	initialized bool
	device      int
	frequency   int

	streams    map[domain.StreamHandle]*mockStream
	nextHandle domain.StreamHandle
	mu         sync.RWMutex

	// Behavior knobs for error-path tests
	failInitialize bool
	failLoad       bool
	failPlay       bool
}

// mockStream is one loaded stream in the mock engine.
type mockStream struct {
	filePath string
	duration time.Duration
	position time.Duration
	volume   float64
	playing  bool
	ended    bool
}

// defaultDuration is the simulated length of every loaded file.
const defaultDuration = 3 * time.Minute

// NewEngine creates a new mock audio engine.
func NewEngine() *Engine {
	return &Engine{
		streams:    make(map[domain.StreamHandle]*mockStream),
		nextHandle: 1,
	}
}

// SetFailInitialize configures the mock to fail initialization.
func (m *Engine) SetFailInitialize(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failInitialize = fail
}

// SetFailLoad configures the mock to fail loading streams.
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the mock to fail starting playback.
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// Initialize initializes the mock audio engine.
func (m *Engine) Initialize(device int, frequency int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInitialize {
		return domain.NewEngineError("initialize", "mock initialization failed", nil)
	}

	if m.initialized {
		return domain.ErrAlreadyInitialized
	}

	m.initialized = true
	m.device = device
	m.frequency = frequency

	return nil
}

// Shutdown shuts down the mock audio engine.
func (m *Engine) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	m.initialized = false
	m.streams = make(map[domain.StreamHandle]*mockStream)

	return nil
}

// IsInitialized returns true if the engine is initialized.
func (m *Engine) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// Load opens a simulated stream and returns a handle.
func (m *Engine) Load(filePath string) (domain.StreamHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.InvalidStreamHandle, domain.ErrNotInitialized
	}

	if m.failLoad {
		return domain.InvalidStreamHandle, domain.NewEngineError("load", "mock load failed", nil)
	}

	if filePath == "" {
		return domain.InvalidStreamHandle, domain.ErrInvalidFilePath
	}

	handle := m.nextHandle
	m.nextHandle++

	m.streams[handle] = &mockStream{
		filePath: filePath,
		duration: defaultDuration,
		volume:   1.0,
	}

	return handle, nil
}

// Unload releases a previously loaded stream.
func (m *Engine) Unload(handle domain.StreamHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	if _, exists := m.streams[handle]; !exists {
		return domain.ErrInvalidStreamHandle
	}

	delete(m.streams, handle)
	return nil
}

// Play starts or resumes the stream.
func (m *Engine) Play(handle domain.StreamHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	if m.failPlay {
		return domain.NewEngineError("play", "mock play failed", nil)
	}

	stream, exists := m.streams[handle]
	if !exists {
		return domain.ErrInvalidStreamHandle
	}

	stream.playing = true
	stream.ended = false
	return nil
}

// Pause halts the stream, preserving the cursor.
func (m *Engine) Pause(handle domain.StreamHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	stream, exists := m.streams[handle]
	if !exists {
		return domain.ErrInvalidStreamHandle
	}

	stream.playing = false
	return nil
}

// Playing reports whether the stream is advancing.
func (m *Engine) Playing(handle domain.StreamHandle) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return false, domain.ErrNotInitialized
	}

	stream, exists := m.streams[handle]
	if !exists {
		return false, domain.ErrInvalidStreamHandle
	}

	return stream.playing, nil
}

// HasEnded reports whether the stream reached end-of-media.
func (m *Engine) HasEnded(handle domain.StreamHandle) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return false, domain.ErrNotInitialized
	}

	stream, exists := m.streams[handle]
	if !exists {
		return false, domain.ErrInvalidStreamHandle
	}

	return stream.ended, nil
}

// Seek sets the playback position.
func (m *Engine) Seek(handle domain.StreamHandle, position time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	stream, exists := m.streams[handle]
	if !exists {
		return domain.ErrInvalidStreamHandle
	}

	if position < 0 || position > stream.duration {
		return domain.ErrInvalidPosition
	}

	stream.position = position
	return nil
}

// Position returns the current playback position.
func (m *Engine) Position(handle domain.StreamHandle) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return 0, domain.ErrNotInitialized
	}

	stream, exists := m.streams[handle]
	if !exists {
		return 0, domain.ErrInvalidStreamHandle
	}

	return stream.position, nil
}

// Duration returns the total stream duration.
func (m *Engine) Duration(handle domain.StreamHandle) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return 0, domain.ErrNotInitialized
	}

	stream, exists := m.streams[handle]
	if !exists {
		return 0, domain.ErrInvalidStreamHandle
	}

	return stream.duration, nil
}

// SetVolume sets the stream gain.
func (m *Engine) SetVolume(handle domain.StreamHandle, volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	stream, exists := m.streams[handle]
	if !exists {
		return domain.ErrInvalidStreamHandle
	}

	if volume < 0.0 || volume > 1.0 {
		return domain.NewEngineError("set_volume", "volume out of range", nil)
	}

	stream.volume = volume
	return nil
}

// Volume returns the stream gain (for tests).
func (m *Engine) Volume(handle domain.StreamHandle) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stream, exists := m.streams[handle]
	if !exists {
		return 0, domain.ErrInvalidStreamHandle
	}
	return stream.volume, nil
}

// SetStreamDuration overrides the simulated duration of a loaded stream (for tests).
func (m *Engine) SetStreamDuration(handle domain.StreamHandle, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stream, exists := m.streams[handle]
	if !exists {
		return domain.ErrInvalidStreamHandle
	}
	stream.duration = d
	return nil
}

// SimulateProgress advances a playing stream's cursor (for tests).
// Reaching the end marks the stream ended and stops it.
func (m *Engine) SimulateProgress(handle domain.StreamHandle, delta time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stream, exists := m.streams[handle]
	if !exists {
		return domain.ErrInvalidStreamHandle
	}

	if !stream.playing {
		return domain.NewEngineError("simulate", "stream is not playing", nil)
	}

	stream.position += delta
	if stream.position >= stream.duration {
		stream.position = stream.duration
		stream.playing = false
		stream.ended = true
	}

	return nil
}

// FinishStream marks a stream as naturally completed (for tests).
func (m *Engine) FinishStream(handle domain.StreamHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stream, exists := m.streams[handle]
	if !exists {
		return domain.ErrInvalidStreamHandle
	}

	stream.position = stream.duration
	stream.playing = false
	stream.ended = true
	return nil
}

// LoadedStreams returns the number of currently loaded streams (for tests).
func (m *Engine) LoadedStreams() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.streams)
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
