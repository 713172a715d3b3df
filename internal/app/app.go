// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"fmt"
	"log/slog"

	"playr/internal/adapter/audio/mock"
	"playr/internal/adapter/eventbus"
	"playr/internal/adapter/metadata/tags"
	"playr/internal/adapter/store/sqlite"
	"playr/internal/config"
	"playr/internal/logger"
	"playr/internal/ports"
	"playr/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger *slog.Logger

	// Infrastructure
	eventBus    ports.EventBus
	audioEngine ports.AudioEngine
	store       ports.LibraryStore
	extractor   ports.MetadataExtractor

	// Services
	playbackService *service.PlaybackService
	sessionService  *service.SessionService
	queueService    *service.QueueService
	libraryService  *service.LibraryService
}

// Config holds application configuration.
type Config struct {
	// DatabasePath is the SQLite database location
	DatabasePath string

	// AudioDevice is the audio output device (-1 for default)
	AudioDevice int

	// SampleRate is the audio sample rate
	SampleRate int

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// LogFormat is "text" or "json"
	LogFormat string

	// Engine allows injecting a pre-built audio engine; when nil the mock
	// engine is used. The real decoder lives outside this module.
	Engine ports.AudioEngine
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	fileCfg := config.Default()
	return Config{
		DatabasePath: fileCfg.Database.Path,
		AudioDevice:  fileCfg.Audio.Device,
		SampleRate:   fileCfg.Audio.SampleRate,
		LogLevel:     loggerCfg.Level,
		LogFormat:    loggerCfg.Format,
	}
}

// FromFile builds an application Config from a loaded config file.
func FromFile(fileCfg config.Config) Config {
	return Config{
		DatabasePath: fileCfg.Database.Path,
		AudioDevice:  fileCfg.Audio.Device,
		SampleRate:   fileCfg.Audio.SampleRate,
		LogLevel:     logger.ParseLevel(fileCfg.Log.Level),
		LogFormat:    fileCfg.Log.Format,
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(cfg Config) (*Application, error) {
	app := &Application{}

	// Step 1: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	app.logger.Info("initializing application",
		slog.String("database", cfg.DatabasePath))

	// Step 2: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus(
		app.logger.With(slog.String("component", "eventbus")))

	// Step 3: Create an audio engine
	if cfg.Engine != nil {
		app.audioEngine = cfg.Engine
	} else {
		app.audioEngine = mock.NewEngine()
	}
	if !app.audioEngine.IsInitialized() {
		if err := app.audioEngine.Initialize(cfg.AudioDevice, cfg.SampleRate); err != nil {
			// Engine initialization failure is fatal to the whole session.
			return nil, fmt.Errorf("failed to initialize audio engine: %w", err)
		}
	}

	// Step 4: Open the library store
	store, err := sqlite.Open(
		app.logger.With(slog.String("component", "store")),
		cfg.DatabasePath,
	)
	if err != nil {
		if shutdownErr := app.audioEngine.Shutdown(); shutdownErr != nil {
			app.logger.Warn("failed to shutdown audio engine", slog.Any("error", shutdownErr))
		}
		return nil, fmt.Errorf("failed to open library store: %w", err)
	}
	app.store = store

	// Step 5: Create the metadata extractor
	app.extractor = tags.NewExtractor()

	// Step 6: Create services (with dependency injection)
	app.playbackService = service.NewPlaybackService(
		app.logger.With(slog.String("service", "playback")),
		app.audioEngine,
		app.store,
		app.eventBus,
	)

	app.sessionService = service.NewSessionService(
		app.logger.With(slog.String("service", "session")),
		app.store,
		app.eventBus,
	)

	app.queueService = service.NewQueueService(
		app.logger.With(slog.String("service", "queue")),
		app.playbackService,
		app.sessionService,
		app.eventBus,
	)

	app.libraryService = service.NewLibraryService(
		app.logger.With(slog.String("service", "library")),
		app.store,
		app.extractor,
		app.eventBus,
	)

	// Step 7: Restore saved session preferences
	app.loadSavedState()

	return app, nil
}

// loadSavedState applies the persisted session preferences to the live
// services. Failures degrade to defaults; startup never blocks on them.
func (a *Application) loadSavedState() {
	state := a.sessionService.State()

	if err := a.playbackService.SetVolume(state.Volume); err != nil {
		a.logger.Warn("failed to restore volume", slog.Any("error", err))
	}

	a.logger.Debug("session state restored",
		slog.Int64("last_track_id", state.LastTrackID),
		slog.Float64("volume", state.Volume),
		slog.Bool("shuffle", state.Shuffle),
		slog.Bool("repeat", state.Repeat))
}

// Playback returns the playback service.
func (a *Application) Playback() *service.PlaybackService { return a.playbackService }

// Session returns the session service.
func (a *Application) Session() *service.SessionService { return a.sessionService }

// Queue returns the queue service.
func (a *Application) Queue() *service.QueueService { return a.queueService }

// Library returns the library service.
func (a *Application) Library() *service.LibraryService { return a.libraryService }

// EventBus returns the event bus.
func (a *Application) EventBus() ports.EventBus { return a.eventBus }

// Shutdown gracefully shuts down the application.
// This should be called via deferring in main.go.
func (a *Application) Shutdown() {
	a.logger.Info("shutting down application")

	// Checkpoint the playback cursor before the session row is written.
	if a.playbackService != nil {
		if err := a.playbackService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown playback service", slog.Any("error", err))
		}
	}

	if a.sessionService != nil {
		if err := a.sessionService.Save(); err != nil {
			a.logger.Warn("failed to save session state", slog.Any("error", err))
		}
	}

	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close library store", slog.Any("error", err))
		}
	}

	if a.audioEngine != nil {
		if err := a.audioEngine.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown audio engine", slog.Any("error", err))
		}
	}

	a.logger.Info("application shutdown complete")
}
