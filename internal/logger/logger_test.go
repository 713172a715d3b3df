package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("Warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("ERROR"))

	// Unknown strings fall back to INFO
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("PLAYR_LOG_LEVEL", "")
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.Level)
	assert.Equal(t, "text", cfg.Format)

	t.Setenv("PLAYR_LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, DefaultConfig().Level)

	t.Setenv("PLAYR_LOG_LEVEL", "bogus")
	assert.Equal(t, slog.LevelInfo, DefaultConfig().Level)
}

func TestNewLogger(t *testing.T) {
	log := NewLogger(Config{Level: slog.LevelInfo, Format: "json"})
	assert.NotNil(t, log)

	log = NewLogger(Config{Level: slog.LevelDebug, Format: "text"})
	assert.NotNil(t, log)
}
