package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kmswanson/greenwood/internal/config"
)

// Setup configures the global slog logger. In development, text goes to
// stderr so it does not interleave with game output. Otherwise structured
// JSON lines are appended to the transcript log file.
func Setup(cfg *config.Config) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "development" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		handler = slog.NewJSONHandler(f, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// WithSessionID adds the session ID to logger context.
func WithSessionID(logger *slog.Logger, sessionID string) *slog.Logger {
	return logger.With("session_id", sessionID)
}
