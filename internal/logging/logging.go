// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"portfolio/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a slog.Logger from cfg. When cfg.File is set, output goes to a
// size-rotated file and the returned closer must be closed on shutdown;
// otherwise records go to console (os.Stderr when nil) and the closer is a
// no-op. Standard output stays free for command results.
func New(cfg config.LoggingConfig, console io.Writer) (*slog.Logger, io.Closer, error) {
	if console == nil {
		console = os.Stderr
	}
	var (
		out    io.Writer = console
		closer io.Closer = nopCloser{}
	)

	if cfg.File != "" {
		w, err := NewRotatingWriter(cfg)
		if err != nil {
			return nil, nil, err
		}
		out, closer = w, w
	}

	return NewWithWriter(out, cfg), closer, nil
}

// NewWithWriter builds a logger writing to w
func NewWithWriter(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(NewRedactingHandler(handler))
}

// NewRotatingWriter opens a lumberjack writer for cfg.File
func NewRotatingWriter(cfg config.LoggingConfig) (*lumberjack.Logger, error) {
	if cfg.File == "" {
		return nil, fmt.Errorf("rotation file path must not be empty")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 5
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxFiles,
	}, nil
}

// ParseLevel maps a level name to slog.Level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
