package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns an info-level text logger backed by a buffer and the buffer for assertions.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	return NewBufferLoggerAt(slog.LevelInfo)
}

// NewBufferLoggerAt is NewBufferLogger with an explicit minimum level.
func NewBufferLoggerAt(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))
	return logger, &buf
}
