package goat

import (
	"io"
	"log/slog"
)

// discardLogger is the *slog.Logger every test's Process is built with:
// tests want NewProcess's side effects, not its diagnostics on stderr.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
