// Package logx provides the application logger. The TUI owns the
// terminal, so log output goes to a file under the repository's git dir.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Discard returns a logger that drops everything, for tests and for
// callers without a repository.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Open creates a JSON logger writing to <gitDir>/histui/histui.log. The
// returned closer must be closed when the program exits.
func Open(gitDir string) (*slog.Logger, io.Closer, error) {
	dir := filepath.Join(gitDir, "histui")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "histui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, f, nil
}
