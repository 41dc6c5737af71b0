// Package logging configures the process-wide charmbracelet logger.
//
// The level comes from --log-level, falling back to the ASTEROIDS_LOG_LEVEL
// environment variable, then to info. While a full-screen TUI owns the
// terminal, logs go to a file instead of stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel is the environment variable consulted when no level flag is set.
const EnvLevel = "ASTEROIDS_LOG_LEVEL"

// New creates a timestamped logger writing to w.
func New(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// ResolveLevel picks the level from flag, then the environment, then info.
// An unparseable value is an error.
func ResolveLevel(flag string) (log.Level, error) {
	name := flag
	if name == "" {
		name = os.Getenv(EnvLevel)
	}
	if name == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

// Setup installs a default logger writing to w and returns it.
func Setup(w io.Writer, flag, prefix string) (*log.Logger, error) {
	level, err := ResolveLevel(flag)
	if err != nil {
		return nil, err
	}
	logger := New(w, level, prefix)
	log.SetDefault(logger)
	return logger, nil
}

// SetupFile installs a default logger appending to path, creating parent
// directories as needed. The returned closer releases the file.
func SetupFile(path, flag, prefix string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	logger, err := Setup(f, flag, prefix)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}
