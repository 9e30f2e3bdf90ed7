// Package logging sets up the application logger. The TUI owns the
// terminal, so log output always goes to a rotating file, never stdout.
package logging

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"bagrec/internal/config"
)

const defaultFile = "bagrec.log"

// New builds a slog.Logger writing to the configured rotating file.
func New(cfg config.LogSettings) *slog.Logger {
	file := cfg.File
	if file == "" {
		file = defaultFile
	}
	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return slog.New(slog.NewTextHandler(w, nil))
}
