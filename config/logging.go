package config

import (
	"fmt"
	"io"
	"log/slog"
)

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("%w: unknown LOG_LEVEL %q", ErrInvalidConfig, l.Level)
	}

	return level, nil
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.level()

	if err != nil {
		level = slog.LevelInfo
	}

	options := &slog.HandlerOptions{Level: level}

	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}

	return slog.New(slog.NewTextHandler(w, options))
}
