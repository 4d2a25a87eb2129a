package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a Logger writing to w. format is one of "json", "text" or
// "zerolog"; level is one of "debug", "info", "warn", "error".
func New(format, level string, w io.Writer) (Logger, error) {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	switch strings.ToLower(format) {
	case "", "json":
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel})
		return NewSlogLogger(slog.New(h)), nil
	case "text":
		h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel})
		return NewSlogLogger(slog.New(h)), nil
	case "zerolog":
		zl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q", level)
		}
		return NewZerologLogger(zerolog.New(w).Level(zl).With().Timestamp().Logger()), nil
	}

	return nil, fmt.Errorf("unknown log format %q", format)
}
