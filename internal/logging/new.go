package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats accepted by New.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a Logger writing to w in the given format ("text", "json" or
// "console") at the given level ("debug", "info", "warn", "error").
func New(w io.Writer, format, level string) (Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	switch strings.ToLower(format) {
	case FormatText, "":
		return newSlogWriter(w, false, lvl), nil
	case FormatJSON:
		return newSlogWriter(w, true, lvl), nil
	case FormatConsole:
		zl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("unknown log level %q", level)
		}
		return NewConsoleZerolog(w, zl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
