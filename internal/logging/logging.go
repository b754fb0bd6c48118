// Package logging builds the zerolog loggers used across matchmaker.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DebugLogPath is where the editor writes its log when --debug is set.
const DebugLogPath = "matchmaker-debug.log"

// Options selects the level, format and destination of a logger.
type Options struct {
	Level  string    // "debug", "info", "warn", "error", "disabled"
	Format string    // FormatConsole or FormatJSON
	Out    io.Writer // defaults to os.Stderr
}

// New returns a logger writing to opts.Out.
func New(opts Options) (zerolog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case FormatConsole, "":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", opts.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// ParseLevel accepts the zerolog level names. An empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Component tags every entry of l with the emitting package.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// OpenFile creates (or truncates) path and returns a JSON debug logger on it.
// The caller closes the returned file.
func OpenFile(path string) (zerolog.Logger, *os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating debug log: %w", err)
	}
	l := zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return l, f, nil
}
