// Package logging builds the command's logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the logger
type Options struct {
	// Level sets the minimum level to log
	Level slog.Level
	// AddSource adds source code information to log messages
	AddSource bool
	// Output sets the output destination (defaults to os.Stderr)
	Output io.Writer
	// JSON enables JSON output format
	JSON bool
}

// NewLogger creates a new logger with the given options
func NewLogger(opts *Options) *slog.Logger {
	if opts == nil {
		opts = &Options{Level: slog.LevelInfo}
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource,
	}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(handler)
}

// ParseLevel parses a level name such as "debug" or "warn+2".
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("bad log level %q: %w", s, err)
	}
	return l, nil
}

// ParseFormat reports whether format selects JSON output.
// Valid formats are "text" and "json"; the empty string is text.
func ParseFormat(format string) (json bool, err error) {
	switch strings.ToLower(format) {
	case "", "text":
		return false, nil
	case "json":
		return true, nil
	}
	return false, fmt.Errorf("bad log format %q", format)
}
