package fsops

import (
	"context"
	"log/slog"

	"lesiw.io/fsops/path"
)

// An Event reports that a filesystem is about to run an external command
// to carry out an operation that has no native call.
type Event struct {
	Op      Op
	Path    path.Path
	Command []string
}

// An EventSink receives events. Attempted must not block for long; it is
// called synchronously before the command runs.
type EventSink interface {
	Attempted(ctx context.Context, e Event)
}

// NopSink discards every event.
type NopSink struct{}

// Attempted does nothing.
func (NopSink) Attempted(context.Context, Event) {}

// LogSink writes events to a [slog.Logger] at info level.
// A nil Logger writes to [slog.Default].
type LogSink struct {
	Logger *slog.Logger
}

// Attempted logs e.
func (s LogSink) Attempted(ctx context.Context, e Event) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	l.LogAttrs(ctx, slog.LevelInfo, "running external command",
		slog.String("op", e.Op.String()),
		slog.String("path", e.Path.String()),
		slog.Any("command", e.Command),
	)
}
