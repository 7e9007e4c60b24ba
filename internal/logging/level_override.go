package logging

import (
	"context"
	"log/slog"
)

// levelFloorHandler drops records below floor before they reach next. It can
// only make a logger quieter: next still applies its own level.
type levelFloorHandler struct {
	next  slog.Handler
	floor slog.Level
}

func (h *levelFloorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.floor && h.next.Enabled(ctx, level)
}

func (h *levelFloorHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level < h.floor {
		return nil
	}
	return h.next.Handle(ctx, record)
}

func (h *levelFloorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelFloorHandler{next: h.next.WithAttrs(attrs), floor: h.floor}
}

func (h *levelFloorHandler) WithGroup(name string) slog.Handler {
	return &levelFloorHandler{next: h.next.WithGroup(name), floor: h.floor}
}

// WithLevelOverride returns a logger that drops records below level while
// keeping the attributes and output of logger. Used by the CLI --quiet flag.
func WithLevelOverride(logger *slog.Logger, level slog.Level) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	next := logger.Handler()
	if floor, ok := next.(*levelFloorHandler); ok {
		next = floor.next
	}
	return slog.New(&levelFloorHandler{next: next, floor: level})
}
