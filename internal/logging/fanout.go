package logging

import (
	"context"
	"errors"
	"log/slog"
)

// Fanout sends each record to every handler that accepts its level. A failing
// handler does not stop delivery to the others.
type Fanout struct {
	handlers []slog.Handler
}

func NewFanout(handlers ...slog.Handler) *Fanout {
	return &Fanout{handlers: handlers}
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *Fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Fanout{handlers: mapHandlers(f.handlers, func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })}
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	return &Fanout{handlers: mapHandlers(f.handlers, func(h slog.Handler) slog.Handler { return h.WithGroup(name) })}
}

func mapHandlers(in []slog.Handler, fn func(slog.Handler) slog.Handler) []slog.Handler {
	out := make([]slog.Handler, len(in))
	for i, h := range in {
		out[i] = fn(h)
	}
	return out
}
