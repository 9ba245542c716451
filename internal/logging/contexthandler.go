package logging

import (
	"context"
	"log/slog"
	"slices"
)

type contextKey string

const slogAttrs contextKey = "slogAttrs"

// ContextHandler adds the attributes stored in a context with WithAttrs to
// each record before passing it to the wrapped handler.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler wraps h.
func NewContextHandler(h slog.Handler) ContextHandler {
	return ContextHandler{Handler: h}
}

// Handle enriches the record with the context's attributes.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// WithAttrs returns a context carrying attr in addition to any attributes
// already stored.
func WithAttrs(ctx context.Context, attr ...slog.Attr) context.Context {
	existing, _ := ctx.Value(slogAttrs).([]slog.Attr)
	return context.WithValue(ctx, slogAttrs, slices.Concat(existing, attr))
}
