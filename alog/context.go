package alog

import (
	"context"
	"log/slog"
)

// ctxKey is the type used by all keys alog puts in a context.
type ctxKey string

const ctxAttr ctxKey = "alog.attr"

// AddAttr adds a single attribute to ctx. All attributes in ctx are logged.
func AddAttr(ctx context.Context, attr slog.Attr) context.Context {
	return AddAttrs(ctx, attr)
}

// AddAttrs adds multiple attributes to ctx. All attributes in ctx are logged.
func AddAttrs(ctx context.Context, newAttrs ...slog.Attr) context.Context {
	attrs := FromContext(ctx)

	combined := make([]slog.Attr, 0, len(attrs)+len(newAttrs))
	combined = append(combined, attrs...)
	combined = append(combined, newAttrs...)

	return context.WithValue(ctx, ctxAttr, combined)
}

// ClearAttrs removes all attributes from ctx.
func ClearAttrs(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxAttr, []slog.Attr{})
}

// FromContext returns all attributes added to ctx.
func FromContext(ctx context.Context) []slog.Attr {
	if attrs, ok := ctx.Value(ctxAttr).([]slog.Attr); ok {
		return attrs
	}

	return []slog.Attr{}
}
