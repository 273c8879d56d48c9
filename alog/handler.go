package alog

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// LoggerOpt allows to initialise a logger with custom options.
type LoggerOpt func(logger *fanoutHandler)

// WithHandler adds a slog.Handler to be logged to.
// You can set as many as you want.
func WithHandler(h slog.Handler) LoggerOpt {
	return func(l *fanoutHandler) {
		l.handlers = append(l.handlers, h)
	}
}

// WithLevel initialises the logger with a starting level.
func WithLevel(level slog.Level) LoggerOpt {
	return func(l *fanoutHandler) {
		l.level.Set(level)
	}
}

// New returns a logger ready for production.
//
// If no options are given it creates a default handler, logging JSON to Stderr.
// Otherwise, use WithHandler to set your own handlers.
func New(opts ...LoggerOpt) *slog.Logger {
	return slog.New(newFanoutHandler(opts...))
}

// NewText returns a logger writing human-readable lines to Stderr,
// for local usage e.g. of the CLI.
func NewText(level slog.Level) *slog.Logger {
	return New(
		WithLevel(level),
		WithHandler(slog.NewTextHandler(os.Stderr, getDebugHandlerOptions())),
	)
}

func newFanoutHandler(opts ...LoggerOpt) *fanoutHandler {
	logger := &fanoutHandler{
		handlers: []slog.Handler{},
		level:    &slog.LevelVar{},
	}

	for _, opt := range opts {
		opt(logger)
	}

	hasCustomHandlers := len(logger.handlers) != 0
	if !hasCustomHandlers {
		logger.handlers = []slog.Handler{slog.NewJSONHandler(os.Stderr, getDefaultHandlerOptions())}
	}

	return logger
}

var _ slog.Handler = (*fanoutHandler)(nil)

// fanoutHandler calls all handlers with the same record.
// It enriches every record with the trace and span IDs of the active span
// and the attributes stored in the context, see AddAttrs.
type fanoutHandler struct {
	// level is the Level for all handlers.
	// The level of individual handlers set via WithHandler is ignored.
	level *slog.LevelVar

	handlers []slog.Handler
}

func (l *fanoutHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= l.level.Level()
}

func (l *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	record = addTraceAndSpanIDsToLogs(trace.SpanFromContext(ctx), record)

	if attrs := FromContext(ctx); len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}

	var retErr error

	for _, h := range l.handlers {
		err := h.Handle(ctx, record.Clone())
		retErr = errors.Join(retErr, err)
	}

	return retErr
}

func (l *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}

	return &fanoutHandler{handlers: handlers, level: l.level}
}

func (l *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithGroup(name)
	}

	return &fanoutHandler{handlers: handlers, level: l.level}
}

func addTraceAndSpanIDsToLogs(span trace.Span, record slog.Record) slog.Record {
	sCtx := span.SpanContext()
	attrs := make([]slog.Attr, 0)

	if sCtx.HasTraceID() {
		attrs = append(attrs,
			slog.Attr{Key: "traceID", Value: slog.StringValue(sCtx.TraceID().String())},
		)
	}

	if sCtx.HasSpanID() {
		attrs = append(attrs,
			slog.Attr{Key: "spanID", Value: slog.StringValue(sCtx.SpanID().String())},
		)
	}

	if len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}

	return record
}

func getDefaultHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug, // the level of fanoutHandler is used for all handlers.
	}
}

// getDebugHandlerOptions is to keep the log output more readable, by removing not essential keys.
func getDebugHandlerOptions() *slog.HandlerOptions {
	opt := getDefaultHandlerOptions()
	opt.AddSource = false

	return opt
}
