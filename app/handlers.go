// Package app provides common decorators for the use cases of the warehouse.
//
// Every use case is either a Command, changing the state of an inventory,
// or a Query, only reading from it. Wrap them with NewInstrumentedCommand
// and NewInstrumentedQuery to get tracing, metrics and logging.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/warehouse/alog"
)

// instrumentationName is used for the tracer and the meter of all decorators.
const instrumentationName = "warehouse.application"

// Command produces side effects, e.g. mutate state.
type Command[C any] interface {
	H(ctx context.Context, cmd C) error
}

// Query does not produce side effects and returns data.
type Query[Q any, Res any] interface {
	H(ctx context.Context, query Q) (Res, error)
}

// CommandFunc allows the use of an ordinary function as a Command.
type CommandFunc[C any] func(ctx context.Context, cmd C) error

func (f CommandFunc[C]) H(ctx context.Context, cmd C) error {
	return f(ctx, cmd)
}

// QueryFunc allows the use of an ordinary function as a Query.
type QueryFunc[Q any, Res any] func(ctx context.Context, query Q) (Res, error)

func (f QueryFunc[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn // valid use of generics
	return f(ctx, query)
}

// NewInstrumentedCommand is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedCommand[C any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	cmd Command[C],
) Command[C] {
	return NewTracedCommand(traceProvider, NewMeteredCommand(meterProvider, NewLoggedCommand(logger, cmd)))
}

// NewInstrumentedQuery is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedQuery[Q any, Res any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	query Query[Q, Res],
) Query[Q, Res] {
	return NewTracedQuery(traceProvider, NewMeteredQuery(meterProvider, NewLoggedQuery(logger, query)))
}

// commandName extracts a printable name from cmd in the format of: packageName.structName.
// The name of the handler can not be used, as it is usually an anonymous CommandFunc.
// Type arguments are cut off, so all instances of a generic command share one name
// and the cardinality of the metrics stays low.
func commandName(cmd any) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", cmd), "*")

	if i := strings.Index(name, "["); i != -1 {
		name = name[:i]
	}

	return name
}
