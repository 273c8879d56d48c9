package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// useCaseInstruments are shared by the command and the query decorators,
// so both report into the same metric series.
type useCaseInstruments struct {
	counter  metric.Int64Counter
	duration metric.Float64Histogram
}

func newUseCaseInstruments(meterProvider metric.MeterProvider) useCaseInstruments {
	meter := meterProvider.Meter(instrumentationName)

	// the errors are ignored: the noop implementations are returned in that case.
	counter, _ := meter.Int64Counter("usecases",
		metric.WithDescription("number of executed use cases"))
	duration, _ := meter.Float64Histogram("usecases_duration_seconds",
		metric.WithDescription("duration of executed use cases"))

	return useCaseInstruments{counter: counter, duration: duration}
}

func (i useCaseInstruments) record(ctx context.Context, cmdName string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	opt := metric.WithAttributes(
		attribute.String("command", cmdName),
		attribute.String("status", status),
	)

	i.counter.Add(ctx, 1, opt)
	i.duration.Record(ctx, time.Since(start).Seconds(), opt)
}

func NewMeteredCommand[C any](meterProvider metric.MeterProvider, cmd Command[C]) Command[C] {
	return &commandMeteringDecorator[C]{
		instruments: newUseCaseInstruments(meterProvider),
		base:        cmd,
	}
}

type commandMeteringDecorator[C any] struct {
	instruments useCaseInstruments
	base        Command[C]
}

func (d *commandMeteringDecorator[C]) H(ctx context.Context, cmd C) error {
	start := time.Now()

	err := d.base.H(ctx, cmd)
	d.instruments.record(ctx, commandName(cmd), start, err)

	return err //nolint:wrapcheck // decorate but not change anything
}

func NewMeteredQuery[Q any, Res any](meterProvider metric.MeterProvider, query Query[Q, Res]) Query[Q, Res] {
	return &queryMeteringDecorator[Q, Res]{
		instruments: newUseCaseInstruments(meterProvider),
		base:        query,
	}
}

type queryMeteringDecorator[Q any, Res any] struct {
	instruments useCaseInstruments
	base        Query[Q, Res]
}

func (d *queryMeteringDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	start := time.Now()

	result, err := d.base.H(ctx, query)
	d.instruments.record(ctx, commandName(query), start, err)

	return result, err //nolint:wrapcheck // decorate but not change anything
}
