package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/warehouse/app"
)

func TestCommandTracingDecorator_H(t *testing.T) {
	t.Parallel()

	t.Run("successful command", func(t *testing.T) {
		t.Parallel()

		recorder, tp := newRecordingTracer()
		handler := app.NewTracedCommand[request](tp, &commandSuccessHandler{})

		err := handler.H(context.Background(), request{})
		assert.NoError(t, err)

		span := onlySpan(t, recorder)
		assert.Equal(t, codes.Unset, span.Status().Code)
	})

	t.Run("failed command", func(t *testing.T) {
		t.Parallel()

		recorder, tp := newRecordingTracer()
		handler := app.NewTracedCommand[request](tp, &commandFailureHandler{})

		err := handler.H(context.Background(), request{})
		assert.Error(t, err)

		span := onlySpan(t, recorder)
		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "some-error", span.Status().Description)
	})

	t.Run("span is passed on", func(t *testing.T) {
		t.Parallel()

		recorder, tp := newRecordingTracer()
		handler := app.NewTracedCommand[request](tp, app.CommandFunc[request](func(ctx context.Context, _ request) error {
			assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
			return nil
		}))

		err := handler.H(context.Background(), request{})
		assert.NoError(t, err)
		onlySpan(t, recorder)
	})
}

func TestQueryTracingDecorator_H(t *testing.T) {
	t.Parallel()

	t.Run("successful query", func(t *testing.T) {
		t.Parallel()

		recorder, tp := newRecordingTracer()
		handler := app.NewTracedQuery[request, response](tp, &querySuccessHandler{})

		res, err := handler.H(context.Background(), request{})
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Value)

		span := onlySpan(t, recorder)
		assert.Equal(t, codes.Unset, span.Status().Code)
	})

	t.Run("failed query", func(t *testing.T) {
		t.Parallel()

		recorder, tp := newRecordingTracer()
		handler := app.NewTracedQuery[request, response](tp, &queryFailureHandler{})

		_, err := handler.H(context.Background(), request{})
		assert.Error(t, err)

		span := onlySpan(t, recorder)
		assert.Equal(t, codes.Error, span.Status().Code)
	})
}

func newRecordingTracer() (*tracetest.SpanRecorder, trace.TracerProvider) { //nolint:ireturn
	recorder := tracetest.NewSpanRecorder()

	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

// onlySpan asserts that exactly one use case span has ended and returns it.
func onlySpan(t *testing.T, recorder *tracetest.SpanRecorder) sdktrace.ReadOnlySpan { //nolint:ireturn
	t.Helper()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "usecase", span.Name())
	assert.Equal(t, "warehouse.application", span.InstrumentationScope().Name)
	assert.Contains(t, span.Attributes(), attribute.String("command", "app_test.request"))

	return span
}
