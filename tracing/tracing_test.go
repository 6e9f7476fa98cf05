package tracing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/rise-and-shine/mediator/tracing"
)

func TestInitGlobalTracer_Disabled(t *testing.T) {
	shutdown, err := tracing.InitGlobalTracer(tracing.Config{Disable: true})
	require.NoError(t, err)
	assert.NoError(t, shutdown())
}

func TestGetStartingTraceID(t *testing.T) {
	t.Run("without span", func(t *testing.T) {
		id := tracing.GetStartingTraceID(t.Context())
		assert.True(t, strings.HasPrefix(id, "man-"))
		assert.NotEqual(t, id, tracing.GetStartingTraceID(t.Context()))
	})

	t.Run("with span", func(t *testing.T) {
		tp := sdktrace.NewTracerProvider()
		t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

		ctx, span := tp.Tracer("test").Start(t.Context(), "op")
		defer span.End()

		assert.Equal(t, span.SpanContext().TraceID().String(), tracing.GetStartingTraceID(ctx))
	})
}
