package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder 安装内存Span记录器作为全局Provider
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return recorder
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	// gRPC连接是惰性的,没有Collector也能初始化成功
	shutdown, err := InitTracer("bookcatalog-test", "localhost:4317")
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "bookcatalog", "Ping")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	_ = shutdown(context.Background())
}

func TestStartSpan_Child(t *testing.T) {
	recorder := useRecorder(t)

	ctx, root := StartSpan(context.Background(), "bookcatalog", "SearchBooks")
	_, child := StartSpan(ctx, "bookcatalog", "FindByAuthor")
	child.End()
	root.End()

	assert.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID())
	assert.NotEqual(t, root.SpanContext().SpanID(), child.SpanContext().SpanID())

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "FindByAuthor", ended[0].Name())
	assert.Equal(t, root.SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestEndSpan(t *testing.T) {
	recorder := useRecorder(t)

	_, ok := StartSpan(context.Background(), "bookcatalog", "ok")
	EndSpan(ok, nil)

	_, failed := StartSpan(context.Background(), "bookcatalog", "failed")
	EndSpan(failed, errors.New("storage unavailable"))

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, codes.Ok, ended[0].Status().Code)
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, "storage unavailable", ended[1].Status().Description)
	require.Len(t, ended[1].Events(), 1)
	assert.Equal(t, "exception", ended[1].Events()[0].Name)
}

func TestExtractIDs(t *testing.T) {
	useRecorder(t)

	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))

	ctx, span := StartSpan(context.Background(), "bookcatalog", "GetBook")
	defer span.End()

	assert.Len(t, ExtractTraceID(ctx), 32)
	assert.Len(t, ExtractSpanID(ctx), 16)
	assert.Equal(t, span.SpanContext().TraceID().String(), ExtractTraceID(ctx))
}
