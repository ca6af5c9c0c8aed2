package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetActor(ctx))
	assert.Empty(t, GetIdempotencyKey(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithActor(ctx, "picker-7")
	ctx = WithIdempotencyKey(ctx, "idem-9")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "picker-7", GetActor(ctx))
	assert.Equal(t, "idem-9", GetIdempotencyKey(ctx))
}

func TestContextLogger_EnrichesEntries(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	traceID, _ := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	spanID, _ := trace.SpanIDFromHex("0123456789abcdef")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	ctx = WithContext(ctx, base)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithActor(ctx, "picker-7")

	L(ctx).With(zap.String("product_id", "p")).Info("movement recorded")

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "picker-7", fields["actor"])
	assert.Equal(t, "p", fields["product_id"])
	assert.NotContains(t, fields, "idempotency_key")
	assert.Equal(t, traceID.String(), GetTraceID(ctx))
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := WithLogger(context.Background(), nil)
	assert.NotPanics(t, func() {
		cl.Debug("a")
		cl.Warn("b")
		cl.With(zap.Int("n", 1)).Error("c")
	})
	assert.NotNil(t, cl.Zap())
}
