package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	r := gin.New()
	r.Use(RequestID(), Tracing(TracingConfig{ServiceName: "stockledger", Enabled: true, TracerProvider: tp}), SpanEnricher())
	r.POST("/reservations/:id/release", func(c *gin.Context) {
		c.Set(ErrorCodeKey, "INVALID_STATE")
		c.Status(http.StatusUnprocessableEntity)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reservations/abc/release", nil)
	req.Header.Set(HeaderRequestID, "req-9")
	req.Header.Set(HeaderActor, "picker-3")
	req.Header.Set(HeaderIdempotencyKey, "rel-1")
	r.ServeHTTP(w, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]

	assert.Contains(t, span.Name(), "/reservations/:id/release")
	assert.Equal(t, codes.Error, span.Status().Code)

	attrs := attribute.NewSet(span.Attributes()...)
	for key, want := range map[attribute.Key]string{
		"request_id":      "req-9",
		"actor":           "picker-3",
		"idempotency_key": "rel-1",
		"error.code":      "INVALID_STATE",
	} {
		got, ok := attrs.Value(key)
		if assert.True(t, ok, key) {
			assert.Equal(t, want, got.AsString())
		}
	}
}

func TestTracing_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(Tracing(TracingConfig{Enabled: false}), SpanEnricher())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
