package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		"Operation":    "ReserveStock",
		"warehouse-id": "WH-A",
		"product_id":   "p-1",
		"empty":        "",
		"!!":           "dropped",
	})
	assert.Equal(t, []string{"operation", "ReserveStock", "warehouse_id", "WH-A"}, pairs)

	long := strings.Repeat("x", MaxLabelValueLength+20)
	pairs = sanitizeLabels(map[string]string{"route": long})
	assert.Len(t, pairs[1], MaxLabelValueLength)

	assert.Nil(t, sanitizeLabels(nil))
}

func TestWithProfilingLabels(t *testing.T) {
	var route, op string
	var hasRoute bool
	WithProfilingLabels(context.Background(), HTTPRequestLabels("/api/v1/stock/:id", "GET"), func(ctx context.Context) {
		route, hasRoute = pprof.Label(ctx, ProfilingLabelRoute)
		op, _ = pprof.Label(ctx, ProfilingLabelMethod)
	})
	assert.True(t, hasRoute)
	assert.Equal(t, "/api/v1/stock/:id", route)
	assert.Equal(t, "GET", op)

	called := false
	WithProfilingLabels(context.Background(), nil, func(ctx context.Context) {
		called = true
		_, ok := pprof.Label(ctx, ProfilingLabelRoute)
		assert.False(t, ok)
	})
	assert.True(t, called)
}

func TestOperationLabels(t *testing.T) {
	labels := OperationLabels("TransferStock", map[string]string{ProfilingLabelWarehouse: "WH-B"})
	assert.Equal(t, "TransferStock", labels[ProfilingLabelOperation])
	assert.Equal(t, "WH-B", labels[ProfilingLabelWarehouse])

	assert.Empty(t, HTTPRequestLabels("", ""))
}
