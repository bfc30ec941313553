package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestErrorWithTracingAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Output: &buf})
	require.NoError(t, err)

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	logger.ErrorWithTracing(ctx, "Failed to submit", errors.New("boom"), logrus.Fields{"endpoint": "POST /api/contact"})

	line := decodeLine(t, &buf)
	assert.Equal(t, "Failed to submit", line["message"])
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "POST /api/contact", line["endpoint"])
	assert.Equal(t, span.SpanContext().TraceID().String(), line["trace_id"])
	assert.Contains(t, line, "timestamp")
}

func TestNoTraceIDsWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Output: &buf})
	require.NoError(t, err)

	logger.InfoWithTracing(context.Background(), "hello", nil)

	line := decodeLine(t, &buf)
	assert.NotContains(t, line, "trace_id")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)

	logger.InfoWithTracing(context.Background(), "dropped", nil)
	logger.DebugWithTracing(context.Background(), "dropped", nil)
	assert.Zero(t, buf.Len())

	logger.WarnWithTracing(context.Background(), "kept", nil)
	assert.NotZero(t, buf.Len())
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
