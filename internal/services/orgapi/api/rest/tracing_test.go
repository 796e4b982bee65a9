package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

const (
	callerTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	callerSpanID  = "00f067aa0ba902b7"
)

func useTraceContext(t *testing.T) {
	t.Helper()
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })
}

func recordingProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return provider, recorder
}

func TestServerSpanContinuesCallerTrace(t *testing.T) {
	useTraceContext(t)
	provider, recorder := recordingProvider(t)
	h := newTestHandler(t, Options{TracerProvider: provider})

	req := httptest.NewRequest(http.MethodGet, "/api/0/organizations/acme/", nil)
	req.Header.Set("Authorization", "Bearer user-1")
	req.Header.Set("traceparent", "00-"+callerTraceID+"-"+callerSpanID+"-01")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.Equal(t, callerTraceID, span.SpanContext().TraceID().String())
	assert.Equal(t, callerSpanID, span.Parent().SpanID().String())
	assert.True(t, span.Parent().IsRemote())
	assert.Contains(t, span.Name(), "orgapi GET /api/0/organizations/{org}")
	assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", http.StatusOK))
}

func TestServerSpanWithoutCallerStartsRoot(t *testing.T) {
	useTraceContext(t)
	provider, recorder := recordingProvider(t)
	h := newTestHandler(t, Options{TracerProvider: provider})

	rr := do(t, h, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.False(t, spans[0].Parent().IsValid())
	assert.Equal(t, "orgapi GET /healthz", spans[0].Name())
}

func TestServerSpanMarksServerErrors(t *testing.T) {
	provider, recorder := recordingProvider(t)
	h := NewHandler(failingStore{}, Options{DefaultUser: "user-1", TracerProvider: provider})

	rr := do(t, h, http.MethodGet, "/api/0/organizations/acme/", "", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
