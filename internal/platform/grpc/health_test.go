package grpc

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	gogrpc "google.golang.org/grpc"
)

func TestWaitForAddrServing(t *testing.T) {
	t.Parallel()

	server := startHealthServer(t)
	server.SetServing(true)

	if err := WaitForAddr(context.Background(), server.Addr(), 2*time.Second, nil); err != nil {
		t.Fatalf("WaitForAddr() error = %v", err)
	}
}

func TestWaitForHealthTransitionsToServing(t *testing.T) {
	t.Parallel()

	server := startHealthServer(t)
	conn := dialHealthServer(t, server.Addr())

	go func() {
		time.Sleep(300 * time.Millisecond)
		server.SetServing(true)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := WaitForHealth(ctx, conn, "", nil); err != nil {
		t.Fatalf("WaitForHealth() error = %v", err)
	}
}

func TestWaitForHealthRespectsContext(t *testing.T) {
	t.Parallel()

	server := startHealthServer(t)
	conn := dialHealthServer(t, server.Addr())

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if err := WaitForHealth(ctx, conn, "", nil); err == nil {
		t.Fatal("expected context error, got nil")
	}
}

func TestWaitForHealthRejectsNilConn(t *testing.T) {
	t.Parallel()

	if err := WaitForHealth(context.Background(), nil, "", nil); err == nil {
		t.Fatal("expected nil connection error")
	}
}

func TestListenHealthRejectsBlankAddress(t *testing.T) {
	t.Parallel()

	if _, err := ListenHealth(" "); err == nil {
		t.Fatal("expected blank address error")
	}
}

func startHealthServer(t *testing.T) *HealthServer {
	t.Helper()

	server, err := ListenHealth("127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenHealth() error = %v", err)
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()
	t.Cleanup(func() {
		server.Stop()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
		}
	})
	return server
}

func dialHealthServer(t *testing.T, addr string) *gogrpc.ClientConn {
	t.Helper()

	conn, err := gogrpc.NewClient(addr, DefaultClientDialOptions()...)
	if err != nil {
		t.Fatalf("dial health server: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// Mutates the global tracer provider and propagator, so it does not run in
// parallel with the tests above.
func TestHealthCheckIsTraced(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prevProvider, prevPropagator := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})

	server, err := ListenHealth("127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenHealth() error = %v", err)
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve()
	}()
	server.SetServing(true)

	if err := WaitForAddr(context.Background(), server.Addr(), 2*time.Second, nil); err != nil {
		t.Fatalf("WaitForAddr() error = %v", err)
	}
	server.Stop()
	<-serveErr

	var client, srv sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		if span.Name() != "grpc.health.v1.Health/Check" {
			continue
		}
		switch span.SpanKind() {
		case trace.SpanKindClient:
			client = span
		case trace.SpanKindServer:
			srv = span
		}
	}
	if client == nil || srv == nil {
		t.Fatalf("want client and server Check spans, got client=%v server=%v", client != nil, srv != nil)
	}
	if srv.Parent().SpanID() != client.SpanContext().SpanID() {
		t.Fatalf("server parent = %s, want client span %s", srv.Parent().SpanID(), client.SpanContext().SpanID())
	}
}
