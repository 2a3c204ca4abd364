package telemetry

import (
	"context"
	"testing"
)

func TestInitTracer(t *testing.T) {
	shutdown, err := InitTracer("0b6f3a1e-test-session")
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	if shutdown == nil {
		t.Fatal("shutdown func is nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}
