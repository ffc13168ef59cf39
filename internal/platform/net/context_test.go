package net_test

import (
	"context"
	"testing"

	"logzq/internal/platform/logger"
	pnet "logzq/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets chi and logger ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123")

		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := logger.RequestID(ctx); got != "req-123" {
			t.Fatalf("logger.RequestID got %q want %q", got, "req-123")
		}
	})

	t.Run("falls back to the logger id", func(t *testing.T) {
		ctx := logger.WithRequest(base, "from-logger")
		if got := pnet.RequestID(ctx); got != "from-logger" {
			t.Fatalf("RequestID got %q want %q", got, "from-logger")
		}
	})

	t.Run("empty id returns same ctx", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "")
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when id empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
	})
}

func TestPrincipal(t *testing.T) {
	ctx := pnet.WithPrincipal(context.Background(), "api-key")
	if got := pnet.Principal(ctx); got != "api-key" {
		t.Fatalf("Principal got %q", got)
	}
	if got := pnet.Principal(context.Background()); got != "" {
		t.Fatalf("Principal on bare ctx got %q", got)
	}
}
