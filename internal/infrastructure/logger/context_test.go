package logger_test

import (
	"context"
	"testing"

	"github.com/sendurway/signalwise/internal/infrastructure/logger"
)

func TestWithContext_FromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	l := mustTestLogger(t)
	ctx := logger.WithContext(context.Background(), l)

	if got := logger.FromContext(ctx); got != l {
		t.Errorf("FromContext returned %v, want the stored logger", got)
	}
}

func TestFromContext_NoLogger_ReturnsSharedFallback(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())

	if a == nil {
		t.Fatal("FromContext on empty context returned nil")
	}
	if a != b {
		t.Error("FromContext returned different fallback instances, want one shared logger")
	}

	// Warn level: debug and info are filtered but must not panic.
	a.Debug("debug message")
	a.Info("info message")
	a.Warn("message with field", logger.String("key", "value"))
}

func TestWith_ReturnsDistinctLogger(t *testing.T) {
	t.Parallel()

	base := mustTestLogger(t)
	enriched := base.With(logger.String("request_id", "abc-123"))

	if enriched == base {
		t.Error("With() returned the base logger, want a new instance")
	}
}

func mustTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{
		Level:       "warn",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}

	return l
}
