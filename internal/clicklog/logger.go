// Package clicklog records outbound clicks on a best-effort basis. A click is
// written at most once, within a fixed latency budget, and a failed write never
// reaches the caller as an error.
package clicklog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sendurway/signalwise/internal/domain"
	infralogger "github.com/sendurway/signalwise/internal/infrastructure/logger"
	"github.com/sendurway/signalwise/internal/metrics"
	"github.com/sendurway/signalwise/internal/storage"
)

// DefaultTimeout is the latency budget for one insert.
const DefaultTimeout = 800 * time.Millisecond

// ErrTimeout is the cause reported when the store does not answer in time.
var ErrTimeout = errors.New("click log timed out")

// Outcome describes one logging attempt. Cause is empty on success.
type Outcome struct {
	OK       bool          `json:"ok"`
	Cause    string        `json:"cause,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Logger appends click events to a ClickStore.
type Logger struct {
	store   storage.ClickStore
	log     infralogger.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	now     func() time.Time
}

// New creates a Logger. A non-positive timeout falls back to DefaultTimeout.
func New(store storage.ClickStore, log infralogger.Logger, m *metrics.Metrics, timeout time.Duration) *Logger {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Logger{
		store:   store,
		log:     log,
		metrics: m,
		timeout: timeout,
		now:     time.Now,
	}
}

// NewEvent normalizes request values into an event with a fresh id and the
// current time.
func (l *Logger) NewEvent(p domain.ClickParams) domain.ClickEvent {
	return domain.NewClickEvent(uuid.NewString(), p, l.now())
}

// Log inserts event and waits for the result or the timeout, whichever comes
// first. Cancellation of ctx does not abort the insert; only the budget does.
func (l *Logger) Log(ctx context.Context, event domain.ClickEvent) Outcome {
	start := l.now()

	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	// Buffered so the insert goroutine can always deliver and exit.
	result := make(chan error, 1)
	go func() {
		result <- l.store.Insert(insertCtx, event)
	}()

	var err error
	select {
	case err = <-result:
	case <-insertCtx.Done():
		select {
		case err = <-result:
		default:
			err = ErrTimeout
		}
	}

	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		err = ErrTimeout
	}

	elapsed := l.now().Sub(start)
	if err != nil {
		l.fail(ctx, event, err, elapsed)
		return Outcome{Cause: err.Error(), Duration: elapsed}
	}

	l.metrics.RecordClickLog(metrics.OutcomeOK, elapsed)
	l.logger(ctx).Debug("Click logged",
		infralogger.String("click_id", event.ID),
		infralogger.String("carrier", event.Carrier),
		infralogger.Duration("duration", elapsed),
	)

	return Outcome{OK: true, Duration: elapsed}
}

// Skip records that a click was deliberately not logged.
func (l *Logger) Skip(ctx context.Context, event domain.ClickEvent, reason string) Outcome {
	l.metrics.RecordClickLog(metrics.OutcomeSkipped, 0)
	l.logger(ctx).Debug("Click not logged",
		infralogger.String("carrier", event.Carrier),
		infralogger.String("reason", reason),
	)
	return Outcome{Cause: reason}
}

func (l *Logger) fail(ctx context.Context, event domain.ClickEvent, err error, elapsed time.Duration) {
	l.metrics.RecordClickLog(metrics.OutcomeFailed, elapsed)
	l.logger(ctx).Error("Failed to log click",
		infralogger.String("click_id", event.ID),
		infralogger.String("carrier", event.Carrier),
		infralogger.String("source", event.Source.Bucket()),
		infralogger.Duration("duration", elapsed),
		infralogger.Error(err),
	)
}

// logger prefers the request-scoped logger carried in ctx.
func (l *Logger) logger(ctx context.Context) infralogger.Logger {
	if scoped, ok := infralogger.FromContextOK(ctx); ok {
		return scoped
	}
	return l.log
}
