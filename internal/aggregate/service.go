package aggregate

import (
	"context"
	"fmt"

	infralogger "github.com/sendurway/signalwise/internal/infrastructure/logger"
	"github.com/sendurway/signalwise/internal/metrics"
	"github.com/sendurway/signalwise/internal/storage"
)

// Dashboard window defaults.
const (
	DefaultWindow    = 500
	DefaultTableRows = 50
	MaxWindow        = 1000
)

// Cache stores computed summaries. JSONCache in internal/cache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

// Service reads recent clicks and summarizes them.
type Service struct {
	store     storage.ClickStore
	cache     Cache
	log       infralogger.Logger
	metrics   *metrics.Metrics
	tableRows int
}

// NewService creates a Service. cache may be nil.
func NewService(
	store storage.ClickStore,
	cache Cache,
	log infralogger.Logger,
	m *metrics.Metrics,
	tableRows int,
) *Service {
	if tableRows <= 0 {
		tableRows = DefaultTableRows
	}
	return &Service{
		store:     store,
		cache:     cache,
		log:       log,
		metrics:   m,
		tableRows: tableRows,
	}
}

// ClampWindow bounds a requested window to [1, MaxWindow]. Non-positive
// values select DefaultWindow.
func ClampWindow(limit int) int {
	if limit <= 0 {
		return DefaultWindow
	}
	return min(limit, MaxWindow)
}

// Summarize returns the summary of the newest limit clicks. A failed read is
// logged and yields an empty summary with StoreAvailable unset.
func (s *Service) Summarize(ctx context.Context, limit int) Summary {
	limit = ClampWindow(limit)
	key := fmt.Sprintf("summary:%d:%d", limit, s.tableRows)

	if summary, ok := s.cached(ctx, key); ok {
		return summary
	}

	events, err := s.store.Recent(ctx, limit)
	if err != nil {
		s.log.Error("Failed to read recent clicks",
			infralogger.Int("limit", limit),
			infralogger.Error(err),
		)
		summary := Summarize(nil, 0)
		summary.StoreAvailable = false
		return summary
	}

	summary := Summarize(events, s.tableRows)
	s.remember(ctx, key, summary)

	return summary
}

func (s *Service) cached(ctx context.Context, key string) (Summary, bool) {
	if s.cache == nil {
		return Summary{}, false
	}

	var summary Summary
	hit, err := s.cache.Get(ctx, key, &summary)
	switch {
	case err != nil:
		s.metrics.RecordCache(metrics.CacheError)
		s.log.Warn("Dashboard cache read failed, bypassing",
			infralogger.String("key", key),
			infralogger.Error(err),
		)
		return Summary{}, false
	case !hit:
		s.metrics.RecordCache(metrics.CacheMiss)
		return Summary{}, false
	default:
		s.metrics.RecordCache(metrics.CacheHit)
		return summary, true
	}
}

func (s *Service) remember(ctx context.Context, key string, summary Summary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, summary); err != nil {
		s.log.Warn("Dashboard cache write failed",
			infralogger.String("key", key),
			infralogger.Error(err),
		)
	}
}
