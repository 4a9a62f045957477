package handler_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sendurway/signalwise/internal/domain"
)

// memoryStore is an in-memory ClickStore. A non-nil err fails every call.
type memoryStore struct {
	mu     sync.Mutex
	events []domain.ClickEvent
	err    error
}

func (s *memoryStore) Insert(_ context.Context, event domain.ClickEvent) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *memoryStore) Recent(_ context.Context, limit int) ([]domain.ClickEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ClickEvent, 0, min(limit, len(s.events)))
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

func (s *memoryStore) Ping(context.Context) error { return s.err }

func (s *memoryStore) inserted() []domain.ClickEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ClickEvent(nil), s.events...)
}

func seedEvents(s *memoryStore, rows ...[2]string) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, row := range rows {
		s.events = append(s.events, domain.ClickEvent{
			ID:        "seed-" + strconv.Itoa(i),
			Carrier:   row[0],
			Source:    domain.Source(row[1]),
			ClickedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
}
