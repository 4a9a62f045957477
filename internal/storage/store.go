// Package storage persists click events.
package storage

import (
	"context"
	"errors"

	"github.com/sendurway/signalwise/internal/domain"
)

// ErrNotConfigured is returned by every operation of a store that was built
// without database credentials.
var ErrNotConfigured = errors.New("click store not configured: missing database credentials")

// ClickStore appends click events and reads back the newest ones.
type ClickStore interface {
	// Insert appends one event. It never updates an existing row.
	Insert(ctx context.Context, event domain.ClickEvent) error
	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]domain.ClickEvent, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

type unconfiguredStore struct{}

// NewUnconfiguredStore returns a store whose operations all fail with
// ErrNotConfigured. The service runs on it when credentials are missing so
// redirects keep working.
func NewUnconfiguredStore() ClickStore {
	return unconfiguredStore{}
}

func (unconfiguredStore) Insert(context.Context, domain.ClickEvent) error {
	return ErrNotConfigured
}

func (unconfiguredStore) Recent(context.Context, int) ([]domain.ClickEvent, error) {
	return nil, ErrNotConfigured
}

func (unconfiguredStore) Ping(context.Context) error {
	return ErrNotConfigured
}
