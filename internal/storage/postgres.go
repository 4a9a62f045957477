package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sendurway/signalwise/internal/domain"
)

const insertClickSQL = `INSERT INTO clicks (id, carrier, home_zip, data_tier, priority, source,
	current_carrier, current_bill, user_agent, clicked_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const recentClicksSQL = `SELECT id, carrier, home_zip, data_tier, priority, source,
	current_carrier, current_bill, user_agent, clicked_at
FROM clicks
ORDER BY clicked_at DESC, id DESC
LIMIT $1`

// PostgresStore is a ClickStore backed by the clicks table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgresStore on an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert writes one row. Empty optional strings are stored as NULL.
func (s *PostgresStore) Insert(ctx context.Context, event domain.ClickEvent) error {
	var bill any
	if event.CurrentBill != nil {
		bill = *event.CurrentBill
	}

	_, err := s.db.ExecContext(ctx, insertClickSQL,
		event.ID,
		event.Carrier,
		nullString(event.HomeZip),
		nullString(event.DataTier),
		nullString(event.Priority),
		nullString(string(event.Source)),
		nullString(event.CurrentCarrier),
		bill,
		nullString(event.UserAgent),
		event.ClickedAt,
	)
	if err != nil {
		return fmt.Errorf("insert click: %w", err)
	}

	return nil
}

// Recent returns up to limit events ordered by clicked_at, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]domain.ClickEvent, error) {
	rows, err := s.db.QueryContext(ctx, recentClicksSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent clicks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]domain.ClickEvent, 0, limit)
	for rows.Next() {
		event, scanErr := scanClick(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent clicks: %w", err)
	}

	return events, nil
}

// Ping verifies the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func scanClick(rows *sql.Rows) (domain.ClickEvent, error) {
	var event domain.ClickEvent
	var homeZip, dataTier, priority, source sql.NullString
	var currentCarrier, userAgent sql.NullString
	var currentBill sql.NullFloat64

	err := rows.Scan(
		&event.ID,
		&event.Carrier,
		&homeZip,
		&dataTier,
		&priority,
		&source,
		&currentCarrier,
		&currentBill,
		&userAgent,
		&event.ClickedAt,
	)
	if err != nil {
		return domain.ClickEvent{}, fmt.Errorf("scan click: %w", err)
	}

	event.HomeZip = homeZip.String
	event.DataTier = dataTier.String
	event.Priority = priority.String
	event.Source = domain.Source(source.String)
	event.CurrentCarrier = currentCarrier.String
	event.UserAgent = userAgent.String
	if currentBill.Valid {
		bill := currentBill.Float64
		event.CurrentBill = &bill
	}
	event.ClickedAt = event.ClickedAt.UTC()

	return event, nil
}

// nullString maps "" to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
