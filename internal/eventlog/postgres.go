package eventlog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createOrdersEventSource = `
CREATE TABLE IF NOT EXISTS orders_event_source (
    id   BIGSERIAL PRIMARY KEY,
    jstr JSONB NOT NULL
)`

// PostgresStore keeps the log in the orders_event_source table; id is the
// BIGSERIAL sequence.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the log table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createOrdersEventSource); err != nil {
		return fmt.Errorf("create orders_event_source: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, payload []byte) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO orders_event_source (jstr) VALUES ($1) RETURNING id`,
		payload,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append event: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Replay(ctx context.Context, fn func(Record) error) error {
	rows, err := s.pool.Query(ctx,
		`SELECT id, jstr FROM orders_event_source ORDER BY id`)
	if err != nil {
		return fmt.Errorf("stream events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Payload); err != nil {
			return fmt.Errorf("scan event row: %w", err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

var _ Store = (*PostgresStore)(nil)
