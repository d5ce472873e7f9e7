package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/book-pages-go/internal/events"
)

// Schema creates the tables the Postgres store writes to.
const Schema = `
CREATE TABLE IF NOT EXISTS page_count_computations (
	id          BIGSERIAL PRIMARY KEY,
	total       BIGINT      NOT NULL,
	session_id  TEXT        NOT NULL,
	request_id  TEXT,
	computed_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS rate_limit_rejections (
	id          BIGSERIAL PRIMARY KEY,
	session_id  TEXT        NOT NULL,
	count       BIGINT      NOT NULL,
	max_count   BIGINT      NOT NULL,
	window_ms   BIGINT      NOT NULL,
	request_id  TEXT,
	rejected_at TIMESTAMPTZ NOT NULL
);
`

// Postgres is an events.Store backed by PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL event store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the event tables when they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate event tables: %w", err)
	}

	return nil
}

func (p *Postgres) SavePageCountComputed(ctx context.Context, event *events.PageCountComputed) error {
	query := `
		INSERT INTO page_count_computations (total, session_id, request_id, computed_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Total,
		event.SessionID,
		nullableString(event.RequestID),
		event.ComputedAt,
	)

	return err
}

func (p *Postgres) SaveRateLimitExceeded(ctx context.Context, event *events.RateLimitExceeded) error {
	query := `
		INSERT INTO rate_limit_rejections (session_id, count, max_count, window_ms, request_id, rejected_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		event.SessionID,
		event.Count,
		event.Limit,
		event.Window.Milliseconds(),
		nullableString(event.RequestID),
		event.RejectedAt,
	)

	return err
}

// Shutdown closes the connection pool.
func (p *Postgres) Shutdown() error {
	p.pool.Close()

	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
