// Package metricsdb persists per-query timing and result-count samples to
// Postgres, the durable counterpart to internal/telemetry's Prometheus
// collectors.
package metricsdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/ext-sakamoro/ALICE-Search/pkg/config"
)

// Sink records query metrics into a Postgres table, batching writes so a
// burst of queries doesn't round-trip to the database once per query.
type Sink struct {
	db *sql.DB

	buf       []record
	flushSize int
}

type record struct {
	timestampMs int64
	resultCount int
	latencyUs   int64
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS query_metrics (
	id SERIAL PRIMARY KEY,
	timestamp_ms BIGINT NOT NULL,
	result_count INTEGER NOT NULL,
	latency_us BIGINT NOT NULL
)`

// Open connects to Postgres using cfg and ensures the query_metrics table
// exists.
func Open(cfg config.PostgresConfig) (*Sink, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("metricsdb: opening postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("metricsdb: pinging postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("metricsdb: creating query_metrics table: %w", err)
	}

	return &Sink{db: db, flushSize: 100}, nil
}

// RecordQuery buffers a single query's outcome, flushing automatically
// once flushSize samples have accumulated.
func (s *Sink) RecordQuery(ctx context.Context, timestampMs int64, resultCount int, latencyUs int64) error {
	s.buf = append(s.buf, record{timestampMs: timestampMs, resultCount: resultCount, latencyUs: latencyUs})
	if len(s.buf) >= s.flushSize {
		return s.Flush(ctx)
	}
	return nil
}

// Flush writes any buffered records to Postgres inside a single
// transaction.
func (s *Sink) Flush(ctx context.Context) error {
	if len(s.buf) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("metricsdb: beginning transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO query_metrics (timestamp_ms, result_count, latency_us) VALUES ($1, $2, $3)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("metricsdb: preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range s.buf {
		if _, err := stmt.ExecContext(ctx, r.timestampMs, r.resultCount, r.latencyUs); err != nil {
			tx.Rollback()
			return fmt.Errorf("metricsdb: inserting record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("metricsdb: committing transaction: %w", err)
	}
	s.buf = s.buf[:0]
	return nil
}

// QueryLatency returns the latencies (microseconds) of every query
// recorded in [startMs, endMs).
func (s *Sink) QueryLatency(ctx context.Context, startMs, endMs int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT latency_us FROM query_metrics WHERE timestamp_ms >= $1 AND timestamp_ms < $2 ORDER BY timestamp_ms`,
		startMs, endMs)
	if err != nil {
		return nil, fmt.Errorf("metricsdb: querying latency: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("metricsdb: scanning latency row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// QueryResults returns the result counts of every query recorded in
// [startMs, endMs).
func (s *Sink) QueryResults(ctx context.Context, startMs, endMs int64) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT result_count FROM query_metrics WHERE timestamp_ms >= $1 AND timestamp_ms < $2 ORDER BY timestamp_ms`,
		startMs, endMs)
	if err != nil {
		return nil, fmt.Errorf("metricsdb: querying result counts: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("metricsdb: scanning result-count row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Close flushes any buffered records and closes the database connection.
func (s *Sink) Close() error {
	if err := s.Flush(context.Background()); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}
