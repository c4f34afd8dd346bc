package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists records through a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tlp_solutions (
			id UUID PRIMARY KEY,
			status TEXT NOT NULL,
			optimal_value DOUBLE PRECISION,
			dummy TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			problem JSONB NOT NULL,
			result JSONB NOT NULL,
			duration_ms DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_tlp_solutions_created ON tlp_solutions (created_at DESC)`)
	return err
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const solutionColumns = `id, dummy, source, problem, result, duration_ms, created_at`

func (s *PostgresStore) SaveRecord(ctx context.Context, rec *Record) error {
	prepare(rec)

	problemJSON, err := json.Marshal(rec.Problem)
	if err != nil {
		return fmt.Errorf("marshal problem: %w", err)
	}
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO tlp_solutions (id, status, optimal_value, dummy, source, problem, result, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, string(rec.Result.Status), rec.Result.OptimalValue, rec.Dummy, rec.Source,
		problemJSON, resultJSON, rec.DurationMs, rec.CreatedAt,
	)
	return err
}

func (s *PostgresStore) GetRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	rec, err := scanPostgres(s.pool.QueryRow(ctx, `
		SELECT `+solutionColumns+` FROM tlp_solutions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, limit int) ([]*Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+solutionColumns+` FROM tlp_solutions
		ORDER BY created_at DESC, id DESC LIMIT $1`, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanPostgres(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanPostgres(row pgx.Row) (*Record, error) {
	rec := &Record{}
	var problemJSON, resultJSON []byte
	if err := row.Scan(&rec.ID, &rec.Dummy, &rec.Source, &problemJSON, &resultJSON, &rec.DurationMs, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := decodeBlobs(rec, problemJSON, resultJSON); err != nil {
		return nil, err
	}
	return rec, nil
}
