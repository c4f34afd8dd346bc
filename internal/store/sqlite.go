package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists records in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) the database at path. ":memory:" gives
// a private in-process database.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" && !strings.Contains(path, "?") {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// Every connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS solutions (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		optimal_value REAL,
		dummy TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		problem JSON NOT NULL,
		result JSON NOT NULL,
		duration_ms REAL NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_solutions_created ON solutions(created_at);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLiteStore) SaveRecord(ctx context.Context, rec *Record) error {
	prepare(rec)

	problemJSON, err := json.Marshal(rec.Problem)
	if err != nil {
		return fmt.Errorf("marshal problem: %w", err)
	}
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	var optimal sql.NullFloat64
	if v, ok := rec.Result.Value(); ok {
		optimal = sql.NullFloat64{Float64: v, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO solutions (id, status, optimal_value, dummy, source, problem, result, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), string(rec.Result.Status), optimal, rec.Dummy, rec.Source,
		string(problemJSON), string(resultJSON), rec.DurationMs, rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert solution: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetRecord(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, dummy, source, problem, result, duration_ms, created_at
		FROM solutions WHERE id = ?`, id.String())

	rec, err := scanSQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context, limit int) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dummy, source, problem, result, duration_ms, created_at
		FROM solutions ORDER BY created_at DESC, id DESC LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query solutions: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row scanner) (*Record, error) {
	var (
		id, dummy, source string
		problem, result   []byte
		durationMs        float64
		createdAt         int64
	)
	if err := row.Scan(&id, &dummy, &source, &problem, &result, &durationMs, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan solution: %w", err)
	}

	rec := &Record{
		Dummy:      dummy,
		Source:     source,
		DurationMs: durationMs,
		CreatedAt:  time.Unix(0, createdAt).UTC(),
	}
	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid solution id %q: %w", id, err)
	}
	if err = decodeBlobs(rec, problem, result); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeBlobs(rec *Record, problem, result []byte) error {
	if err := json.Unmarshal(problem, &rec.Problem); err != nil {
		return fmt.Errorf("failed to unmarshal problem: %w", err)
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return nil
}
