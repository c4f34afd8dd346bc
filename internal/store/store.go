package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/tlp/transport"
)

// Record is one persisted solve.
type Record struct {
	ID         uuid.UUID         `json:"id"`
	Problem    transport.Problem `json:"problem"`
	Dummy      string            `json:"dummy"`
	Result     transport.Result  `json:"result"`
	Source     string            `json:"source"`
	DurationMs float64           `json:"duration_ms"`
	CreatedAt  time.Time         `json:"created_at"`
}

// DefaultListLimit applies when ListRecords gets a non-positive limit.
const DefaultListLimit = 50

// Store persists solve records. GetRecord returns nil, nil for an unknown id.
type Store interface {
	SaveRecord(ctx context.Context, rec *Record) error
	GetRecord(ctx context.Context, id uuid.UUID) (*Record, error)
	ListRecords(ctx context.Context, limit int) ([]*Record, error)
	Close() error
}

// Open returns the backend named by driver: memory, sqlite or postgres.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx, dsn)
	case "postgres":
		return NewPostgresStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// prepare fills the id and timestamp of a new record.
func prepare(rec *Record) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
