package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/tlp/transport"
)

// MemoryStore keeps records in process memory. order holds ids in insertion
// order; ListRecords walks it backwards.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
	order   []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]*Record)}
}

func (s *MemoryStore) SaveRecord(_ context.Context, rec *Record) error {
	prepare(rec)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; !ok {
		s.order = append(s.order, rec.ID)
	}
	s.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (s *MemoryStore) GetRecord(_ context.Context, id uuid.UUID) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) ListRecords(_ context.Context, limit int) ([]*Record, error) {
	limit = clampLimit(limit)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, min(limit, len(s.order)))
	for k := len(s.order) - 1; k >= 0 && len(out) < limit; k-- {
		out = append(out, cloneRecord(s.records[s.order[k]]))
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

func cloneRecord(rec *Record) *Record {
	c := *rec
	c.Problem = rec.Problem.Clone()
	c.Result.Solution = transport.CloneMatrix(rec.Result.Solution)
	if rec.Result.Basis != nil {
		c.Result.Basis = append([]transport.Cell(nil), rec.Result.Basis...)
	}
	if rec.Result.OptimalValue != nil {
		v := *rec.Result.OptimalValue
		c.Result.OptimalValue = &v
	}
	return &c
}
