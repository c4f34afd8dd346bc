package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/tlp/codec"
	"github.com/katalvlaran/tlp/internal/bus"
	"github.com/katalvlaran/tlp/internal/config"
	"github.com/katalvlaran/tlp/internal/metrics"
	"github.com/katalvlaran/tlp/internal/store"
	"github.com/katalvlaran/tlp/modi"
	"github.com/katalvlaran/tlp/solver"
	"github.com/katalvlaran/tlp/transport"
)

// ErrInvalidProblem is returned for input the solver must not see.
var ErrInvalidProblem = errors.New("service: invalid problem")

// Sources label where a solve request came from.
const (
	SourceHTTP = "http"
	SourceNATS = "nats"
	SourceCLI  = "cli"
)

// SolveService runs solves and records them.
type SolveService struct {
	solver  *solver.Solver
	store   store.Store
	bus     bus.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New wires a service. bus and metrics may be nil.
func New(s *solver.Solver, st store.Store, b bus.Client, m *metrics.Metrics, logger *slog.Logger) *SolveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SolveService{solver: s, store: st, bus: b, metrics: m, logger: logger}
}

// NewSolver builds a solver from the solver section of the config.
func NewSolver(cfg config.SolverConfig) (*solver.Solver, error) {
	policy, err := cfg.Degenerate()
	if err != nil {
		return nil, err
	}
	opts := []modi.Option{modi.WithDegeneratePolicy(policy)}
	if cfg.CompleteBasis {
		opts = append(opts, modi.WithBasisCompletion())
	}
	return solver.New(
		solver.WithMaxIterations(cfg.MaxIterations),
		solver.WithEpsilon(cfg.Epsilon),
		solver.WithOptimizerOptions(opts...),
	), nil
}

// Solve validates p, solves it, stores the record and announces the outcome.
// Solver failures (infeasible, error) are results, not errors; an error is
// returned only for invalid input, a cancelled context or a storage failure.
func (s *SolveService) Solve(ctx context.Context, p transport.Problem, source string) (*store.Record, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProblem, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	run := s.solver.Run(p)
	took := time.Since(start)

	rec := &store.Record{
		Problem:    p,
		Dummy:      run.Dummy.String(),
		Result:     run.Result,
		Source:     source,
		DurationMs: float64(took.Microseconds()) / 1000,
	}
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		s.logger.Error("failed to store solution", "error", err)
		return nil, fmt.Errorf("store solution: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ObserveSolve(source, p, run.Dummy, run.Result, took)
	}
	s.publish(rec)

	attrs := []any{
		"id", rec.ID,
		"source", source,
		"status", rec.Result.Status,
		"suppliers", p.NumSuppliers(),
		"consumers", p.NumConsumers(),
		"dummy", rec.Dummy,
		"iterations", rec.Result.Iterations,
		"duration_ms", rec.DurationMs,
	}
	if v, ok := rec.Result.Value(); ok {
		attrs = append(attrs, "optimal_value", v)
		s.logger.Info("solve finished", attrs...)
	} else {
		attrs = append(attrs, "error", rec.Result.ErrorMessage)
		s.logger.Warn("solve failed", attrs...)
	}

	return rec, nil
}

// Get returns a stored record, or nil when unknown.
func (s *SolveService) Get(ctx context.Context, id uuid.UUID) (*store.Record, error) {
	return s.store.GetRecord(ctx, id)
}

// List returns up to limit records, newest first.
func (s *SolveService) List(ctx context.Context, limit int) ([]*store.Record, error) {
	return s.store.ListRecords(ctx, limit)
}

// Listen serves solve requests on subject through the bus.
func (s *SolveService) Listen(subject string) error {
	if s.bus == nil {
		return errors.New("service: no bus configured")
	}
	if err := s.bus.Respond(subject, s.HandleRequest); err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.logger.Info("listening for solve requests", "subject", subject)
	return nil
}

// HandleRequest answers one JSON problem with the JSON record, or an
// ErrorReply.
func (s *SolveService) HandleRequest(ctx context.Context, data []byte) []byte {
	p, err := codec.Decode(bytes.NewReader(data), codec.FormatJSON)
	if err != nil {
		return errorReply(err)
	}
	rec, err := s.Solve(ctx, p, SourceNATS)
	if err != nil {
		return errorReply(err)
	}
	out, err := json.Marshal(rec)
	if err != nil {
		return errorReply(err)
	}
	return out
}

func (s *SolveService) publish(rec *store.Record) {
	if s.bus == nil {
		return
	}
	id := rec.ID.String()

	var err error
	if v, ok := rec.Result.Value(); ok {
		err = s.bus.Publish(bus.SubjectSolveCompleted(id), bus.SolveCompletedEvent{
			ID:           id,
			OptimalValue: v,
			Iterations:   rec.Result.Iterations,
			Dummy:        rec.Dummy,
			DurationMs:   rec.DurationMs,
			CreatedAt:    rec.CreatedAt,
		})
	} else {
		err = s.bus.Publish(bus.SubjectSolveFailed(id), bus.SolveFailedEvent{
			ID:         id,
			Status:     string(rec.Result.Status),
			Error:      rec.Result.ErrorMessage,
			DurationMs: rec.DurationMs,
			CreatedAt:  rec.CreatedAt,
		})
	}
	if err != nil {
		s.logger.Warn("failed to publish solve event", "id", id, "error", err)
	}
}

func errorReply(err error) []byte {
	out, _ := json.Marshal(bus.ErrorReply{Error: err.Error()})
	return out
}
