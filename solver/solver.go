// SPDX-License-Identifier: MIT

// Package solver: the orchestrator.
package solver

import (
	"fmt"

	"github.com/katalvlaran/tlp/modi"
	"github.com/katalvlaran/tlp/transport"
	"github.com/katalvlaran/tlp/vogel"
)

// Solver runs balance → initial BFS → improvement.
type Solver struct {
	finder BFSFinder
	algo   Algorithm

	// pending options for the default phases
	method    []vogel.Option
	optimizer []modi.Option
}

// Run is the full trace of one solve.
type Run struct {
	// Problem is the balanced problem actually solved.
	Problem transport.Problem
	// Dummy tells which side, if any, was padded.
	Dummy transport.DummyKind
	// Initial is the first-phase solution; nil when none was found.
	Initial *transport.BFSolution
	// Result is the terminal outcome over Problem's shape.
	Result transport.Result
}

// New returns a Solver with Vogel and MODI as defaults, adjusted by opts.
func New(opts ...Option) *Solver {
	s := &Solver{}
	for _, opt := range opts {
		opt(s)
	}
	if s.finder == nil {
		s.finder = vogel.New(s.method...)
	}
	if s.algo == nil {
		s.algo = modi.New(s.optimizer...)
	}
	s.method, s.optimizer = nil, nil

	return s
}

// Solve runs a default Solver on p.
func Solve(p transport.Problem) transport.Result {
	return New().Solve(p)
}

// Solve balances p if needed, builds the initial solution and improves it.
// It never returns an error and never panics.
func (s *Solver) Solve(p transport.Problem) transport.Result {
	return s.Run(p).Result
}

// Run is Solve with the intermediate artefacts kept.
func (s *Solver) Run(p transport.Problem) (run Run) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrInternal, r)
			run.Result = transport.NewFailure(transport.StatusError, err, fmt.Sprintf("Unexpected error: %v", r))
		}
	}()

	// An empty side has nothing to pad against; the finder rejects it.
	if p.IsBalanced() || len(p.Supply) == 0 || len(p.Demand) == 0 {
		run.Problem, run.Dummy = p, transport.DummyNone
	} else {
		run.Problem, run.Dummy = p.Balance()
	}

	bfs, err := s.finder.FindInitialBFS(run.Problem)
	if err != nil {
		run.Result = transport.NewFailure(transport.StatusInfeasible, fmt.Errorf("%w: %w", ErrNoInitialBFS, err), MsgNoInitialBFS)

		return run
	}
	run.Initial = &bfs

	run.Result = s.algo.SolveFromBFS(run.Problem, bfs.Clone())

	return run
}
