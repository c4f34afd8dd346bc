// SPDX-License-Identifier: MIT

// Package solver: phase interfaces, sentinels and options.
package solver

import (
	"errors"

	"github.com/katalvlaran/tlp/modi"
	"github.com/katalvlaran/tlp/transport"
	"github.com/katalvlaran/tlp/vogel"
)

var (
	// ErrNoInitialBFS means the first phase produced no basic feasible solution.
	ErrNoInitialBFS = errors.New("solver: no initial BFS found")

	// ErrInternal wraps a panic recovered during a solve.
	ErrInternal = errors.New("solver: internal fault")
)

// MsgNoInitialBFS is the ErrorMessage of an INFEASIBLE result.
const MsgNoInitialBFS = "No initial BFS found."

// BFSFinder builds an initial basic feasible solution of a balanced problem.
type BFSFinder interface {
	FindInitialBFS(p transport.Problem) (transport.BFSolution, error)
}

// Algorithm improves a basic feasible solution to a terminal Result.
type Algorithm interface {
	SolveFromBFS(p transport.Problem, bfs transport.BFSolution) transport.Result
}

// Compile-time checks for the default phases.
var (
	_ BFSFinder = (*vogel.Method)(nil)
	_ Algorithm = (*modi.Optimizer)(nil)
)

// Option configures a Solver.
type Option func(*Solver)

// WithBFSFinder replaces the initial-solution phase. nil is ignored.
func WithBFSFinder(f BFSFinder) Option {
	return func(s *Solver) {
		if f != nil {
			s.finder = f
		}
	}
}

// WithAlgorithm replaces the improvement phase. nil is ignored.
// Optimizer options (WithMaxIterations, WithEpsilon, WithOptimizerOptions)
// only shape the default optimizer and have no effect once an Algorithm is set.
func WithAlgorithm(a Algorithm) Option {
	return func(s *Solver) {
		if a != nil {
			s.algo = a
		}
	}
}

// WithMaxIterations bounds the default optimizer's pivot loop.
func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		s.optimizer = append(s.optimizer, modi.WithMaxIterations(n))
	}
}

// WithEpsilon sets the tolerance of both default phases.
func WithEpsilon(eps float64) Option {
	return func(s *Solver) {
		s.optimizer = append(s.optimizer, modi.WithEpsilon(eps))
		s.method = append(s.method, vogel.WithEpsilon(eps))
	}
}

// WithOptimizerOptions passes raw options to the default optimizer.
func WithOptimizerOptions(opts ...modi.Option) Option {
	return func(s *Solver) {
		s.optimizer = append(s.optimizer, opts...)
	}
}
