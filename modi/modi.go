// SPDX-License-Identifier: MIT

// Package modi: the optimizer loop.
package modi

import (
	"fmt"

	"github.com/katalvlaran/tlp/transport"
)

// Optimizer runs the potential method. The zero value is usable and
// behaves as DefaultOptions().
type Optimizer struct {
	// MaxIterations bounds the number of pivots.
	MaxIterations int

	// Epsilon is the optimality and emptiness tolerance.
	Epsilon float64

	// Degenerate selects the θ policy when a pivot would move nothing.
	Degenerate DegeneratePolicy

	// CompleteBasis connects a degenerate basis before the first iteration.
	CompleteBasis bool

	// OnPivot, when set, observes every pivot.
	OnPivot func(Step)
}

// New returns an Optimizer configured by opts on top of DefaultOptions.
func New(opts ...Option) *Optimizer {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &o
}

// SolveFromBFS improves bfs with default options.
func SolveFromBFS(p transport.Problem, bfs transport.BFSolution) transport.Result {
	return DefaultOptions().SolveFromBFS(p, bfs)
}

// SolveFromBFS improves bfs to an optimal plan of the balanced problem p.
//
// Outcomes:
//   - StatusOptimal with the final allocation, basis, Σ x·c and the number
//     of pivots performed.
//   - StatusError "Could not find cycle for improvement" (ErrNoCycle).
//   - StatusError "Max iterations (N) reached" (ErrMaxIterations).
//   - StatusError "Error in MODI method: …" for malformed input
//     (ErrInvalidSolution) or a recovered runtime fault (ErrInternal).
//
// bfs is never modified.
func (o Optimizer) SolveFromBFS(p transport.Problem, bfs transport.BFSolution) (res transport.Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrInternal, r)
			res = transport.NewFailure(transport.StatusError, err, fmt.Sprintf("Error in MODI method: %v", r))
		}
	}()

	m, n := len(p.Supply), len(p.Demand)
	if err := checkShape(p, bfs, m, n); err != nil {
		return transport.NewFailure(transport.StatusError, err, "Error in MODI method: "+err.Error())
	}

	allocation := transport.CloneMatrix(bfs.Allocation)
	basis := append([]transport.Cell(nil), bfs.Basis...)
	if o.CompleteBasis {
		basis = CompleteBasis(p.Costs, basis, m, n)
	}

	var (
		eps      = o.eps()
		maxIter  = o.maxIterations()
		iter     int
		pot      Potentials
		reduced  [][]float64
		enter    transport.Cell
		delta    float64
		found    bool
		cycle    []transport.Cell
		step     Step
		hasCycle bool
	)
	for iter = 0; iter < maxIter; iter++ {
		pot = ComputePotentials(p.Costs, basis, m, n)
		reduced = ReducedCosts(p.Costs, basis, pot)

		enter, delta, found = entering(reduced)
		if !found || delta >= -eps {
			return transport.NewOptimal(allocation, basis, transport.TotalCost(allocation, p.Costs), iter)
		}

		if cycle, hasCycle = FindCycle(enter, basis, m, n); !hasCycle {
			res = transport.NewFailure(transport.StatusError, ErrNoCycle, "Could not find cycle for improvement")
			res.Iterations = iter

			return res
		}

		basis, step = o.Pivot(allocation, basis, cycle)
		if o.OnPivot != nil {
			step.Iteration = iter + 1
			step.ReducedCost = delta
			o.OnPivot(step)
		}
	}

	res = transport.NewFailure(transport.StatusError, ErrMaxIterations, fmt.Sprintf("Max iterations (%d) reached", maxIter))
	res.Iterations = maxIter

	return res
}

// checkShape rejects allocations and bases that do not fit p.
func checkShape(p transport.Problem, bfs transport.BFSolution, m, n int) error {
	if m == 0 || n == 0 {
		return fmt.Errorf("empty problem: %w", ErrInvalidSolution)
	}
	if len(p.Costs) != m {
		return fmt.Errorf("costs has %d rows, want %d: %w", len(p.Costs), m, ErrInvalidSolution)
	}
	for i := range p.Costs {
		if len(p.Costs[i]) != n {
			return fmt.Errorf("costs[%d] has %d columns, want %d: %w", i, len(p.Costs[i]), n, ErrInvalidSolution)
		}
	}
	if len(bfs.Allocation) != m {
		return fmt.Errorf("allocation has %d rows, want %d: %w", len(bfs.Allocation), m, ErrInvalidSolution)
	}
	for i := range bfs.Allocation {
		if len(bfs.Allocation[i]) != n {
			return fmt.Errorf("allocation[%d] has %d columns, want %d: %w", i, len(bfs.Allocation[i]), n, ErrInvalidSolution)
		}
	}
	for _, c := range bfs.Basis {
		if c.Row < 0 || c.Row >= m || c.Col < 0 || c.Col >= n {
			return fmt.Errorf("basis cell %s out of range: %w", c, ErrInvalidSolution)
		}
	}

	return nil
}

func (o Optimizer) eps() float64 {
	if o.Epsilon <= 0 {
		return transport.Epsilon
	}

	return o.Epsilon
}

func (o Optimizer) maxIterations() int {
	if o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}

	return o.MaxIterations
}
