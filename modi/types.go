// SPDX-License-Identifier: MIT

// Package modi: sentinels, options and small value types.
package modi

import (
	"errors"

	"github.com/katalvlaran/tlp/transport"
)

// DefaultMaxIterations bounds the pivot loop when no option overrides it.
const DefaultMaxIterations = 1000

var (
	// ErrNoCycle means no improving cycle closes through the entering cell,
	// i.e. the basis invariant is broken.
	ErrNoCycle = errors.New("modi: could not find cycle for improvement")

	// ErrMaxIterations means the pivot budget ran out before optimality.
	ErrMaxIterations = errors.New("modi: max iterations reached")

	// ErrInvalidSolution means the initial solution does not fit the problem
	// (allocation shape or basis cell out of range).
	ErrInvalidSolution = errors.New("modi: initial solution does not match problem")

	// ErrInternal wraps a runtime fault recovered inside the pivot loop.
	ErrInternal = errors.New("modi: internal fault")
)

// DegeneratePolicy selects what a pivot does when θ falls below Epsilon.
type DegeneratePolicy int

const (
	// DegenerateZeroStep pivots with the θ actually found (zero or tiny).
	// The basis exchange still happens, allocations stay non-negative and
	// row/column sums are conserved exactly.
	DegenerateZeroStep DegeneratePolicy = iota

	// DegenerateSmallestPositive replaces θ by the smallest strictly positive
	// "−" allocation, or by Epsilon when there is none. This never stalls on
	// a zero step but may drive an emptied "−" cell below zero before it is
	// snapped back.
	DegenerateSmallestPositive
)

// String implements fmt.Stringer.
func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateSmallestPositive:
		return "smallest-positive"
	default:
		return "zero-step"
	}
}

// Potential is a dual value with an explicit assigned flag.
type Potential struct {
	Value    float64
	Assigned bool
}

// Potentials holds the row (U) and column (V) duals.
type Potentials struct {
	U []Potential
	V []Potential
}

// Reduced returns c − u[i] − v[j] and whether both potentials are assigned.
func (p Potentials) Reduced(cost float64, i, j int) (float64, bool) {
	if !p.U[i].Assigned || !p.V[j].Assigned {
		return 0, false
	}

	return cost - p.U[i].Value - p.V[j].Value, true
}

// Step describes one pivot.
type Step struct {
	Iteration   int
	Entering    transport.Cell
	ReducedCost float64
	Theta       float64
	Leaving     transport.Cell
	// Left is false when no "−" cell emptied and the basis only grew.
	Left  bool
	Cycle []transport.Cell
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithMaxIterations bounds the pivot loop. Non-positive values are ignored.
func WithMaxIterations(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// WithEpsilon sets the numeric tolerance. Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(o *Optimizer) {
		if eps > 0 {
			o.Epsilon = eps
		}
	}
}

// WithDegeneratePolicy selects the θ policy for degenerate pivots.
func WithDegeneratePolicy(p DegeneratePolicy) Option {
	return func(o *Optimizer) {
		o.Degenerate = p
	}
}

// WithBasisCompletion makes the optimizer connect a degenerate (forest)
// basis into a spanning tree with zero-allocation cells before pivoting,
// so that every potential is assigned.
func WithBasisCompletion() Option {
	return func(o *Optimizer) {
		o.CompleteBasis = true
	}
}

// WithOnPivot installs a hook called after every pivot.
func WithOnPivot(fn func(Step)) Option {
	return func(o *Optimizer) {
		o.OnPivot = fn
	}
}

// DefaultOptions returns an Optimizer with DefaultMaxIterations,
// transport.Epsilon and DegenerateZeroStep.
func DefaultOptions() Optimizer {
	return Optimizer{
		MaxIterations: DefaultMaxIterations,
		Epsilon:       transport.Epsilon,
		Degenerate:    DegenerateZeroStep,
	}
}
