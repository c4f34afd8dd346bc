// SPDX-License-Identifier: MIT

// Package transport: Problem construction, validation and balancing.
//
// Balance is deterministic and non-iterative: at most one dummy row or
// column with zero cost is appended. The receiver is never mutated.
package transport

import (
	"fmt"
	"math"
)

// Problem is a transportation instance.
//   - Supply has length m, Demand has length n.
//   - Costs is m×n; Costs[i][j] is the unit cost of route i→j.
type Problem struct {
	Supply []float64   `json:"supply" yaml:"supply"`
	Demand []float64   `json:"demand" yaml:"demand"`
	Costs  [][]float64 `json:"costs" yaml:"costs"`
}

// DummyKind tells which side Balance padded.
type DummyKind int

const (
	// DummyNone means the problem was already balanced.
	DummyNone DummyKind = iota
	// DummySupplier means a zero-cost row was appended (demand exceeded supply).
	DummySupplier
	// DummyConsumer means a zero-cost column was appended (supply exceeded demand).
	DummyConsumer
)

// String implements fmt.Stringer.
func (k DummyKind) String() string {
	switch k {
	case DummySupplier:
		return "supplier"
	case DummyConsumer:
		return "consumer"
	default:
		return "none"
	}
}

// ParseDummyKind is the inverse of DummyKind.String; unknown text maps to
// DummyNone.
func ParseDummyKind(s string) DummyKind {
	switch s {
	case "supplier":
		return DummySupplier
	case "consumer":
		return DummyConsumer
	default:
		return DummyNone
	}
}

// NumSuppliers returns m.
func (p Problem) NumSuppliers() int { return len(p.Supply) }

// NumConsumers returns n.
func (p Problem) NumConsumers() int { return len(p.Demand) }

// TotalSupply returns ΣSupply.
func (p Problem) TotalSupply() float64 { return sum(p.Supply) }

// TotalDemand returns ΣDemand.
func (p Problem) TotalDemand() float64 { return sum(p.Demand) }

// IsBalanced reports whether |ΣSupply − ΣDemand| < BalanceTolerance.
func (p Problem) IsBalanced() bool {
	return math.Abs(p.TotalSupply()-p.TotalDemand()) < BalanceTolerance
}

// Validate checks the shape and values of p.
//
// Contract:
//   - len(Supply) ≥ 1 and len(Demand) ≥ 1 (ErrEmptyProblem).
//   - len(Costs) == m and every row has n entries (ErrDimensionMismatch).
//   - every value is finite (ErrNaNInf).
//   - supply and demand are non-negative (ErrNegativeQuantity).
//
// Returned errors wrap the sentinel with the offending position.
// Complexity: O(m·n).
func (p Problem) Validate() error {
	m, n := len(p.Supply), len(p.Demand)
	if m == 0 || n == 0 {
		return ErrEmptyProblem
	}
	if len(p.Costs) != m {
		return fmt.Errorf("costs has %d rows, want %d: %w", len(p.Costs), m, ErrDimensionMismatch)
	}

	var (
		i, j int
		v    float64
	)
	for i, v = range p.Supply {
		if err := checkQuantity(v); err != nil {
			return fmt.Errorf("supply[%d]=%g: %w", i, v, err)
		}
	}
	for j, v = range p.Demand {
		if err := checkQuantity(v); err != nil {
			return fmt.Errorf("demand[%d]=%g: %w", j, v, err)
		}
	}
	for i = 0; i < m; i++ {
		if len(p.Costs[i]) != n {
			return fmt.Errorf("costs[%d] has %d columns, want %d: %w", i, len(p.Costs[i]), n, ErrDimensionMismatch)
		}
		for j, v = range p.Costs[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("costs[%d][%d]: %w", i, j, ErrNaNInf)
			}
		}
	}

	return nil
}

// Clone returns a deep copy of p.
func (p Problem) Clone() Problem {
	out := Problem{
		Supply: append([]float64(nil), p.Supply...),
		Demand: append([]float64(nil), p.Demand...),
		Costs:  make([][]float64, len(p.Costs)),
	}
	for i := range p.Costs {
		out.Costs[i] = append([]float64(nil), p.Costs[i]...)
	}

	return out
}

// Balance returns a balanced copy of p and the kind of dummy it added.
//   - ΣSupply > ΣDemand: a dummy consumer with demand = excess and a
//     zero-cost column.
//   - ΣDemand > ΣSupply: a dummy supplier with supply = excess and a
//     zero-cost row.
//   - already balanced: a plain copy and DummyNone.
//
// Complexity: O(m·n) for the copy.
func (p Problem) Balance() (Problem, DummyKind) {
	out := p.Clone()
	if p.IsBalanced() {
		return out, DummyNone
	}

	diff := p.TotalSupply() - p.TotalDemand()
	if diff > 0 {
		out.Demand = append(out.Demand, diff)
		for i := range out.Costs {
			out.Costs[i] = append(out.Costs[i], 0)
		}

		return out, DummyConsumer
	}

	out.Supply = append(out.Supply, -diff)
	out.Costs = append(out.Costs, make([]float64, len(p.Demand)))

	return out, DummySupplier
}

func checkQuantity(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNaNInf
	}
	if v < 0 {
		return ErrNegativeQuantity
	}

	return nil
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}

	return s
}
