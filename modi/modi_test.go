// SPDX-License-Identifier: MIT

package modi_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/tlp/modi"
	"github.com/katalvlaran/tlp/transport"
)

func cells(rc ...int) []transport.Cell {
	out := make([]transport.Cell, 0, len(rc)/2)
	for k := 0; k+1 < len(rc); k += 2 {
		out = append(out, transport.Cell{Row: rc[k], Col: rc[k+1]})
	}

	return out
}

// threeByThree is a balanced problem whose hand-built start needs two pivots.
func threeByThree() (transport.Problem, transport.BFSolution) {
	p := transport.Problem{
		Supply: []float64{30, 40, 50},
		Demand: []float64{35, 28, 57},
		Costs:  [][]float64{{8, 6, 10}, {9, 12, 13}, {14, 9, 16}},
	}
	bfs := transport.BFSolution{
		Allocation: [][]float64{{30, 0, 0}, {5, 28, 7}, {0, 0, 50}},
		Basis:      cells(0, 0, 1, 0, 1, 1, 1, 2, 2, 2),
	}
	bfs.Cost = transport.TotalCost(bfs.Allocation, p.Costs)

	return p, bfs
}

// OptimizerSuite drives SolveFromBFS end to end.
type OptimizerSuite struct {
	suite.Suite
}

func TestOptimizerSuite(t *testing.T) {
	suite.Run(t, new(OptimizerSuite))
}

// TestAlreadyOptimal: no improving cell, value returned as is.
func (s *OptimizerSuite) TestAlreadyOptimal() {
	p := transport.Problem{
		Supply: []float64{20, 30},
		Demand: []float64{25, 25},
		Costs:  [][]float64{{2, 3}, {4, 1}},
	}
	bfs := transport.BFSolution{
		Allocation: [][]float64{{20, 0}, {5, 25}},
		Basis:      cells(0, 0, 1, 0, 1, 1),
	}

	res := modi.SolveFromBFS(p, bfs)
	s.Require().Equal(transport.StatusOptimal, res.Status)
	v, ok := res.Value()
	s.Require().True(ok)
	s.InDelta(85.0, v, 1e-9)
	s.Equal(0, res.Iterations)
	s.Equal(bfs.Allocation, res.Solution)
}

// TestConverges: two pivots reach the optimum and preserve the margins.
func (s *OptimizerSuite) TestConverges() {
	p, bfs := threeByThree()
	s.Require().InDelta(1512.0, bfs.Cost, 1e-9)

	res := modi.SolveFromBFS(p, bfs)
	s.Require().True(res.IsOptimal(), res.ErrorMessage)
	v, _ := res.Value()
	s.InDelta(1284.0, v, 1e-9)
	s.Equal(2, res.Iterations)

	rows := transport.RowSums(res.Solution)
	cols := transport.ColSums(res.Solution)
	for i, want := range p.Supply {
		s.InDelta(want, rows[i], 1e-9)
	}
	for j, want := range p.Demand {
		s.InDelta(want, cols[j], 1e-9)
	}
	for i := range res.Solution {
		for j := range res.Solution[i] {
			s.GreaterOrEqual(res.Solution[i][j], 0.0)
		}
	}
	s.Len(res.Basis, len(p.Supply)+len(p.Demand)-1)
}

// TestInputNotMutated: the caller's BFS stays intact.
func (s *OptimizerSuite) TestInputNotMutated() {
	p, bfs := threeByThree()
	before := bfs.Clone()

	_ = modi.SolveFromBFS(p, bfs)
	s.Equal(before, bfs)
}

// TestOptimalityCertificate: every reduced cost of the final basis is ≥ −ε.
func (s *OptimizerSuite) TestOptimalityCertificate() {
	p, bfs := threeByThree()
	res := modi.SolveFromBFS(p, bfs)
	s.Require().True(res.IsOptimal())

	m, n := len(p.Supply), len(p.Demand)
	pot := modi.ComputePotentials(p.Costs, res.Basis, m, n)
	for _, c := range res.Basis {
		s.InDelta(p.Costs[c.Row][c.Col], pot.U[c.Row].Value+pot.V[c.Col].Value, 1e-9,
			"basic cell %s must be tight", c)
	}
	reduced := modi.ReducedCosts(p.Costs, res.Basis, pot)
	for i := range reduced {
		for j := range reduced[i] {
			s.GreaterOrEqual(reduced[i][j], -transport.Epsilon)
		}
	}
}

// TestDegenerateBasis: a zero-valued basic cell does not stall the loop.
func (s *OptimizerSuite) TestDegenerateBasis() {
	p := transport.Problem{
		Supply: []float64{10, 10},
		Demand: []float64{10, 10},
		Costs:  [][]float64{{1, 2}, {3, 4}},
	}
	bfs := transport.BFSolution{
		Allocation: [][]float64{{10, 0}, {0, 10}},
		Basis:      cells(0, 0, 1, 1, 0, 1),
	}

	res := modi.SolveFromBFS(p, bfs)
	s.Require().True(res.IsOptimal())
	v, _ := res.Value()
	s.InDelta(50.0, v, 1e-9)
}

// TestDisconnectedBasis: unreachable potentials never produce an entering cell.
func (s *OptimizerSuite) TestDisconnectedBasis() {
	p := transport.Problem{
		Supply: []float64{20, 30},
		Demand: []float64{25, 25},
		Costs:  [][]float64{{2, 3}, {4, 1}},
	}
	bfs := transport.BFSolution{
		Allocation: [][]float64{{20, 0}, {5, 25}},
		Basis:      cells(0, 0, 1, 1),
	}

	res := modi.SolveFromBFS(p, bfs)
	s.Require().Equal(transport.StatusOptimal, res.Status)
	v, _ := res.Value()
	s.InDelta(85.0, v, 1e-9)
}

// TestMaxIterations: the budget is exhausted before optimality is proven.
func (s *OptimizerSuite) TestMaxIterations() {
	p := transport.Problem{
		Supply: []float64{100, 100},
		Demand: []float64{100, 100},
		Costs:  [][]float64{{5, 10}, {8, 6}},
	}
	bfs := transport.BFSolution{
		Allocation: [][]float64{{0, 100}, {100, 0}},
		Basis:      cells(0, 1, 1, 0, 1, 1),
	}

	res := modi.New(modi.WithMaxIterations(1)).SolveFromBFS(p, bfs)
	s.Require().Equal(transport.StatusError, res.Status)
	s.Equal("Max iterations (1) reached", res.ErrorMessage)
	s.True(errors.Is(res.Err, modi.ErrMaxIterations))
	s.Nil(res.OptimalValue)

	// With room to finish, the same start converges to 1100.
	res = modi.SolveFromBFS(p, bfs)
	s.Require().True(res.IsOptimal())
	v, _ := res.Value()
	s.InDelta(1100.0, v, 1e-9)
}

// TestZeroCosts: zero cost cells are ordinary candidates.
func (s *OptimizerSuite) TestZeroCosts() {
	p := transport.Problem{
		Supply: []float64{10, 5},
		Demand: []float64{8, 7},
		Costs:  [][]float64{{0, 1}, {2, 0}},
	}
	bfs := transport.BFSolution{
		Allocation: [][]float64{{8, 2}, {0, 5}},
		Basis:      cells(0, 0, 0, 1, 1, 1),
	}

	res := modi.SolveFromBFS(p, bfs)
	s.Require().True(res.IsOptimal())
	v, _ := res.Value()
	s.InDelta(2.0, v, 1e-9)
}

// TestInvalidShape: a mismatched allocation is reported, not panicked on.
func (s *OptimizerSuite) TestInvalidShape() {
	p, bfs := threeByThree()
	bfs.Allocation = bfs.Allocation[:2]

	res := modi.SolveFromBFS(p, bfs)
	s.Require().Equal(transport.StatusError, res.Status)
	s.Contains(res.ErrorMessage, "Error in MODI method: ")
	s.True(errors.Is(res.Err, modi.ErrInvalidSolution))
}

// TestBasisOutOfRange: basis cells must index the cost matrix.
func (s *OptimizerSuite) TestBasisOutOfRange() {
	p, bfs := threeByThree()
	bfs.Basis = append(bfs.Basis, transport.Cell{Row: 3, Col: 0})

	res := modi.SolveFromBFS(p, bfs)
	s.Require().Equal(transport.StatusError, res.Status)
	s.True(errors.Is(res.Err, modi.ErrInvalidSolution))
}

// TestOnPivot: the hook sees each pivot in order.
func (s *OptimizerSuite) TestOnPivot() {
	p, bfs := threeByThree()
	var steps []modi.Step

	res := modi.New(modi.WithOnPivot(func(st modi.Step) { steps = append(steps, st) })).SolveFromBFS(p, bfs)
	s.Require().True(res.IsOptimal())
	s.Require().Len(steps, 2)

	s.Equal(1, steps[0].Iteration)
	s.Equal(transport.Cell{Row: 2, Col: 1}, steps[0].Entering)
	s.InDelta(-6.0, steps[0].ReducedCost, 1e-9)
	s.InDelta(28.0, steps[0].Theta, 1e-9)
	s.True(steps[0].Left)
	s.Equal(transport.Cell{Row: 1, Col: 1}, steps[0].Leaving)
	s.Equal(cells(2, 1, 2, 2, 1, 2, 1, 1), steps[0].Cycle)

	s.Equal(2, steps[1].Iteration)
	s.Equal(transport.Cell{Row: 0, Col: 2}, steps[1].Entering)
	s.InDelta(-2.0, steps[1].ReducedCost, 1e-9)
	s.InDelta(30.0, steps[1].Theta, 1e-9)
	s.Equal(transport.Cell{Row: 0, Col: 0}, steps[1].Leaving)
}

// TestBasisCompletion: the completed run ends with a spanning basis.
func (s *OptimizerSuite) TestBasisCompletion() {
	p := transport.Problem{
		Supply: []float64{100, 150, 200},
		Demand: []float64{120, 180, 150},
		Costs:  [][]float64{{5, 8, 7}, {6, 9, 4}, {8, 5, 6}},
	}
	bfs := transport.BFSolution{
		Allocation: [][]float64{{100, 0, 0}, {0, 0, 150}, {20, 180, 0}},
		Basis:      cells(2, 1, 0, 0, 1, 2, 2, 0),
	}

	res := modi.New(modi.WithBasisCompletion()).SolveFromBFS(p, bfs)
	s.Require().True(res.IsOptimal())
	v, _ := res.Value()
	s.InDelta(2160.0, v, 1e-9)
	s.Len(res.Basis, 5)
	s.Contains(res.Basis, transport.Cell{Row: 1, Col: 0})
}

func TestOptions(t *testing.T) {
	def := modi.DefaultOptions()
	assert.Equal(t, modi.DefaultMaxIterations, def.MaxIterations)
	assert.Equal(t, transport.Epsilon, def.Epsilon)
	assert.Equal(t, modi.DegenerateZeroStep, def.Degenerate)
	assert.False(t, def.CompleteBasis)

	o := modi.New(
		modi.WithMaxIterations(0),
		modi.WithEpsilon(-1),
		modi.WithDegeneratePolicy(modi.DegenerateSmallestPositive),
		modi.WithBasisCompletion(),
	)
	assert.Equal(t, modi.DefaultMaxIterations, o.MaxIterations)
	assert.Equal(t, transport.Epsilon, o.Epsilon)
	assert.Equal(t, modi.DegenerateSmallestPositive, o.Degenerate)
	assert.True(t, o.CompleteBasis)

	assert.Equal(t, "zero-step", modi.DegenerateZeroStep.String())
	assert.Equal(t, "smallest-positive", modi.DegenerateSmallestPositive.String())
}

func TestZeroValueOptimizer(t *testing.T) {
	p, bfs := threeByThree()
	var o modi.Optimizer

	res := o.SolveFromBFS(p, bfs)
	require.True(t, res.IsOptimal())
	v, _ := res.Value()
	assert.InDelta(t, 1284.0, v, 1e-9)
}
