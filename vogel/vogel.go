// SPDX-License-Identifier: MIT

// Package vogel: Vogel's Approximation Method.
package vogel

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tlp/transport"
)

// Method is the Vogel constructor. The zero value is usable and behaves as
// DefaultOptions().
type Method struct {
	// Epsilon: a row or column whose remainder drops below it is retired.
	Epsilon float64
}

// New returns a Method configured by opts on top of DefaultOptions.
func New(opts ...Option) *Method {
	m := DefaultOptions()
	for _, opt := range opts {
		opt(&m)
	}

	return &m
}

// FindInitialBFS runs VAM with default options.
func FindInitialBFS(p transport.Problem) (transport.BFSolution, error) {
	return DefaultOptions().FindInitialBFS(p)
}

// FindInitialBFS computes an initial basic feasible solution of p.
//
// Contract:
//   - p should be balanced; an unbalanced p leaves the surplus side partially
//     unshipped (the solver balances before calling).
//   - ErrEmptyProblem when supply or demand is empty.
//   - ErrDimensionMismatch when Costs is not len(Supply)×len(Demand).
//
// The returned Cost is computed over p.Costs.
func (m Method) FindInitialBFS(p transport.Problem) (transport.BFSolution, error) {
	rows, cols := len(p.Supply), len(p.Demand)
	if rows == 0 || cols == 0 {
		return transport.BFSolution{}, ErrEmptyProblem
	}
	if len(p.Costs) != rows {
		return transport.BFSolution{}, fmt.Errorf("costs has %d rows, want %d: %w", len(p.Costs), rows, ErrDimensionMismatch)
	}
	for i := range p.Costs {
		if len(p.Costs[i]) != cols {
			return transport.BFSolution{}, fmt.Errorf("costs[%d] has %d columns, want %d: %w", i, len(p.Costs[i]), cols, ErrDimensionMismatch)
		}
	}

	eps := m.Epsilon
	if eps <= 0 {
		eps = transport.Epsilon
	}

	// Working copies; p stays untouched.
	supply := append([]float64(nil), p.Supply...)
	demand := append([]float64(nil), p.Demand...)
	allocation := transport.NewMatrix(rows, cols)
	basis := make([]transport.Cell, 0, rows+cols-1)

	activeRows := fill(rows)
	activeCols := fill(cols)
	liveRows, liveCols := rows, cols

	var (
		r, c   int
		amount float64
	)
	for liveRows > 0 && liveCols > 0 {
		bestRow, maxRow, okRow := maxPenalty(p.Costs, activeRows, activeCols, true)
		bestCol, maxCol, okCol := maxPenalty(p.Costs, activeCols, activeRows, false)
		if !okRow && !okCol {
			break
		}

		// Rows win ties.
		if okRow && (!okCol || maxRow >= maxCol) {
			r = bestRow
			c = cheapest(p.Costs, r, activeCols, true)
		} else {
			c = bestCol
			r = cheapest(p.Costs, c, activeRows, false)
		}

		amount = math.Min(supply[r], demand[c])
		allocation[r][c] = amount
		basis = append(basis, transport.Cell{Row: r, Col: c})

		supply[r] -= amount
		demand[c] -= amount

		// Both may retire at once; that is where degenerate bases come from.
		if supply[r] < eps {
			activeRows[r] = false
			liveRows--
		}
		if demand[c] < eps {
			activeCols[c] = false
			liveCols--
		}
	}

	var cost float64
	for _, cell := range basis {
		cost += allocation[cell.Row][cell.Col] * p.Costs[cell.Row][cell.Col]
	}

	return transport.BFSolution{Allocation: allocation, Basis: basis, Cost: cost}, nil
}

// RowPenalties returns the VAM penalty of every row in rows, measured over
// the columns in cols. Rows with no column to compare are omitted.
func RowPenalties(costs [][]float64, rows, cols []int) map[int]float64 {
	return penalties(costs, rows, cols, true)
}

// ColPenalties returns the VAM penalty of every column in cols, measured over
// the rows in rows.
func ColPenalties(costs [][]float64, rows, cols []int) map[int]float64 {
	return penalties(costs, cols, rows, false)
}

func penalties(costs [][]float64, lines, others []int, byRow bool) map[int]float64 {
	width := 0
	for _, k := range others {
		if k+1 > width {
			width = k + 1
		}
	}
	mask := make([]bool, width)
	for _, k := range others {
		mask[k] = true
	}

	out := make(map[int]float64, len(lines))
	for _, line := range lines {
		if pen, ok := linePenalty(costs, line, mask, byRow); ok {
			out[line] = pen
		}
	}

	return out
}

// maxPenalty scans active lines in index order and returns the first line
// holding the largest penalty.
func maxPenalty(costs [][]float64, active, other []bool, byRow bool) (int, float64, bool) {
	var (
		best    = -1
		bestPen float64
		pen     float64
		ok      bool
	)
	for line, on := range active {
		if !on {
			continue
		}
		pen, ok = linePenalty(costs, line, other, byRow)
		if !ok {
			continue
		}
		if best < 0 || pen > bestPen {
			best, bestPen = line, pen
		}
	}

	return best, bestPen, best >= 0
}

// linePenalty is the gap between the two cheapest active costs on a line,
// or the lone cost when a single counterpart remains.
func linePenalty(costs [][]float64, line int, other []bool, byRow bool) (float64, bool) {
	var (
		min1, min2 = math.Inf(1), math.Inf(1)
		count      int
		x          float64
	)
	for k, on := range other {
		if !on {
			continue
		}
		x = at(costs, line, k, byRow)
		count++
		if x < min1 {
			min1, min2 = x, min1
		} else if x < min2 {
			min2 = x
		}
	}

	switch count {
	case 0:
		return 0, false
	case 1:
		return min1, true
	default:
		return min2 - min1, true
	}
}

// cheapest returns the first active counterpart with the lowest cost on line.
func cheapest(costs [][]float64, line int, other []bool, byRow bool) int {
	var (
		best    = -1
		bestVal float64
		x       float64
	)
	for k, on := range other {
		if !on {
			continue
		}
		x = at(costs, line, k, byRow)
		if best < 0 || x < bestVal {
			best, bestVal = k, x
		}
	}

	return best
}

func at(costs [][]float64, line, k int, byRow bool) float64 {
	if byRow {
		return costs[line][k]
	}

	return costs[k][line]
}

func fill(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}

	return out
}
