// SPDX-License-Identifier: MIT

// Package modi: allocation update along a cycle and basis exchange.
package modi

import (
	"math"

	"github.com/katalvlaran/tlp/transport"
)

// Pivot shifts θ around cycle and exchanges one basis cell.
//
// Contract:
//   - cycle starts with the entering cell; a trailing copy of it is ignored.
//   - even positions are "+" cells, odd positions are "−" cells.
//   - allocation is updated in place; basis is not modified, the new basis
//     is returned (leaving cell removed, entering cell appended).
//   - the leaving cell is the first "−" cell (cycle order) that drops below
//     Epsilon; its allocation is snapped to exactly 0.
func (o Optimizer) Pivot(allocation [][]float64, basis []transport.Cell, cycle []transport.Cell) ([]transport.Cell, Step) {
	eps := o.eps()
	if len(cycle) > 1 && cycle[0] == cycle[len(cycle)-1] {
		cycle = cycle[:len(cycle)-1]
	}

	step := Step{Entering: cycle[0], Cycle: append([]transport.Cell(nil), cycle...)}

	// θ = min over "−" cells.
	theta := math.Inf(1)
	var idx int
	for idx = 1; idx < len(cycle); idx += 2 {
		theta = math.Min(theta, allocation[cycle[idx].Row][cycle[idx].Col])
	}
	if theta < eps {
		theta = o.degenerateTheta(allocation, cycle, theta)
	}
	step.Theta = theta

	var c transport.Cell
	for idx, c = range cycle {
		if idx%2 == 0 {
			allocation[c.Row][c.Col] += theta
		} else {
			allocation[c.Row][c.Col] -= theta
		}
	}

	for idx = 1; idx < len(cycle); idx += 2 {
		c = cycle[idx]
		if allocation[c.Row][c.Col] < eps {
			allocation[c.Row][c.Col] = 0
			step.Leaving, step.Left = c, true
			break
		}
	}

	next := make([]transport.Cell, 0, len(basis)+1)
	for _, b := range basis {
		if step.Left && b == step.Leaving {
			continue
		}
		next = append(next, b)
	}
	next = append(next, step.Entering)

	return next, step
}

// degenerateTheta applies the configured policy to a θ below Epsilon.
func (o Optimizer) degenerateTheta(allocation [][]float64, cycle []transport.Cell, theta float64) float64 {
	switch o.Degenerate {
	case DegenerateSmallestPositive:
		eps := o.eps()
		best := math.Inf(1)
		var x float64
		for idx := 1; idx < len(cycle); idx += 2 {
			x = allocation[cycle[idx].Row][cycle[idx].Col]
			if x > eps && x < best {
				best = x
			}
		}
		if math.IsInf(best, 1) {
			return eps
		}

		return best
	default:
		// Malformed inputs may carry a negative "−" cell; never pivot backwards.
		return math.Max(theta, 0)
	}
}
