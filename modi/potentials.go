// SPDX-License-Identifier: MIT

// Package modi: dual potentials and reduced costs.
package modi

import (
	"math"

	"github.com/katalvlaran/tlp/transport"
)

// ComputePotentials derives u (rows) and v (columns) from the basic cells.
//
// u[0] is anchored at 0. Each pass scans the basis in order and, for every
// cell with exactly one known side, derives the other from
// u[i] + v[j] = costs[i][j]. Passes stop when nothing changes or after m+n
// passes. Potentials in a component not connected to row 0 stay unassigned.
func ComputePotentials(costs [][]float64, basis []transport.Cell, m, n int) Potentials {
	pot := Potentials{
		U: make([]Potential, m),
		V: make([]Potential, n),
	}
	if m == 0 {
		return pot
	}
	pot.U[0] = Potential{Value: 0, Assigned: true}

	var (
		pass    int
		updated = true
		u, v    *Potential
	)
	for pass = 0; updated && pass < m+n; pass++ {
		updated = false
		for _, c := range basis {
			u, v = &pot.U[c.Row], &pot.V[c.Col]
			switch {
			case !u.Assigned && v.Assigned:
				*u = Potential{Value: costs[c.Row][c.Col] - v.Value, Assigned: true}
				updated = true
			case !v.Assigned && u.Assigned:
				*v = Potential{Value: costs[c.Row][c.Col] - u.Value, Assigned: true}
				updated = true
			}
		}
	}

	return pot
}

// ReducedCosts returns the m×n reduced-cost matrix. Basic cells and cells
// with an unassigned potential are +Inf, so they never look improving.
func ReducedCosts(costs [][]float64, basis []transport.Cell, pot Potentials) [][]float64 {
	m, n := len(pot.U), len(pot.V)
	member := basisMask(basis, m, n)

	out := transport.NewMatrix(m, n)
	var (
		i, j int
		d    float64
		ok   bool
	)
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			if member[i*n+j] {
				out[i][j] = math.Inf(1)
				continue
			}
			if d, ok = pot.Reduced(costs[i][j], i, j); !ok {
				out[i][j] = math.Inf(1)
				continue
			}
			out[i][j] = d
		}
	}

	return out
}

// entering returns the first cell, in row-major order, holding the smallest
// reduced cost. found is false when every cell is +Inf.
func entering(reduced [][]float64) (cell transport.Cell, delta float64, found bool) {
	delta = math.Inf(1)
	for i := range reduced {
		for j, d := range reduced[i] {
			if d < delta {
				cell, delta, found = transport.Cell{Row: i, Col: j}, d, true
			}
		}
	}

	return cell, delta, found
}

// basisMask flags basic cells in a row-major m·n slice.
func basisMask(basis []transport.Cell, m, n int) []bool {
	member := make([]bool, m*n)
	for _, c := range basis {
		member[c.Row*n+c.Col] = true
	}

	return member
}
