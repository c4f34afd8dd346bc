// SPDX-License-Identifier: MIT

// Package modi: completion of degenerate bases.
package modi

import "github.com/katalvlaran/tlp/transport"

// CompleteBasis returns basis extended with zero-allocation cells until the
// rows and columns form a single connected component.
//
// While more than one component remains, the cheapest cell (first in
// row-major order on ties) whose row and column lie in different components
// is appended. An acyclic basis therefore grows into a spanning tree with
// exactly m+n−1 cells. The input slice is not modified.
//
// Complexity: O((m+n)·m·n) in the worst case.
func CompleteBasis(costs [][]float64, basis []transport.Cell, m, n int) []transport.Cell {
	out := append([]transport.Cell(nil), basis...)
	if m == 0 || n == 0 {
		return out
	}

	// Nodes 0..m-1 are rows, m..m+n-1 are columns.
	ds := newDisjointSet(m + n)
	for _, c := range basis {
		ds.union(c.Row, m+c.Col)
	}

	var (
		i, j   int
		best   transport.Cell
		bestC  float64
		picked bool
	)
	for ds.sets > 1 {
		picked = false
		for i = 0; i < m; i++ {
			for j = 0; j < n; j++ {
				if ds.find(i) == ds.find(m+j) {
					continue
				}
				if !picked || costs[i][j] < bestC {
					best, bestC, picked = transport.Cell{Row: i, Col: j}, costs[i][j], true
				}
			}
		}
		if !picked {
			break
		}
		ds.union(best.Row, m+best.Col)
		out = append(out, best)
	}

	return out
}

// disjointSet is a union-find with path halving and union by size.
type disjointSet struct {
	parent []int
	size   []int
	sets   int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), size: make([]int, n), sets: n}
	for i := range ds.parent {
		ds.parent[i] = i
		ds.size[i] = 1
	}

	return ds
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}

	return x
}

func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.size[ra] < d.size[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	d.sets--
}
