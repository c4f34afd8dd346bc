// SPDX-License-Identifier: MIT

// Package modi: pivot cycle discovery.
//
// The basis plus the entering cell is read as a bipartite graph (rows and
// columns as nodes, cells as edges). FindCycle walks it depth-first with an
// explicit stack, alternating row and column moves:
//
//	enter ──row── a
//	              │col
//	  │col        b ──row── c
//	  └──────────────────────┘ (c shares enter's column)
//
// Traversal order is fixed: the first move is along the entering cell's
// row and neighbours are visited in basis insertion order, with the
// entering cell last. The same inputs always produce the same cycle.
package modi

import "github.com/katalvlaran/tlp/transport"

// frame is one DFS level: the cell reached and the direction of the next move.
type frame struct {
	cell     transport.Cell
	alongRow bool
	next     int
}

// FindCycle returns the closed pivot cycle through enter, or false when none
// exists.
//
// Contract:
//   - the result starts and ends with enter;
//   - consecutive cells share a row or a column, never both, and moves
//     alternate (row first);
//   - the open part has an even number of cells, at least four;
//   - every cell other than enter is basic.
//
// The search never steps straight back along the move it came from, never
// revisits a cell on the current path and abandons paths longer than 2(m+n).
func FindCycle(enter transport.Cell, basis []transport.Cell, m, n int) ([]transport.Cell, bool) {
	if m <= 0 || n <= 0 {
		return nil, false
	}

	// Adjacency is rebuilt from scratch: row → columns, column → rows.
	rows := make([][]int, m)
	cols := make([][]int, n)
	for _, c := range basis {
		rows[c.Row] = append(rows[c.Row], c.Col)
		cols[c.Col] = append(cols[c.Col], c.Row)
	}
	rows[enter.Row] = append(rows[enter.Row], enter.Col)
	cols[enter.Col] = append(cols[enter.Col], enter.Row)

	var (
		limit   = 2 * (m + n)
		onPath  = make([]bool, m*n)
		path    = make([]transport.Cell, 0, limit+1)
		stack   = make([]frame, 0, limit+1)
		top     *frame
		nbrs    []int
		k       int
		c       transport.Cell
		descend bool
	)
	path = append(path, enter)
	onPath[enter.Row*n+enter.Col] = true
	stack = append(stack, frame{cell: enter, alongRow: true})

	for len(stack) > 0 {
		top = &stack[len(stack)-1]
		if top.alongRow {
			nbrs = rows[top.cell.Row]
		} else {
			nbrs = cols[top.cell.Col]
		}

		descend = false
		for top.next < len(nbrs) {
			k = nbrs[top.next]
			top.next++

			if top.alongRow {
				if k == top.cell.Col {
					continue
				}
				c = transport.Cell{Row: top.cell.Row, Col: k}
			} else {
				if k == top.cell.Row {
					continue
				}
				c = transport.Cell{Row: k, Col: top.cell.Col}
			}
			if onPath[c.Row*n+c.Col] {
				continue
			}

			path = append(path, c)
			// A row move that lands in enter's column closes the loop.
			if top.alongRow && len(path) >= 4 && c.Col == enter.Col {
				return append(path, enter), true
			}
			if len(path) > limit {
				path = path[:len(path)-1]
				continue
			}

			onPath[c.Row*n+c.Col] = true
			stack = append(stack, frame{cell: c, alongRow: !top.alongRow})
			descend = true
			break
		}

		if !descend {
			onPath[top.cell.Row*n+top.cell.Col] = false
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}

	return nil, false
}
