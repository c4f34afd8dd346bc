// SPDX-License-Identifier: MIT

// Package vogel builds an initial basic feasible solution for a balanced
// transportation problem with Vogel's Approximation Method (VAM).
//
// Method:
//
//	while some row and some column are still active:
//	  penalty(row) = 2nd cheapest − cheapest active cost in the row
//	                 (the lone cost when one active column is left)
//	  penalty(col) = same over active rows
//	  pick the row (ties: rows win) or column with the largest penalty,
//	  then its cheapest active cell, ship min(supply, demand) there
//	  and retire whatever side is exhausted.
//
// Determinism:
//   - Rows are preferred over columns when maxRowPenalty ≥ maxColPenalty.
//   - Penalty ties resolve to the lowest index; cost ties to the lowest index.
//   - The basis keeps insertion order.
//
// Degeneracy: when a row and a column run out at the same time both are
// retired and the basis ends up with fewer than m+n−1 cells. A cell is
// recorded even when the amount shipped is exactly zero.
//
// Complexity:
//   - Time:   O((m+n)·m·n) — at most m+n allocations, O(m·n) penalties each.
//   - Memory: O(m·n) for the allocation.
package vogel
