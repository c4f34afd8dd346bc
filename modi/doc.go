// SPDX-License-Identifier: MIT

// Package modi improves a basic feasible solution of a balanced
// transportation problem to optimality with the potential method
// (MODI, modified distribution).
//
// One iteration:
//
//  1. Potentials: u[0] = 0 and u[i] + v[j] = c[i][j] on every basic cell,
//     propagated by relaxation passes over the basis (at most m+n passes).
//     A potential that cannot be reached stays unassigned; it is never
//     confused with a legitimate zero.
//  2. Reduced costs: δ[i][j] = c[i][j] − u[i] − v[j] for non-basic cells whose
//     two potentials are assigned. Basic and unreachable cells count as +Inf.
//  3. Optimality: min δ ≥ −Epsilon ⇒ done.
//  4. Entering cell: the first minimum in row-major order.
//  5. Cycle: closed path through basic cells, alternating row and column
//     moves, starting and ending at the entering cell (FindCycle).
//  6. Pivot: θ = min allocation over the "−" cells (odd positions); add θ on
//     "+" cells, subtract on "−" cells; the first "−" cell that empties
//     leaves the basis, the entering cell joins it (Pivot).
//
// Failures never escape as panics: a missing cycle, an exhausted iteration
// budget or a malformed input all come back as a StatusError result.
//
// Complexity per iteration:
//   - Potentials: O((m+n)·|B|), reduced costs O(m·n).
//   - Cycle search: bounded DFS, path length ≤ 2(m+n).
//   - Pivot: O(|cycle| + |B|).
package modi
