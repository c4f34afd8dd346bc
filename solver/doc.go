// SPDX-License-Identifier: MIT

// Package solver wires the two phases of the transportation method:
//
//	Problem ──Balance──▶ balanced Problem ──BFSFinder──▶ BFSolution ──Algorithm──▶ Result
//
// The defaults are vogel.Method for the initial basic feasible solution and
// modi.Optimizer for the improvement phase; both can be swapped through
// options.
//
// Balancing: when total supply and total demand differ by more than
// transport.BalanceTolerance, a zero-cost dummy consumer (supply excess) or
// dummy supplier (demand excess) absorbs the gap. The caller's Problem is
// never modified; Run reports the balanced problem and which side was
// padded, and the Result is expressed over the balanced shape.
//
// Failures never surface as Go errors or panics: a missing initial solution
// is StatusInfeasible ("No initial BFS found."), everything else that goes
// wrong is StatusError. A Solver holds no per-call state and may be shared
// between goroutines.
package solver
