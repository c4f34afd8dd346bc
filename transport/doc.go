// SPDX-License-Identifier: MIT

// Package transport defines the value types shared by the transportation
// solvers: the Problem instance, a basic feasible solution (BFSolution) and
// the terminal Result of an optimisation run.
//
// A transportation instance has m suppliers with fixed Supply, n consumers
// with fixed Demand and an m×n Costs matrix. A shipment plan is an m×n
// allocation whose row sums equal Supply and whose column sums equal Demand.
//
//	        B1   B2   B3    Supply
//	   A1 [  8    6   10 ]    30
//	   A2 [  9   12   13 ]    40
//	   A3 [ 14    9   16 ]    50
//	Demand 35   28   57
//
// Basis cells (Cell{Row, Col}) are the routes allowed to carry a non-zero
// amount. Viewed as a bipartite graph with suppliers and consumers as nodes
// and basis cells as edges, a non-degenerate basis is a spanning tree with
// exactly m+n−1 edges.
//
// Lifecycle:
//   - Problem is built once by the caller and never mutated by the solvers;
//     Balance returns a new Problem.
//   - BFSolution is produced by an initial-solution constructor and then
//     owned by the optimiser, which works on its own copy.
//   - Result is the immutable outcome handed back to the caller.
//
// Validation (Validate) is the caller's responsibility; the solvers assume a
// well-formed Problem and convert any fault into a failed Result.
package transport
