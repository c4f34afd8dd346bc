// Package tlp solves the balanced transportation linear program: ship goods
// from m suppliers to n consumers at minimum total cost.
//
// 🚀 What is in the box?
//
//   - transport/ — Problem, BFSolution, Result, Cell and the shared helpers
//   - vogel/     — Vogel's approximation method (initial basic feasible solution)
//   - modi/      — MODI / u-v potentials optimizer (cycle search, θ-pivot)
//   - solver/    — balancing + the two phases behind one Solve call
//   - codec/     — YAML / JSON problem files with field-level checks
//   - report/    — plain-text summary and allocation tables
//
// The service side lives under internal/ (config, store, bus, metrics,
// api, service) and is run by two commands:
//
//	cmd/tlpd     — HTTP API, metrics server, optional NATS responder
//	cmd/tlpsolve — read a problem file, solve, print a report
//
// Quick example:
//
//	      B1  B2
//	A1 │  2   3 │ 20
//	A2 │  4   1 │ 30
//	      25  25
//
//	res := solver.Solve(transport.Problem{
//		Supply: []float64{20, 30},
//		Demand: []float64{25, 25},
//		Costs:  [][]float64{{2, 3}, {4, 1}},
//	})
//	// res.Status == transport.StatusOptimal, *res.OptimalValue == 85
//
// The library packages never log and never panic outward; every failure is a
// Result with StatusInfeasible or StatusError.
//
//	go get github.com/katalvlaran/tlp
package tlp
