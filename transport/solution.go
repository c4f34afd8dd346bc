// SPDX-License-Identifier: MIT

// Package transport: basic feasible solutions and terminal results.
package transport

// BFSolution is a basic feasible solution.
//   - Allocation is m×n, Allocation[i][j] ≥ 0 is the amount shipped i→j.
//   - Basis lists the basic cells in insertion order; cells may hold 0
//     (degenerate basis).
//   - Cost caches Σ Allocation[i][j]·Costs[i][j].
type BFSolution struct {
	Allocation [][]float64 `json:"allocation" yaml:"allocation"`
	Basis      []Cell      `json:"basis" yaml:"basis"`
	Cost       float64     `json:"cost" yaml:"cost"`
}

// Clone returns a deep copy of s.
func (s BFSolution) Clone() BFSolution {
	return BFSolution{
		Allocation: CloneMatrix(s.Allocation),
		Basis:      append([]Cell(nil), s.Basis...),
		Cost:       s.Cost,
	}
}

// Result is the outcome of a solve.
//
// Exactly one of the following holds:
//   - Status == StatusOptimal: OptimalValue, Solution and Basis are set.
//   - otherwise: ErrorMessage is set and Err carries the matching sentinel.
type Result struct {
	Status       Status      `json:"status" yaml:"status"`
	OptimalValue *float64    `json:"optimal_value,omitempty" yaml:"optimal_value,omitempty"`
	Solution     [][]float64 `json:"solution,omitempty" yaml:"solution,omitempty"`
	Basis        []Cell      `json:"basis,omitempty" yaml:"basis,omitempty"`
	Iterations   int         `json:"iterations" yaml:"iterations"`
	ErrorMessage string      `json:"error_message,omitempty" yaml:"error_message,omitempty"`

	// Err is the underlying error for errors.Is checks; never serialised.
	Err error `json:"-" yaml:"-"`
}

// NewOptimal builds an OPTIMAL result. The allocation and basis are copied.
func NewOptimal(allocation [][]float64, basis []Cell, value float64, iterations int) Result {
	v := value

	return Result{
		Status:       StatusOptimal,
		OptimalValue: &v,
		Solution:     CloneMatrix(allocation),
		Basis:        append([]Cell(nil), basis...),
		Iterations:   iterations,
	}
}

// NewFailure builds a failed result with the given status.
// An empty msg falls back to err.Error().
func NewFailure(status Status, err error, msg string) Result {
	if msg == "" && err != nil {
		msg = err.Error()
	}

	return Result{
		Status:       status,
		ErrorMessage: msg,
		Err:          err,
	}
}

// IsOptimal reports whether r carries an optimal plan.
func (r Result) IsOptimal() bool {
	return r.Status == StatusOptimal && r.Solution != nil
}

// Value returns the optimal value, or 0 and false when absent.
func (r Result) Value() (float64, bool) {
	if r.OptimalValue == nil {
		return 0, false
	}

	return *r.OptimalValue, true
}

// TotalCost returns Σ allocation[i][j]·costs[i][j] over the common shape.
func TotalCost(allocation, costs [][]float64) float64 {
	var total float64
	for i := range allocation {
		if i >= len(costs) {
			break
		}
		for j, x := range allocation[i] {
			if j >= len(costs[i]) {
				break
			}
			total += x * costs[i][j]
		}
	}

	return total
}

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}

	return out
}

// CloneMatrix deep-copies a; nil stays nil.
func CloneMatrix(a [][]float64) [][]float64 {
	if a == nil {
		return nil
	}
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = append([]float64(nil), a[i]...)
	}

	return out
}

// RowSums returns Σ_j a[i][j] for every row.
func RowSums(a [][]float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = sum(a[i])
	}

	return out
}

// ColSums returns Σ_i a[i][j] for every column of an m×n matrix.
func ColSums(a [][]float64) []float64 {
	if len(a) == 0 {
		return nil
	}
	out := make([]float64, len(a[0]))
	for i := range a {
		for j := range a[i] {
			if j < len(out) {
				out[j] += a[i][j]
			}
		}
	}

	return out
}
