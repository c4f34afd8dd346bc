// SPDX-License-Identifier: MIT

// Package transport: sentinel errors, numeric tolerances, Status and Cell.
package transport

import (
	"errors"
	"fmt"
)

const (
	// Epsilon is the default numeric tolerance used by the solvers for the
	// optimality test, exhaustion checks and zero snapping.
	Epsilon = 1e-10

	// BalanceTolerance is the maximal |ΣSupply − ΣDemand| still treated as balanced.
	BalanceTolerance = 1e-6
)

var (
	// ErrEmptyProblem is returned when supply or demand has no entries.
	ErrEmptyProblem = errors.New("transport: empty supply or demand")

	// ErrDimensionMismatch indicates that Costs is not len(Supply)×len(Demand).
	ErrDimensionMismatch = errors.New("transport: cost matrix dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value in supply, demand or costs.
	ErrNaNInf = errors.New("transport: NaN or Inf encountered")

	// ErrNegativeQuantity signals a negative supply or demand value.
	ErrNegativeQuantity = errors.New("transport: negative supply or demand")
)

// Status is the terminal state of a solve.
type Status string

// The core only ever produces StatusOptimal, StatusInfeasible and StatusError.
// The remaining values are reserved for presentation layers.
const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusError      Status = "error"
	StatusUnbounded  Status = "unbounded"
	StatusUnknown    Status = "unknown"
	StatusPending    Status = "pending"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOptimal, StatusInfeasible, StatusError,
		StatusUnbounded, StatusUnknown, StatusPending:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string { return string(s) }

// Cell addresses one route (supplier Row → consumer Col).
type Cell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String renders the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
