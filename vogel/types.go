// SPDX-License-Identifier: MIT

// Package vogel: sentinels and options.
package vogel

import (
	"errors"

	"github.com/katalvlaran/tlp/transport"
)

var (
	// ErrEmptyProblem is returned when supply or demand is empty.
	ErrEmptyProblem = errors.New("vogel: empty supply or demand")

	// ErrDimensionMismatch is returned when Costs is not m×n.
	ErrDimensionMismatch = errors.New("vogel: cost matrix dimension mismatch")
)

// Option configures a Method.
type Option func(*Method)

// WithEpsilon sets the exhaustion tolerance. Non-positive values are ignored.
func WithEpsilon(eps float64) Option {
	return func(m *Method) {
		if eps > 0 {
			m.Epsilon = eps
		}
	}
}

// DefaultOptions returns a Method with Epsilon = transport.Epsilon.
func DefaultOptions() Method {
	return Method{Epsilon: transport.Epsilon}
}
