// SPDX-License-Identifier: MIT

// Package codec reads problems from and writes results to YAML and JSON.
//
// Problem documents have three keys:
//
//	supply: [30, 40, 50]
//	demand: [35, 28, 57]
//	costs:
//	  - [8, 6, 10]
//	  - [9, 12, 13]
//	  - [14, 9, 16]
//
// Values may be numbers or numeric strings. Decoding checks every value and
// reports the first bad one as a *FieldError naming it (supply[2],
// costs[1][0]): empty values, malformed numbers, non-finite numbers and
// negative supply or demand. Shape errors (ragged or mis-sized cost rows)
// come back wrapped from transport.Problem.Validate.
package codec
