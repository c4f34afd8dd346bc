// SPDX-License-Identifier: MIT

// Package report renders solve results as plain text: a status label, the
// cost line, the list of active routes and an allocation table.
//
// Suppliers are labelled A1..Am and consumers B1..Bn; a dummy side added by
// balancing is marked so that its "shipments" read as unmet demand or
// unshipped supply. Amounts below ZeroTolerance count as empty and print as
// an em dash in tables.
package report
