// SPDX-License-Identifier: MIT

// Package report: text rendering.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/katalvlaran/tlp/transport"
)

// ZeroTolerance: amounts with |x| below it are treated as no shipment.
const ZeroTolerance = 1e-6

// Empty is printed for a zero cell.
const Empty = "—"

const (
	ruleWidth     = 60
	minCellWidth  = 8
	dummySuffix   = "*"
	noOptimalText = "No optimal solution available."
)

// StatusLabel returns the human label of s. Unknown values are capitalised
// as given.
func StatusLabel(s transport.Status) string {
	switch s {
	case transport.StatusOptimal:
		return "Optimal"
	case transport.StatusInfeasible:
		return "Infeasible"
	case transport.StatusError:
		return "Error"
	case transport.StatusUnbounded:
		return "Unbounded"
	case transport.StatusPending:
		return "Pending"
	case transport.StatusUnknown:
		return "Unknown"
	}
	raw := strings.ToLower(string(s))
	if raw == "" {
		return "Unknown"
	}

	return strings.ToUpper(raw[:1]) + raw[1:]
}

// CostLine formats the objective value.
func CostLine(v float64) string {
	return fmt.Sprintf("Total Transportation Cost: %.2f", v)
}

// Amount formats one allocation cell.
func Amount(v float64) string {
	if math.Abs(v) < ZeroTolerance {
		return Empty
	}

	return fmt.Sprintf("%.2f", v)
}

// Labels returns supplier and consumer labels for an m×n plan. The padded
// side, if any, is the last row or column and carries a trailing "*".
func Labels(m, n int, dummy transport.DummyKind) (rows, cols []string) {
	rows = make([]string, m)
	for i := range rows {
		rows[i] = fmt.Sprintf("A%d", i+1)
	}
	cols = make([]string, n)
	for j := range cols {
		cols[j] = fmt.Sprintf("B%d", j+1)
	}
	switch {
	case dummy == transport.DummySupplier && m > 0:
		rows[m-1] += dummySuffix
	case dummy == transport.DummyConsumer && n > 0:
		cols[n-1] += dummySuffix
	}

	return rows, cols
}

// Summary renders the cost and the active routes of an optimal result.
func Summary(res transport.Result) string {
	return SummaryWithDummy(res, transport.DummyNone)
}

// SummaryWithDummy is Summary with the padded side marked.
func SummaryWithDummy(res transport.Result, dummy transport.DummyKind) string {
	v, ok := res.Value()
	if !res.IsOptimal() || !ok {
		return noOptimalText
	}

	m := len(res.Solution)
	n := 0
	if m > 0 {
		n = len(res.Solution[0])
	}
	rows, cols := Labels(m, n, dummy)

	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(rule + "\n")
	b.WriteString("TRANSPORTATION SOLUTION SUMMARY\n")
	b.WriteString(rule + "\n\n")
	b.WriteString(CostLine(v) + "\n\n")
	b.WriteString("Transportation Routes (non-zero allocations):\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	routes := 0
	for i := range res.Solution {
		for j, x := range res.Solution[i] {
			if x <= ZeroTolerance {
				continue
			}
			routes++
			fmt.Fprintf(&b, "  %s → %s: %.2f units\n", rows[i], cols[j], x)
		}
	}
	if routes == 0 {
		b.WriteString("  No active routes\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total active routes: %d\n", routes)
	b.WriteString(rule)

	return b.String()
}

// Table renders matrix as a fixed-width text table. Nil labels default to
// "Row i" and "Col j".
func Table(matrix [][]float64, rowLabels, colLabels []string) string {
	if len(matrix) == 0 {
		return "Empty matrix"
	}
	rows, cols := len(matrix), len(matrix[0])
	if rowLabels == nil {
		rowLabels = make([]string, rows)
		for i := range rowLabels {
			rowLabels[i] = fmt.Sprintf("Row %d", i+1)
		}
	}
	if colLabels == nil {
		colLabels = make([]string, cols)
		for j := range colLabels {
			colLabels[j] = fmt.Sprintf("Col %d", j+1)
		}
	}

	widths := make([]int, cols)
	for j := range widths {
		widths[j] = max(utf8.RuneCountInString(label(colLabels, j)), minCellWidth)
	}
	labelWidth := 0
	for i := 0; i < rows; i++ {
		labelWidth = max(labelWidth, utf8.RuneCountInString(label(rowLabels, i)))
	}

	var b strings.Builder
	header := line("", labelWidth, widths, func(j int) string { return label(colLabels, j) })
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("-", utf8.RuneCountInString(header)))
	for i, row := range matrix {
		b.WriteString("\n")
		b.WriteString(line(label(rowLabels, i), labelWidth, widths, func(j int) string {
			if j < len(row) {
				return Amount(row[j])
			}

			return ""
		}))
	}

	return b.String()
}

// Write prints the status, the summary and, for optimal results, the
// allocation table.
func Write(w io.Writer, res transport.Result, dummy transport.DummyKind) error {
	if _, err := fmt.Fprintf(w, "Status: %s\n", StatusLabel(res.Status)); err != nil {
		return err
	}
	if !res.IsOptimal() {
		_, err := fmt.Fprintf(w, "%s\n", res.ErrorMessage)

		return err
	}

	m, n := len(res.Solution), 0
	if m > 0 {
		n = len(res.Solution[0])
	}
	rows, cols := Labels(m, n, dummy)
	_, err := fmt.Fprintf(w, "%s\n\n%s\n", SummaryWithDummy(res, dummy), Table(res.Solution, rows, cols))

	return err
}

// line renders one row: the left-aligned label and right-aligned cells.
func line(head string, headWidth int, widths []int, cell func(int) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s |", headWidth, head)
	for j, wd := range widths {
		fmt.Fprintf(&b, " %*s |", wd, cell(j))
	}

	return b.String()
}

func label(labels []string, k int) string {
	if k < len(labels) {
		return labels[k]
	}

	return ""
}
