// SPDX-License-Identifier: MIT

// Package codec: value-level checks shared by all formats.
package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/tlp/transport"
)

// rawProblem holds undecoded values so each can be checked on its own.
type rawProblem struct {
	Supply []any   `json:"supply" yaml:"supply"`
	Demand []any   `json:"demand" yaml:"demand"`
	Costs  [][]any `json:"costs" yaml:"costs"`
}

// toProblem converts and checks every value, then validates the shape.
func (raw rawProblem) toProblem() (transport.Problem, error) {
	var (
		p   transport.Problem
		err error
	)
	if p.Supply, err = quantities("supply", raw.Supply); err != nil {
		return transport.Problem{}, err
	}
	if p.Demand, err = quantities("demand", raw.Demand); err != nil {
		return transport.Problem{}, err
	}
	if len(raw.Costs) == 0 {
		return transport.Problem{}, &FieldError{Field: "costs", Reason: ReasonEmpty}
	}

	p.Costs = make([][]float64, len(raw.Costs))
	for i, row := range raw.Costs {
		p.Costs[i] = make([]float64, len(row))
		for j, v := range row {
			if p.Costs[i][j], err = number(fmt.Sprintf("costs[%d][%d]", i, j), v); err != nil {
				return transport.Problem{}, err
			}
		}
	}

	if err = p.Validate(); err != nil {
		return transport.Problem{}, fmt.Errorf("%w: %w", ErrInvalidProblem, err)
	}

	return p, nil
}

func quantities(name string, vals []any) ([]float64, error) {
	if len(vals) == 0 {
		return nil, &FieldError{Field: name, Reason: ReasonEmpty}
	}

	out := make([]float64, len(vals))
	var (
		field string
		err   error
	)
	for i, v := range vals {
		field = fmt.Sprintf("%s[%d]", name, i)
		if out[i], err = number(field, v); err != nil {
			return nil, err
		}
		if out[i] < 0 {
			return nil, &FieldError{Field: field, Reason: fmt.Sprintf(ReasonNonNegative, out[i])}
		}
	}

	return out, nil
}

// number accepts decoded numbers and numeric strings.
func number(field string, v any) (float64, error) {
	var (
		x   float64
		err error
	)
	switch t := v.(type) {
	case nil:
		return 0, &FieldError{Field: field, Reason: ReasonEmpty}
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case float64:
		x = t
	case json.Number:
		if x, err = strconv.ParseFloat(t.String(), 64); err != nil {
			return 0, &FieldError{Field: field, Reason: fmt.Sprintf(ReasonFormat, t.String())}
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, &FieldError{Field: field, Reason: ReasonEmpty}
		}
		if x, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, &FieldError{Field: field, Reason: fmt.Sprintf(ReasonFormat, s)}
		}
	default:
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf(ReasonFormat, fmt.Sprint(t))}
	}

	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf(ReasonNotFinite, strconv.FormatFloat(x, 'g', -1, 64))}
	}

	return x, nil
}
