// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/tlp/transport"
)

// JSONCodec handles JSON documents.
type JSONCodec struct{}

// NewJSONCodec creates a JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns FormatJSON.
func (c *JSONCodec) Format() Format {
	return FormatJSON
}

// DecodeProblem reads one JSON object from r. Numbers keep their source
// text until checked.
func (c *JSONCodec) DecodeProblem(r io.Reader) (transport.Problem, error) {
	var raw rawProblem
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return transport.Problem{}, fmt.Errorf("%w: empty document", ErrInvalidProblem)
		}

		return transport.Problem{}, fmt.Errorf("%w: failed to parse JSON: %w", ErrInvalidProblem, err)
	}

	return raw.toProblem()
}

// Encode writes v as indented JSON.
func (c *JSONCodec) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
