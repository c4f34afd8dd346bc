// SPDX-License-Identifier: MIT

package codec

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tlp/transport"
)

// YAMLCodec handles YAML documents.
type YAMLCodec struct{}

// NewYAMLCodec creates a YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns FormatYAML.
func (c *YAMLCodec) Format() Format {
	return FormatYAML
}

// DecodeProblem reads the first YAML document from r.
func (c *YAMLCodec) DecodeProblem(r io.Reader) (transport.Problem, error) {
	var raw rawProblem
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return transport.Problem{}, fmt.Errorf("%w: empty document", ErrInvalidProblem)
		}

		return transport.Problem{}, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidProblem, err)
	}

	return raw.toProblem()
}

// Encode writes v as YAML with two-space indentation.
func (c *YAMLCodec) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return enc.Close()
}
