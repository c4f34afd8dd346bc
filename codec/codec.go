// SPDX-License-Identifier: MIT

// Package codec: formats, errors and entry points.
package codec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/tlp/transport"
)

// Format names a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	// ErrUnknownFormat is returned for an unsupported format or extension.
	ErrUnknownFormat = errors.New("codec: unknown format")

	// ErrInvalidProblem wraps every decoding failure.
	ErrInvalidProblem = errors.New("codec: invalid problem")
)

// Reasons carried by FieldError.
const (
	ReasonEmpty       = "Value cannot be empty"
	ReasonFormat      = "Invalid number format '%s'"
	ReasonNotFinite   = "Value must be finite (got %s)"
	ReasonNonNegative = "Value must be non-negative (got %g)"
)

// FieldError points at a single bad value.
type FieldError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Is makes errors.Is(err, ErrInvalidProblem) hold for field errors.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidProblem
}

// Codec converts problems and results for one format.
type Codec interface {
	Format() Format
	DecodeProblem(r io.Reader) (transport.Problem, error)
	Encode(w io.Writer, v any) error
}

// For returns the codec of f.
func For(f Format) (Codec, error) {
	switch f {
	case FormatYAML:
		return NewYAMLCodec(), nil
	case FormatJSON:
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// ParseFormat maps a user-supplied name ("yaml", "yml", "json") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%s has no extension: %w", path, ErrUnknownFormat)
	}

	return ParseFormat(ext)
}

// Decode reads one problem document in format f.
func Decode(r io.Reader, f Format) (transport.Problem, error) {
	c, err := For(f)
	if err != nil {
		return transport.Problem{}, err
	}

	return c.DecodeProblem(r)
}

// DecodeFile reads a problem from path; the extension selects the format.
func DecodeFile(path string) (transport.Problem, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return transport.Problem{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return transport.Problem{}, fmt.Errorf("open problem: %w", err)
	}
	defer file.Close()

	p, err := Decode(file, f)
	if err != nil {
		return transport.Problem{}, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// EncodeProblem writes p in format f.
func EncodeProblem(w io.Writer, p transport.Problem, f Format) error {
	c, err := For(f)
	if err != nil {
		return err
	}

	return c.Encode(w, p)
}

// EncodeResult writes res in format f.
func EncodeResult(w io.Writer, res transport.Result, f Format) error {
	c, err := For(f)
	if err != nil {
		return err
	}

	return c.Encode(w, res)
}
