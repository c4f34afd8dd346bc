// SPDX-License-Identifier: MIT

package codec_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tlp/codec"
	"github.com/katalvlaran/tlp/transport"
)

const yamlProblem = `
supply: [30, 40, 50]
demand: [35, 28, "57"]
costs:
  - [8, 6, 10]
  - [9, 12, 13.5]
  - [14, 9, 16]
`

const jsonProblem = `{"supply":[20,30],"demand":[25,25],"costs":[[2,3],[4,1]]}`

func TestDecode_YAML(t *testing.T) {
	p, err := codec.Decode(strings.NewReader(yamlProblem), codec.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 40, 50}, p.Supply)
	assert.Equal(t, []float64{35, 28, 57}, p.Demand)
	assert.Equal(t, 13.5, p.Costs[1][2])
}

func TestDecode_JSON(t *testing.T) {
	p, err := codec.Decode(strings.NewReader(jsonProblem), codec.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, transport.Problem{
		Supply: []float64{20, 30},
		Demand: []float64{25, 25},
		Costs:  [][]float64{{2, 3}, {4, 1}},
	}, p)
}

func TestDecode_FieldErrors(t *testing.T) {
	cases := []struct {
		name   string
		doc    string
		field  string
		reason string
	}{
		{"empty string", `{"supply":[1,""],"demand":[1],"costs":[[1]]}`, "supply[1]", "Value cannot be empty"},
		{"null", `{"supply":[1],"demand":[null],"costs":[[1]]}`, "demand[0]", "Value cannot be empty"},
		{"bad number", `{"supply":[1],"demand":[1],"costs":[["abc"]]}`, "costs[0][0]", "Invalid number format 'abc'"},
		{"negative", `{"supply":[1],"demand":[-2],"costs":[[1]]}`, "demand[0]", "Value must be non-negative (got -2)"},
		{"missing supply", `{"demand":[1],"costs":[[1]]}`, "supply", "Value cannot be empty"},
		{"missing costs", `{"supply":[1],"demand":[1]}`, "costs", "Value cannot be empty"},
		{"not finite", `{"supply":[1],"demand":[1],"costs":[["NaN"]]}`, "costs[0][0]", "Value must be finite (got NaN)"},
		{"wrong type", `{"supply":[true],"demand":[1],"costs":[[1]]}`, "supply[0]", "Invalid number format 'true'"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(strings.NewReader(tc.doc), codec.FormatJSON)
			require.Error(t, err)

			var fe *codec.FieldError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tc.field, fe.Field)
			assert.Equal(t, tc.reason, fe.Reason)
			assert.True(t, errors.Is(err, codec.ErrInvalidProblem))
		})
	}
}

func TestDecode_YAMLFieldError(t *testing.T) {
	doc := "supply: [10, ~]\ndemand: [10]\ncosts: [[1], [2]]\n"
	_, err := codec.Decode(strings.NewReader(doc), codec.FormatYAML)

	var fe *codec.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "supply[1]", fe.Field)
	assert.Equal(t, "supply[1]: Value cannot be empty", fe.Error())
}

func TestDecode_ShapeError(t *testing.T) {
	doc := `{"supply":[1,2],"demand":[3],"costs":[[1]]}`
	_, err := codec.Decode(strings.NewReader(doc), codec.FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrInvalidProblem))
	assert.True(t, errors.Is(err, transport.ErrDimensionMismatch))
}

func TestDecode_Malformed(t *testing.T) {
	for _, f := range []codec.Format{codec.FormatJSON, codec.FormatYAML} {
		_, err := codec.Decode(strings.NewReader("{supply: ["), f)
		assert.True(t, errors.Is(err, codec.ErrInvalidProblem), "%s: %v", f, err)

		_, err = codec.Decode(strings.NewReader(""), f)
		assert.True(t, errors.Is(err, codec.ErrInvalidProblem), "%s empty: %v", f, err)
	}
}

func TestFormats(t *testing.T) {
	f, err := codec.FormatFromPath("dir/problem.YML")
	require.NoError(t, err)
	assert.Equal(t, codec.FormatYAML, f)

	f, err = codec.FormatFromPath("problem.json")
	require.NoError(t, err)
	assert.Equal(t, codec.FormatJSON, f)

	_, err = codec.FormatFromPath("problem.csv")
	assert.True(t, errors.Is(err, codec.ErrUnknownFormat))
	_, err = codec.FormatFromPath("problem")
	assert.True(t, errors.Is(err, codec.ErrUnknownFormat))

	_, err = codec.Decode(strings.NewReader(jsonProblem), "toml")
	assert.True(t, errors.Is(err, codec.ErrUnknownFormat))
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlProblem), 0o600))

	p, err := codec.DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, p.NumSuppliers())

	_, err = codec.DecodeFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeResult_JSON(t *testing.T) {
	res := transport.NewOptimal([][]float64{{20, 0}, {5, 25}}, []transport.Cell{{Row: 0, Col: 0}}, 85, 1)

	var buf bytes.Buffer
	require.NoError(t, codec.EncodeResult(&buf, res, codec.FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "optimal", got["status"])
	assert.Equal(t, 85.0, got["optimal_value"])
	assert.Equal(t, 1.0, got["iterations"])
	assert.NotContains(t, got, "error_message")
	assert.NotContains(t, got, "Err")
}

func TestEncodeResult_YAMLFailure(t *testing.T) {
	res := transport.NewFailure(transport.StatusInfeasible, errors.New("x"), "No initial BFS found.")

	var buf bytes.Buffer
	require.NoError(t, codec.EncodeResult(&buf, res, codec.FormatYAML))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "infeasible", got["status"])
	assert.Equal(t, "No initial BFS found.", got["error_message"])
	assert.NotContains(t, got, "optimal_value")
}

func TestEncodeProblem_Decodes(t *testing.T) {
	p := transport.Problem{
		Supply: []float64{20, 30},
		Demand: []float64{25, 25},
		Costs:  [][]float64{{2, 3}, {4, 1}},
	}
	for _, f := range []codec.Format{codec.FormatJSON, codec.FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, codec.EncodeProblem(&buf, p, f))
		got, err := codec.Decode(&buf, f)
		require.NoError(t, err, f)
		assert.Equal(t, p, got, f)
	}
}
