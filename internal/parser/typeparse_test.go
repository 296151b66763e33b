package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/types"
)

func TestParseTypeExpr(t *testing.T) {
	tests := []struct {
		input string
		want  *types.Type
	}{
		{"int", types.Int},
		{"uint", types.Uint},
		{"int{8}", types.NewPrimitive(types.KindInt, types.Width8, true)},
		{"uint{64}", types.NewPrimitive(types.KindInt, types.Width64, false)},
		{"float{128}", types.NewPrimitive(types.KindFloat, types.Width128, true)},
		{"char", types.Char},
		{"bool", types.Bool},
		{"void", types.Void},
		{"string", types.String},
		{"int*", types.NewPointer(types.Int)},
		{"int**", types.NewPointer(types.NewPointer(types.Int))},
		{"int[4]", types.NewArray(types.Int, 4)},
		{"int[]", types.NewSlice(types.Int)},
		// Suffixes apply left to right: an array of four int pointers.
		{"int*[4]", types.NewArray(types.NewPointer(types.Int), 4)},
		{"int[4]*", types.NewPointer(types.NewArray(types.Int, 4))},
		{"Point", types.NewNamed("Point")},
		{"Point*[]", types.NewSlice(types.NewPointer(types.NewNamed("Point")))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTypeExpr(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equals(got), "want %s, got %s", tt.want, got)
		})
	}
}

// Rendering a parsed type and re-parsing the rendering must yield an equal
// type.
func TestTypeRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"int", "uint{8}", "int{64}", "float", "float{32}", "char", "bool",
		"void", "string", "int*", "int[4]", "int[]", "int*[4]", "int[4]*",
		"Point", "Point**", "Point[2]",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := ParseTypeExpr(input)
			require.NoError(t, err)

			second, err := ParseTypeExpr(types.Render(first))
			require.NoError(t, err)
			assert.True(t, first.Equals(second),
				"round trip changed %s into %s", first, second)
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid width", "int{12}"},
		{"missing width", "int{}"},
		{"unclosed width", "int{32"},
		{"unclosed array", "int[4"},
		{"negative size", "int[-4]"},
		{"not a type", "42"},
		{"trailing input", "int int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTypeExpr(tt.input)
			assert.Error(t, err)
		})
	}
}
