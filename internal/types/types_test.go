package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualsStructural(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *Type
		equal bool
	}{
		{"default int", Int, NewPrimitive(KindInt, WidthDefault, true), true},
		{"width matters", NewPrimitive(KindInt, Width32, true), NewPrimitive(KindInt, Width64, true), false},
		{"signedness matters", NewPrimitive(KindInt, Width32, true), NewPrimitive(KindInt, Width32, false), false},
		{"default is not explicit 32", Int, NewPrimitive(KindInt, Width32, true), false},
		{"int is not float", Int, Float, false},
		{"pointer pointee", NewPointer(Int), NewPointer(Int), true},
		{"pointer pointee differs", NewPointer(Int), NewPointer(Float), false},
		{"array same size", NewArray(Int, 4), NewArray(Int, 4), true},
		{"array size differs", NewArray(Int, 4), NewArray(Int, 8), false},
		{"sized vs dynamic", NewArray(Int, 4), NewSlice(Int), false},
		{"dynamic arrays", NewSlice(Int), NewSlice(Int), true},
		{
			"struct by shape",
			NewStruct([]StructField{{"x", Int}, {"y", Float}}),
			NewStruct([]StructField{{"x", Int}, {"y", Float}}),
			true,
		},
		{
			"struct field order matters",
			NewStruct([]StructField{{"x", Int}, {"y", Float}}),
			NewStruct([]StructField{{"y", Float}, {"x", Int}}),
			false,
		},
		{
			"function shape",
			NewFunction(Void, []*Type{Int, Float}),
			NewFunction(Void, []*Type{Int, Float}),
			true,
		},
		{
			"function param order",
			NewFunction(Void, []*Type{Int, Float}),
			NewFunction(Void, []*Type{Float, Int}),
			false,
		},
		{"named by name", NewNamed("Point"), NewNamed("Point"), true},
		{"named differs", NewNamed("Point"), NewNamed("Vec"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equals(tt.b))
			assert.Equal(t, tt.equal, tt.b.Equals(tt.a), "Equals must be symmetric")
		})
	}
}

func TestAssignableFrom(t *testing.T) {
	tests := []struct {
		name       string
		dst, src   *Type
		assignable bool
	}{
		{"identical", Int, Int, true},
		{"widening int", NewPrimitive(KindInt, Width64, true), NewPrimitive(KindInt, Width32, true), true},
		{"narrowing int", NewPrimitive(KindInt, Width16, true), NewPrimitive(KindInt, Width32, true), false},
		{"default width acts as 32", NewPrimitive(KindInt, Width32, true), Int, true},
		{"signedness mismatch", NewPrimitive(KindInt, Width64, false), NewPrimitive(KindInt, Width32, true), false},
		{"float to int needs cast", NewPrimitive(KindInt, Width64, true), Float, false},
		{"int to float needs cast", NewPrimitive(KindFloat, Width64, true), Int, false},
		{"pointer covariant", NewPointer(NewPrimitive(KindInt, Width64, true)), NewPointer(NewPrimitive(KindInt, Width32, true)), true},
		{"size-erasing array", NewSlice(Int), NewArray(Int, 4), true},
		{"dynamic to sized", NewArray(Int, 4), NewSlice(Int), false},
		{"sized to same sized", NewArray(Int, 4), NewArray(Int, 4), true},
		{"sized to other sized", NewArray(Int, 8), NewArray(Int, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.assignable, tt.dst.AssignableFrom(tt.src))
		})
	}
}

func TestCommonTypePromotion(t *testing.T) {
	tests := []struct {
		name string
		a, b *Type
		want *Type
	}{
		{"float wins", Int, Float, NewPrimitive(KindFloat, WidthDefault, true)},
		{
			"wider float wins",
			NewPrimitive(KindFloat, Width32, true),
			NewPrimitive(KindFloat, Width64, true),
			NewPrimitive(KindFloat, Width64, true),
		},
		{
			"int against wide float",
			NewPrimitive(KindInt, Width64, true),
			NewPrimitive(KindFloat, Width32, true),
			NewPrimitive(KindFloat, Width32, true),
		},
		{
			"max int width",
			NewPrimitive(KindInt, Width16, true),
			NewPrimitive(KindInt, Width64, true),
			NewPrimitive(KindInt, Width64, true),
		},
		{
			"signed wins over unsigned",
			NewPrimitive(KindInt, Width32, false),
			NewPrimitive(KindInt, Width32, true),
			NewPrimitive(KindInt, Width32, true),
		},
		{
			"both unsigned stays unsigned",
			NewPrimitive(KindInt, Width32, false),
			NewPrimitive(KindInt, Width64, false),
			NewPrimitive(KindInt, Width64, false),
		},
		{"bool has no common type", Bool, Int, nil},
		{"string has no common type", String, Int, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommonType(tt.a, tt.b)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equals(got), "want %s, got %s", tt.want, got)

			// Promotion is symmetric in its operands.
			flipped := CommonType(tt.b, tt.a)
			require.NotNil(t, flipped)
			assert.True(t, got.Equals(flipped))
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		typ  *Type
		want string
	}{
		{Int, "int"},
		{Uint, "uint"},
		{NewPrimitive(KindInt, Width32, true), "int{32}"},
		{NewPrimitive(KindInt, Width8, false), "uint{8}"},
		{NewPrimitive(KindFloat, Width64, true), "float{64}"},
		{Char, "char"},
		{Bool, "bool"},
		{Void, "void"},
		{String, "string"},
		{NewPointer(Int), "int*"},
		{NewPointer(NewPointer(Int)), "int**"},
		{NewArray(Int, 4), "int[4]"},
		{NewSlice(Int), "int[]"},
		{NewArray(NewPointer(Int), 4), "int*[4]"},
		{NewNamed("Point"), "Point"},
		{NewFunction(Int, []*Type{Int, Float}), "(int, float) -> int"},
		{NewStruct([]StructField{{"x", Int}, {"y", Float}}), "struct { x: int, y: float }"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.typ))
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, Int.IsNumeric())
	assert.True(t, Float.IsNumeric())
	assert.False(t, Bool.IsNumeric())
	assert.True(t, Int.IsSigned())
	assert.False(t, Uint.IsSigned())
	assert.False(t, Bool.IsSigned())
	assert.Equal(t, Width64, NewPrimitive(KindInt, Width64, true).BitWidth())
	assert.Equal(t, WidthDefault, Bool.BitWidth())
}
