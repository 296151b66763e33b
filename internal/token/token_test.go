package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Kind
	}{
		{"namespace", KwNamespace},
		{"def", KwDef},
		{"operator", KwOperator},
		{"is", KwIs},
		{"and", KwAnd},
		{"uint", KwUint},
		{"void", KwVoid},
		{"true", Bool},
		{"false", Bool},
		{"main", Identifier},
		{"Int", Identifier},
		{"", Identifier},
	}

	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupKeyword(tt.lexeme))
		})
	}
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, KwInt.IsTypeStart())
	assert.True(t, Identifier.IsTypeStart())
	assert.False(t, KwIf.IsTypeStart())

	assert.True(t, KwStruct.IsDeclStart())
	assert.False(t, KwWhile.IsDeclStart())

	assert.True(t, KwWhile.IsStmtStart())
	assert.False(t, KwStruct.IsStmtStart())
}

func TestStringForms(t *testing.T) {
	assert.Equal(t, "->", Arrow.String())
	assert.Equal(t, "**", Power.String())
	assert.Equal(t, "struct", KwStruct.String())

	tok := Token{Kind: Identifier, Lexeme: "x"}
	assert.Equal(t, `Identifier("x")`, tok.String())
	assert.Equal(t, "EOF", Token{Kind: EOF}.String())
}
