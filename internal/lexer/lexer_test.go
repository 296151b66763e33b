package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeBasic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			"variable declaration",
			"int{32} x = 42;",
			[]token.Kind{token.KwInt, token.LBrace, token.Int, token.RBrace,
				token.Identifier, token.Assign, token.Int, token.Semicolon, token.EOF},
		},
		{
			"function header",
			"def main() -> int",
			[]token.Kind{token.KwDef, token.Identifier, token.LParen, token.RParen,
				token.Arrow, token.KwInt, token.EOF},
		},
		{
			"compound operators",
			"a += b ** c != d",
			[]token.Kind{token.Identifier, token.PlusAssign, token.Identifier,
				token.Power, token.Identifier, token.Ne, token.Identifier, token.EOF},
		},
		{
			"incdec and arrow",
			"p->x++ :: --",
			[]token.Kind{token.Identifier, token.Arrow, token.Identifier, token.Inc,
				token.ColonColon, token.Dec, token.EOF},
		},
		{
			"word operators",
			"a is b and c or not d",
			[]token.Kind{token.Identifier, token.KwIs, token.Identifier, token.KwAnd,
				token.Identifier, token.KwOr, token.KwNot, token.Identifier, token.EOF},
		},
		{
			"comments skipped",
			"a // line\n/* block */ b",
			[]token.Kind{token.Identifier, token.Identifier, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(New(tt.input).Tokenize()))
		})
	}
}

func TestLiteralPayloads(t *testing.T) {
	tokens := New(`42 0xFF 3.14 "a\nb" 'x' '\n' true false`).Tokenize()
	require.Len(t, tokens, 9)

	assert.Equal(t, token.Int, tokens[0].Kind)
	assert.Equal(t, int64(42), tokens[0].IntVal)

	assert.Equal(t, token.Int, tokens[1].Kind)
	assert.Equal(t, int64(255), tokens[1].IntVal)

	assert.Equal(t, token.Float, tokens[2].Kind)
	assert.InDelta(t, 3.14, tokens[2].FloatVal, 1e-9)

	assert.Equal(t, token.String, tokens[3].Kind)
	assert.Equal(t, "a\nb", tokens[3].StrVal)

	assert.Equal(t, token.Char, tokens[4].Kind)
	assert.Equal(t, int64('x'), tokens[4].IntVal)

	assert.Equal(t, token.Char, tokens[5].Kind)
	assert.Equal(t, int64('\n'), tokens[5].IntVal)

	assert.Equal(t, token.Bool, tokens[6].Kind)
	assert.True(t, tokens[6].BoolVal)

	assert.Equal(t, token.Bool, tokens[7].Kind)
	assert.False(t, tokens[7].BoolVal)
}

func TestMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated string", `"abc`},
		{"newline in string", "\"ab\nc\""},
		{"bad char literal", "'ab'"},
		{"empty char literal", "''"},
		{"trailing letters on number", "123abc"},
		{"stray byte", "@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := New(tt.input).Tokenize()
			found := false
			for _, tok := range tokens {
				if tok.Kind == token.Illegal {
					found = true
				}
			}
			assert.True(t, found, "expected an Illegal token in %v", tokens)
			assert.Equal(t, token.EOF, tokens[len(tokens)-1].Kind, "stream must still end in EOF")
		})
	}
}

func TestSpans(t *testing.T) {
	tokens := NewWithFilename("ab\ncd", "t.flux").Tokenize()
	require.Len(t, tokens, 3)

	assert.Equal(t, "t.flux", tokens[0].Span.Start.File)
	assert.Equal(t, 1, tokens[0].Span.Start.Line)
	assert.Equal(t, 1, tokens[0].Span.Start.Column)
	assert.Equal(t, 0, tokens[0].Span.Start.Offset)

	assert.Equal(t, 2, tokens[1].Span.Start.Line)
	assert.Equal(t, 1, tokens[1].Span.Start.Column)
	assert.Equal(t, 3, tokens[1].Span.Start.Offset)
}
