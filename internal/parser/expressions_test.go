package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/ast"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/lexer"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
)

func tokenize(src string) []token.Token {
	return lexer.New(src).Tokenize()
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	p := New(tokenize(src), nil)
	expr, err := p.parseExpression(precLowest)
	require.NoError(t, err)
	require.True(t, p.at(token.EOF), "trailing input at %s", p.cur())
	require.Zero(t, p.Diagnostics().Len())
	return expr
}

// Shapes are checked through the parenthesized String renderings, the way
// precedence is usually pinned down in parser tests.
func TestPrecedenceShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"a = b = c", "(a = (b = c))"},
		{"a += b * 2", "(a += (b * 2))"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "((-2) ** 2)"},
		{"a or b and c", "(a or (b and c))"},
		{"a || b && c", "(a || (b && c))"},
		{"a == b and c", "((a == b) and c)"},
		{"a & b == c", "(a & (b == c))"},
		{"a < b == c < d", "((a < b) == (c < d))"},
		{"a is b or c not d", "((a is b) or (c not d))"},
		{"-a * b", "((-a) * b)"},
		{"!a and b", "((!a) and b)"},
		{"*p + 1", "((*p) + 1)"},
		{"&x == p", "((&x) == p)"},
		{"~a | b", "((~a) | b)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseExpr(t, tt.input).String())
		})
	}
}

func TestPostfixChaining(t *testing.T) {
	t.Run("member index call", func(t *testing.T) {
		expr := parseExpr(t, "a.b[0]()")
		call := expr.(*ast.CallExpr)
		index := call.Callee.(*ast.IndexExpr)
		member := index.Array.(*ast.MemberExpr)
		assert.Equal(t, "b", member.Member)
		assert.False(t, member.IsArrow)
	})

	t.Run("arrow member", func(t *testing.T) {
		expr := parseExpr(t, "p->next->value")
		outer := expr.(*ast.MemberExpr)
		assert.True(t, outer.IsArrow)
		assert.Equal(t, "value", outer.Member)
		inner := outer.Object.(*ast.MemberExpr)
		assert.Equal(t, "next", inner.Member)
	})

	t.Run("scope resolution", func(t *testing.T) {
		expr := parseExpr(t, "math::Vector::dot(a, b)")
		call := expr.(*ast.CallExpr)
		scope := call.Callee.(*ast.ScopeExpr)
		assert.Equal(t, "dot", scope.Name)
		require.Len(t, call.Args, 2)
	})

	t.Run("postfix increment", func(t *testing.T) {
		expr := parseExpr(t, "a.n++")
		unary := expr.(*ast.UnaryExpr)
		assert.True(t, unary.Postfix)
		assert.Equal(t, "++", unary.Op)
		assert.IsType(t, &ast.MemberExpr{}, unary.Operand)
	})

	t.Run("prefix increment", func(t *testing.T) {
		expr := parseExpr(t, "++i")
		unary := expr.(*ast.UnaryExpr)
		assert.False(t, unary.Postfix)
	})
}

func TestSliceBounds(t *testing.T) {
	tests := []struct {
		input      string
		slice      bool
		start, end bool
	}{
		{"a[1]", false, false, false},
		{"a[1:3]", true, true, true},
		{"a[:3]", true, false, true},
		{"a[1:]", true, true, false},
		{"a[:]", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpr(t, tt.input).(*ast.IndexExpr)
			assert.Equal(t, tt.slice, expr.IsSlice)
			if tt.slice {
				assert.Nil(t, expr.Index)
				assert.Equal(t, tt.start, expr.Start != nil, "start bound")
				assert.Equal(t, tt.end, expr.End != nil, "end bound")
			} else {
				assert.NotNil(t, expr.Index)
			}
		})
	}
}

func TestCastsAndGrouping(t *testing.T) {
	t.Run("primitive cast", func(t *testing.T) {
		expr := parseExpr(t, "(float) x")
		cast := expr.(*ast.CastExpr)
		assert.Equal(t, "float", cast.Target.String())
	})

	t.Run("width cast binds the unary operand", func(t *testing.T) {
		expr := parseExpr(t, "(int{8}) x + y")
		add := expr.(*ast.BinaryExpr)
		cast := add.Left.(*ast.CastExpr)
		assert.Equal(t, "int{8}", cast.Target.String())
	})

	t.Run("pointer cast on named type", func(t *testing.T) {
		expr := parseExpr(t, "(Node*) p")
		cast := expr.(*ast.CastExpr)
		assert.Equal(t, "Node*", cast.Target.String())
	})

	t.Run("bare parenthesized name is grouping", func(t *testing.T) {
		expr := parseExpr(t, "(foo)")
		assert.IsType(t, &ast.Identifier{}, expr)
	})

	t.Run("grouped name call is a call", func(t *testing.T) {
		expr := parseExpr(t, "(foo)(bar)")
		call := expr.(*ast.CallExpr)
		assert.IsType(t, &ast.Identifier{}, call.Callee)
	})
}

func TestArrayLiteral(t *testing.T) {
	t.Run("elements", func(t *testing.T) {
		expr := parseExpr(t, "[1, 2 + 3, x]")
		lit := expr.(*ast.ArrayLit)
		require.Len(t, lit.Elems, 3)
	})

	t.Run("empty", func(t *testing.T) {
		expr := parseExpr(t, "[]")
		lit := expr.(*ast.ArrayLit)
		assert.Empty(t, lit.Elems)
	})
}

func TestInjectableString(t *testing.T) {
	t.Run("string literal call form", func(t *testing.T) {
		expr := parseExpr(t, `"x = {} y = {}" (1, y)`)
		inj := expr.(*ast.InjectableString)
		assert.Equal(t, "x = {} y = {}", inj.Format)
		require.Len(t, inj.Args, 2)
	})

	t.Run("plain string stays a literal", func(t *testing.T) {
		expr := parseExpr(t, `"hello"`)
		lit := expr.(*ast.Literal)
		assert.Equal(t, ast.LiteralString, lit.Kind)
	})

	t.Run("no arguments", func(t *testing.T) {
		expr := parseExpr(t, `"done" ()`)
		inj := expr.(*ast.InjectableString)
		assert.Empty(t, inj.Args)
	})
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"dangling operator", "1 +"},
		{"unclosed paren", "(1 + 2"},
		{"unclosed index", "a[1"},
		{"missing member name", "a."},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tokenize(tt.input), nil)
			_, err := p.parseExpression(precLowest)
			assert.Error(t, err)
		})
	}
}
