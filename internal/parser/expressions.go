package parser

import (
	"fmt"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/ast"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/diagnostics"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/source"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
)

// Binding powers, lowest to tightest. Assignment and power are the two
// right-associative levels.
const (
	precLowest = iota
	precAssign
	precOr
	precAnd
	precBitwise
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precPower
)

var binaryPrec = map[token.Kind]int{
	token.Assign:        precAssign,
	token.PlusAssign:    precAssign,
	token.MinusAssign:   precAssign,
	token.StarAssign:    precAssign,
	token.SlashAssign:   precAssign,
	token.PercentAssign: precAssign,

	token.OrOr: precOr,
	token.KwOr: precOr,

	token.AndAnd: precAnd,
	token.KwAnd:  precAnd,

	token.Amp:   precBitwise,
	token.Pipe:  precBitwise,
	token.Caret: precBitwise,

	token.Eq:    precEquality,
	token.Ne:    precEquality,
	token.KwIs:  precEquality,
	token.KwNot: precEquality,

	token.Lt: precRelational,
	token.Le: precRelational,
	token.Gt: precRelational,
	token.Ge: precRelational,

	token.Plus:  precAdditive,
	token.Minus: precAdditive,

	token.Star:    precMultiplicative,
	token.Slash:   precMultiplicative,
	token.Percent: precMultiplicative,

	token.Power: precPower,
}

var rightAssoc = map[token.Kind]bool{
	token.Assign:        true,
	token.PlusAssign:    true,
	token.MinusAssign:   true,
	token.StarAssign:    true,
	token.SlashAssign:   true,
	token.PercentAssign: true,
	token.Power:         true,
}

// parseExpression climbs precedence levels starting at min. Callers pass
// precLowest for a full expression.
func (p *Parser) parseExpression(min int) (ast.Expr, error) {
	p.tracer.Enter("expression", p.cur())
	defer p.tracer.Leave("expression")

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := binaryPrec[p.cur().Kind]
		if !ok || prec < min {
			return left, nil
		}

		op := p.advance()
		next := prec + 1
		if rightAssoc[op.Kind] {
			next = prec
		}
		right, err := p.parseExpression(next)
		if err != nil {
			return nil, err
		}

		span := source.Join(left.GetSpan(), right.GetSpan())
		if prec == precAssign {
			left = &ast.AssignExpr{Span: span, Op: op.Lexeme, Left: left, Right: right}
		} else {
			left = p.newBinary(span, op.Lexeme, left, right)
		}
	}
}

// parseUnary parses prefix operators, then a postfix chain.
func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.cur().Kind {
	case token.Minus, token.Bang, token.Tilde, token.Star, token.Amp, token.Inc, token.Dec:
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{
			Span:    source.Join(op.Span, operand.GetSpan()),
			Op:      op.Lexeme,
			Operand: operand,
		}, nil
	}

	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(expr)
}

// parsePostfix applies calls, member access, scope access, indexing and
// postfix ++/-- left to right. A call whose callee is a string literal is
// the injectable-string form.
func (p *Parser) parsePostfix(expr ast.Expr) (ast.Expr, error) {
	for {
		switch p.cur().Kind {
		case token.LParen:
			p.advance()
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			span := p.spanFrom(expr.GetSpan().Start)
			if lit, ok := expr.(*ast.Literal); ok && lit.Kind == ast.LiteralString {
				expr = &ast.InjectableString{Span: span, Format: lit.Value.(string), Args: args}
			} else {
				expr = &ast.CallExpr{Span: span, Callee: expr, Args: args}
			}

		case token.Dot, token.Arrow:
			op := p.advance()
			name, err := p.expect(token.Identifier)
			if err != nil {
				return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected member name", p.cur().Span)
			}
			expr = &ast.MemberExpr{
				Span:    p.spanFrom(expr.GetSpan().Start),
				Object:  expr,
				Member:  name.Lexeme,
				IsArrow: op.Kind == token.Arrow,
			}

		case token.ColonColon:
			p.advance()
			name, err := p.expect(token.Identifier)
			if err != nil {
				return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected name after '::'", p.cur().Span)
			}
			expr = &ast.ScopeExpr{
				Span:  p.spanFrom(expr.GetSpan().Start),
				Scope: expr,
				Name:  name.Lexeme,
			}

		case token.LBracket:
			var err error
			expr, err = p.parseIndexOrSlice(expr)
			if err != nil {
				return nil, err
			}

		case token.Inc, token.Dec:
			op := p.advance()
			expr = &ast.UnaryExpr{
				Span:    source.Join(expr.GetSpan(), op.Span),
				Op:      op.Lexeme,
				Operand: expr,
				Postfix: true,
			}

		default:
			return expr, nil
		}
	}
}

// parseIndexOrSlice parses a[i], a[start:end], a[:end], a[start:] and a[:].
func (p *Parser) parseIndexOrSlice(array ast.Expr) (ast.Expr, error) {
	p.advance() // [

	idx := &ast.IndexExpr{Array: array}

	if p.accept(token.Colon) {
		idx.IsSlice = true
	} else {
		first, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if p.accept(token.Colon) {
			idx.IsSlice = true
			idx.Start = first
		} else {
			idx.Index = first
		}
	}

	if idx.IsSlice && !p.at(token.RBracket) {
		end, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		idx.End = end
	}

	if _, err := p.expect(token.RBracket); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed index expression", p.cur().Span)
	}
	idx.Span = p.spanFrom(array.GetSpan().Start)
	return idx, nil
}

// parseArgList parses a comma-separated argument list after the caller has
// consumed the opening parenthesis.
func (p *Parser) parseArgList() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.accept(token.RParen) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed argument list", p.cur().Span)
	}
	return args, nil
}

// parsePrimary parses a literal, identifier, parenthesized expression,
// cast or array literal.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.Int:
		p.advance()
		return p.newLiteral(tok.Span, ast.LiteralInt, tok.IntVal), nil
	case token.Float:
		p.advance()
		return p.newLiteral(tok.Span, ast.LiteralFloat, tok.FloatVal), nil
	case token.String:
		p.advance()
		return p.newLiteral(tok.Span, ast.LiteralString, tok.StrVal), nil
	case token.Char:
		p.advance()
		return p.newLiteral(tok.Span, ast.LiteralChar, tok.IntVal), nil
	case token.Bool:
		p.advance()
		return p.newLiteral(tok.Span, ast.LiteralBool, tok.BoolVal), nil
	case token.Identifier:
		p.advance()
		return p.newIdent(tok), nil
	case token.LParen:
		return p.parseParenOrCast()
	case token.LBracket:
		return p.parseArrayLit()
	case token.Illegal:
		return nil, p.passthrough()
	}
	return nil, p.errHere(diagnostics.ExpectedExpression,
		fmt.Sprintf("unexpected token %s, expected an expression", tok.Kind))
}

// parseParenOrCast disambiguates `(Type) expr` from `(expr)`. The cast form
// is committed only when the parenthesized run is unambiguously a type: it
// starts with a type keyword, or it is a named type carrying pointer or
// array suffixes. A bare `(name)` is always a grouping.
func (p *Parser) parseParenOrCast() (ast.Expr, error) {
	open := p.advance() // (

	if p.castAhead() {
		target, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed cast", p.cur().Span)
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{
			Span:   source.Join(open.Span, operand.GetSpan()),
			Target: target,
			Expr:   operand,
		}, nil
	}

	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed parenthesis", p.cur().Span)
	}
	return expr, nil
}

// castAhead speculatively checks whether the cursor sits on a cast target.
// The cursor is always restored.
func (p *Parser) castAhead() bool {
	kind := p.cur().Kind
	if !kind.IsTypeStart() {
		return false
	}
	save := p.pos
	defer func() { p.pos = save }()

	if _, err := p.parseType(); err != nil {
		return false
	}
	if !p.at(token.RParen) {
		return false
	}
	// `(name)` stays a grouping unless the type run consumed suffix tokens.
	if kind == token.Identifier && p.pos == save+1 {
		return false
	}
	return exprStart(p.peek().Kind)
}

// exprStart reports whether kind can begin a unary expression.
func exprStart(kind token.Kind) bool {
	switch kind {
	case token.Int, token.Float, token.String, token.Char, token.Bool,
		token.Identifier, token.LParen, token.LBracket,
		token.Minus, token.Bang, token.Tilde, token.Star, token.Amp,
		token.Inc, token.Dec:
		return true
	}
	return false
}

// parseArrayLit parses `[ expr {, expr} ]`; the empty literal is allowed.
func (p *Parser) parseArrayLit() (ast.Expr, error) {
	open := p.advance() // [

	var elems []ast.Expr
	if !p.at(token.RBracket) {
		for {
			elem, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			if !p.accept(token.Comma) {
				break
			}
		}
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed array literal", p.cur().Span)
	}

	return &ast.ArrayLit{Span: p.spanFrom(open.Span.Start), Elems: elems}, nil
}
