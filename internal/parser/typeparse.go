package parser

import (
	"fmt"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/diagnostics"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/lexer"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/types"
)

// parseType parses a type expression: a primitive keyword with an optional
// `{width}` refinement, or an identifier naming a user type, followed by
// `*` and `[size?]` suffixes applied left to right. `int*[4]` is therefore
// an array of four int pointers.
func (p *Parser) parseType() (*types.Type, error) {
	base, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur().Kind {
		case token.Star:
			p.advance()
			base = types.NewPointer(base)
		case token.LBracket:
			p.advance()
			if p.accept(token.RBracket) {
				base = types.NewSlice(base)
				continue
			}
			size, err := p.expect(token.Int)
			if err != nil {
				return nil, p.errAt(diagnostics.ExpectedType, "expected array size or ']'", p.cur().Span)
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed array type", p.cur().Span)
			}
			base = types.NewArray(base, uint64(size.IntVal))
		default:
			return base, nil
		}
	}
}

// parseBaseType parses the leading primitive keyword or type name.
func (p *Parser) parseBaseType() (*types.Type, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.KwInt:
		p.advance()
		return p.parseWidthSuffix(types.KindInt, true)
	case token.KwUint:
		p.advance()
		return p.parseWidthSuffix(types.KindInt, false)
	case token.KwFloat:
		p.advance()
		return p.parseWidthSuffix(types.KindFloat, true)
	case token.KwChar:
		p.advance()
		return types.Char, nil
	case token.KwBool:
		p.advance()
		return types.Bool, nil
	case token.KwVoid:
		p.advance()
		return types.Void, nil
	case token.KwString:
		p.advance()
		return types.String, nil
	case token.Identifier:
		p.advance()
		return types.NewNamed(tok.Lexeme), nil
	}
	return nil, p.errHere(diagnostics.ExpectedType,
		fmt.Sprintf("unexpected token %s, expected a type", tok.Kind))
}

// parseWidthSuffix parses the optional `{width}` refinement after a numeric
// type keyword; the width must be one of 8, 16, 32, 64 or 128.
func (p *Parser) parseWidthSuffix(kind types.Kind, signed bool) (*types.Type, error) {
	if !p.accept(token.LBrace) {
		return types.NewPrimitive(kind, types.WidthDefault, signed), nil
	}

	width, err := p.expect(token.Int)
	if err != nil {
		return nil, p.errAt(diagnostics.ExpectedType, "expected bit width", p.cur().Span)
	}
	switch width.IntVal {
	case 8, 16, 32, 64, 128:
	default:
		return nil, p.errAt(diagnostics.ExpectedType,
			fmt.Sprintf("invalid bit width %d, expected 8, 16, 32, 64 or 128", width.IntVal), width.Span)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed width refinement", p.cur().Span)
	}

	return types.NewPrimitive(kind, types.Width(width.IntVal), signed), nil
}

// ParseTypeExpr parses src as a single type expression. It is the
// programmatic entry for tools that round-trip rendered types.
func ParseTypeExpr(src string) (*types.Type, error) {
	tokens := lexer.New(src).Tokenize()
	collector := diagnostics.NewCollector()
	p := New(tokens, collector)

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, p.errHere(diagnostics.UnexpectedToken,
			fmt.Sprintf("trailing input after type: %s", p.cur().Kind))
	}
	return t, nil
}
