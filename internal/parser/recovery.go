package parser

import "github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"

// synchronize implements panic-mode recovery. The token that caused the
// failure is consumed unconditionally; tokens are then dropped until the
// just-consumed token was `;` or `}`, the next token starts a declaration
// or statement, or the stream ends. This bounds the cascade to one
// diagnostic per malformed top-level construct.
func (p *Parser) synchronize() {
	p.tracer.Event("synchronize", "entering panic mode", p.cur())

	if p.at(token.EOF) {
		return
	}
	last := p.advance()

	for !p.at(token.EOF) {
		if last.Kind == token.Semicolon || last.Kind == token.RBrace {
			break
		}
		if p.atSyncPoint() {
			break
		}
		last = p.advance()
	}

	p.tracer.Event("synchronize", "recovered", p.cur())
}

// atSyncPoint reports whether the current token is a safe place to resume:
// a declaration or statement keyword, or a function/variable header
// spelled type-first (type token, identifier, `(`).
func (p *Parser) atSyncPoint() bool {
	kind := p.cur().Kind
	if kind.IsDeclStart() || kind.IsStmtStart() {
		return true
	}
	return kind.IsTypeStart() && p.peekIs(token.Identifier) && p.peekAt(2).Kind == token.LParen
}

// skipMember is local recovery inside namespace/class/object bodies: the
// malformed member is reported by the caller, then tokens are dropped up
// to the end of the member so the enclosing body keeps parsing. Brace
// depth is tracked so a member's nested block does not end the skip early.
func (p *Parser) skipMember() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return // enclosing body's closing brace
			}
			depth--
			if depth == 0 {
				p.advance()
				p.accept(token.Semicolon)
				return
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}
