package parser

import (
	"fmt"
	"strings"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/ast"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/diagnostics"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
)

// parseStatement parses one statement inside a function body.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur().Kind {
	case token.Illegal:
		return nil, p.passthrough()
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		span := p.advance().Span
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Span: span}, nil
	case token.KwContinue:
		span := p.advance().Span
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Span: span}, nil
	case token.KwThrow:
		return p.parseThrow()
	case token.KwTry:
		return p.parseTry()
	case token.KwAsm:
		return p.parseAsm()
	}

	// A local variable declaration shares its prefix with an expression
	// statement; the same header lookahead used at the top level decides.
	if p.declHeader() == headerVar {
		return p.parseVarDecl()
	}

	return p.parseExprStmt()
}

// parseBlock parses `{ stmt* }`. Statement errors are reported and
// recovered locally so one bad statement does not discard the block.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	open, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			p.report(err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed block", p.cur().Span)
	}

	return &ast.BlockStmt{Span: p.spanFrom(open.Span.Start), Statements: stmts}, nil
}

// parseIf parses `if (cond) stmt [else stmt]`; else binds to the nearest if.
func (p *Parser) parseIf() (ast.Stmt, error) {
	start := p.advance().Span.Start // if

	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var els ast.Stmt
	if p.accept(token.KwElse) {
		els, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Span: p.spanFrom(start), Cond: cond, Then: then, Else: els}, nil
}

// parseWhile parses `while (cond) stmt`.
func (p *Parser) parseWhile() (ast.Stmt, error) {
	start := p.advance().Span.Start // while

	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Span: p.spanFrom(start), Cond: cond, Body: body}, nil
}

// parseFor parses `for (init?; cond?; update?) stmt`. Each header slot may
// be empty; the init slot accepts a variable declaration or an expression.
func (p *Parser) parseFor() (ast.Stmt, error) {
	start := p.advance().Span.Start // for

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var init ast.Stmt
	if !p.at(token.Semicolon) {
		if p.declHeader() == headerVar {
			decl, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			init = decl
		} else {
			expr, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			init = &ast.ExprStmt{Span: expr.GetSpan(), Expr: expr}
			if _, err := p.expect(token.Semicolon); err != nil {
				return nil, err
			}
		}
	} else {
		p.advance()
	}

	var cond ast.Expr
	if !p.at(token.Semicolon) {
		var err error
		cond, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	var update ast.Expr
	if !p.at(token.RParen) {
		var err error
		update, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed for header", p.cur().Span)
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{Span: p.spanFrom(start), Init: init, Cond: cond, Update: update, Body: body}, nil
}

// parseReturn parses `return [expr];`.
func (p *Parser) parseReturn() (ast.Stmt, error) {
	start := p.advance().Span.Start // return

	var value ast.Expr
	if !p.at(token.Semicolon) {
		var err error
		value, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{Span: p.spanFrom(start), Value: value}, nil
}

// parseThrow parses `throw expr [catch (Type name) block];`. The inline
// catch form handles the thrown value on the spot.
func (p *Parser) parseThrow() (ast.Stmt, error) {
	start := p.advance().Span.Start // throw

	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}

	var handler *ast.CatchClause
	if p.at(token.KwCatch) {
		handler, err = p.parseCatchClause()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.ThrowStmt{Span: p.spanFrom(start), Value: value, Handler: handler}, nil
}

// parseTry parses `try block catch-clause+`.
func (p *Parser) parseTry() (ast.Stmt, error) {
	start := p.advance().Span.Start // try

	if !p.at(token.LBrace) {
		return nil, p.errHere(diagnostics.UnexpectedToken, "expected block after 'try'")
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var catches []*ast.CatchClause
	for p.at(token.KwCatch) {
		clause, err := p.parseCatchClause()
		if err != nil {
			return nil, err
		}
		catches = append(catches, clause)
	}
	if len(catches) == 0 {
		return nil, p.errHere(diagnostics.UnexpectedToken, "try statement requires at least one catch clause")
	}

	return &ast.TryStmt{Span: p.spanFrom(start), Body: body, Catches: catches}, nil
}

// parseCatchClause parses `catch (Type name) block`.
func (p *Parser) parseCatchClause() (*ast.CatchClause, error) {
	start := p.advance().Span.Start // catch

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	caughtType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected catch binding name", p.cur().Span)
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if !p.at(token.LBrace) {
		return nil, p.errHere(diagnostics.UnexpectedToken, "expected block after catch clause")
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.CatchClause{Span: p.spanFrom(start), Type: caughtType, Name: name.Lexeme, Body: body}, nil
}

// parseAsm parses `asm { ... };`, capturing the brace-balanced token run
// verbatim without interpreting it.
func (p *Parser) parseAsm() (ast.Stmt, error) {
	start := p.advance().Span.Start // asm

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var sb strings.Builder
	depth := 1
	for depth > 0 {
		if p.at(token.EOF) {
			return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed asm block", p.cur().Span)
		}
		tok := p.advance()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				continue
			}
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Lexeme)
	}
	p.accept(token.Semicolon)

	return &ast.AsmStmt{Span: p.spanFrom(start), Code: sb.String()}, nil
}

// parseExprStmt parses `expr;`.
func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, p.errHere(diagnostics.UnexpectedToken,
			fmt.Sprintf("expected ';' after expression, got %s", p.cur().Kind))
	}
	return &ast.ExprStmt{Span: expr.GetSpan(), Expr: expr}, nil
}

// parseParenExpr parses `( expr )`.
func (p *Parser) parseParenExpr() (ast.Expr, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
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
