// Package parser implements the Flux recursive descent parser. It pulls
// tokens from an in-memory stream, builds the AST, and reports structured
// diagnostics through a collector instead of aborting: a parse always
// yields a Program, degraded or complete.
package parser

import (
	"fmt"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/arena"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/ast"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/diagnostics"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/lexer"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/source"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
)

// Parser is the control component of the front end. The cursor is
// monotonic; it only moves backwards inside the two bounded speculative
// lookaheads (cast disambiguation and declaration headers).
type Parser struct {
	tokens []token.Token
	pos    int

	diags  *diagnostics.Collector
	tracer Tracer

	// Node arenas: every node of one parse shares one lifetime.
	idents arena.Arena[ast.Identifier]
	lits   arena.Arena[ast.Literal]
	binops arena.Arena[ast.BinaryExpr]
}

// Option configures a Parser.
type Option func(*Parser)

// WithTracer installs a tracing sink; the default discards everything.
func WithTracer(t Tracer) Option {
	return func(p *Parser) {
		if t != nil {
			p.tracer = t
		}
	}
}

// New creates a parser over a token slice. The slice must end with an EOF
// token; a missing sentinel is an internal invariant violation, not user
// input, and New panics on it.
func New(tokens []token.Token, collector *diagnostics.Collector, opts ...Option) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		panic("parser: token stream missing EOF sentinel")
	}
	if collector == nil {
		collector = diagnostics.NewCollector()
	}
	p := &Parser{
		tokens: tokens,
		diags:  collector,
		tracer: NopTracer{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseSource tokenizes and parses src in one step.
func ParseSource(src, filename string, opts ...Option) (*ast.Program, *diagnostics.Collector) {
	collector := diagnostics.NewCollector()
	tokens := lexer.NewWithFilename(src, filename).Tokenize()
	p := New(tokens, collector, opts...)
	return p.Parse(), collector
}

// Diagnostics returns the parser's collector.
func (p *Parser) Diagnostics() *diagnostics.Collector { return p.diags }

// Parse runs the top-level declaration loop. Each failed declaration is
// recorded and skipped via synchronize; parsing always continues with the
// next declaration.
func (p *Parser) Parse() *ast.Program {
	start := p.cur().Span.Start
	var decls []ast.Decl

	for !p.at(token.EOF) {
		p.tracer.Enter("declaration", p.cur())
		decl, err := p.parseDeclaration()
		p.tracer.Leave("declaration")
		if err != nil {
			p.report(err)
			p.synchronize()
			continue
		}
		decls = append(decls, decl)
	}

	return &ast.Program{
		Span:         source.Between(start, p.cur().Span.End),
		Declarations: decls,
	}
}

// ====== Cursor ======

func (p *Parser) cur() token.Token { return p.tokens[p.pos] }

func (p *Parser) peek() token.Token { return p.peekAt(1) }

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) at(kind token.Kind) bool { return p.cur().Kind == kind }

func (p *Parser) peekIs(kind token.Kind) bool { return p.peek().Kind == kind }

// advance consumes and returns the current token. The cursor never moves
// past the EOF sentinel.
func (p *Parser) advance() token.Token {
	tok := p.cur()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// accept consumes the current token when it has the given kind.
func (p *Parser) accept(kind token.Kind) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a required terminal or fails with UnexpectedToken.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.at(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errHere(diagnostics.UnexpectedToken,
		fmt.Sprintf("expected %s, got %s", kind, p.cur().Kind))
}

// ====== Structured parse errors ======

// parseError is the structured failure raised inside parse routines and
// caught by the top-level loop. It never crosses the package boundary as
// anything but a diagnostic.
type parseError struct {
	code diagnostics.Code
	msg  string
	span source.Span
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.span.Start, e.msg)
}

func (p *Parser) errHere(code diagnostics.Code, msg string) error {
	return &parseError{code: code, msg: msg, span: p.cur().Span}
}

func (p *Parser) errAt(code diagnostics.Code, msg string, span source.Span) error {
	return &parseError{code: code, msg: msg, span: span}
}

// report converts a raised parse error into a diagnostic.
func (p *Parser) report(err error) {
	if pe, ok := err.(*parseError); ok {
		p.diags.AddError(pe.code, pe.msg, pe.span)
		p.tracer.Event("error", pe.msg, p.cur())
		return
	}
	p.diags.AddError(diagnostics.UnexpectedToken, err.Error(), p.cur().Span)
}

// passthrough reports an Illegal token produced upstream. The lexeme is
// forwarded as-is, not re-validated.
func (p *Parser) passthrough() error {
	tok := p.cur()
	return p.errAt(diagnostics.LexicalPassthrough,
		fmt.Sprintf("malformed token %q", tok.Lexeme), tok.Span)
}

// ====== Arena-backed node construction ======

func (p *Parser) newIdent(tok token.Token) *ast.Identifier {
	return p.idents.New(ast.Identifier{Span: tok.Span, Name: tok.Lexeme})
}

func (p *Parser) newLiteral(span source.Span, kind ast.LiteralKind, value interface{}) *ast.Literal {
	return p.lits.New(ast.Literal{Span: span, Kind: kind, Value: value})
}

func (p *Parser) newBinary(span source.Span, op string, left, right ast.Expr) *ast.BinaryExpr {
	return p.binops.New(ast.BinaryExpr{Span: span, Op: op, Left: left, Right: right})
}

// NodeCount reports the number of arena-allocated nodes, exposed for the
// tracer and tests.
func (p *Parser) NodeCount() int {
	return p.idents.Len() + p.lits.Len() + p.binops.Len()
}

// Reset releases all arena-owned nodes in one step and rewinds the parser
// to the start of its token stream.
func (p *Parser) Reset() {
	p.idents.Reset()
	p.lits.Reset()
	p.binops.Reset()
	p.pos = 0
}

// spanFrom builds a span from a recorded start to the end of the last
// consumed token.
func (p *Parser) spanFrom(start source.Position) source.Span {
	end := p.cur().Span.Start
	if p.pos > 0 {
		end = p.tokens[p.pos-1].Span.End
	}
	return source.Between(start, end)
}
