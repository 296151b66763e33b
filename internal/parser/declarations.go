package parser

import (
	"fmt"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/ast"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/diagnostics"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/types"
)

// parseDeclaration parses one top-level declaration. Each production
// consumes its keyword, required sub-tokens and terminator
// deterministically; failures are raised and handled by the caller.
func (p *Parser) parseDeclaration() (ast.Decl, error) {
	switch p.cur().Kind {
	case token.Illegal:
		return nil, p.passthrough()
	case token.KwImport:
		return p.parseImport()
	case token.KwNamespace:
		return p.parseNamespace()
	case token.KwClass:
		return p.parseClass()
	case token.KwStruct:
		return p.parseStruct()
	case token.KwObject:
		return p.parseObject()
	case token.KwDef:
		return p.parseDefFunction()
	case token.KwOperator:
		return p.parseOperator()
	}

	// Type-first function or variable declaration, disambiguated by a
	// bounded lookahead over the declaration header before either form
	// is committed.
	switch p.declHeader() {
	case headerFunc:
		return p.parseTypedFunction()
	case headerVar:
		return p.parseVarDecl()
	}

	return nil, p.errHere(diagnostics.ExpectedDeclaration,
		fmt.Sprintf("unexpected token %s, expected a declaration", p.cur().Kind))
}

// headerForm classifies a declaration header during lookahead.
type headerForm int

const (
	headerNone headerForm = iota
	headerFunc
	headerVar
)

// declHeader speculatively reads a type followed by an identifier and
// classifies the declaration. The cursor is always restored; this is one
// of the two bounded lookaheads allowed to rewind.
func (p *Parser) declHeader() headerForm {
	if !p.cur().Kind.IsTypeStart() {
		return headerNone
	}
	save := p.pos
	defer func() { p.pos = save }()

	if _, err := p.parseType(); err != nil {
		return headerNone
	}
	if !p.at(token.Identifier) {
		return headerNone
	}
	if p.peekIs(token.LParen) {
		return headerFunc
	}
	return headerVar
}

// parseImport parses `import "path";`.
func (p *Parser) parseImport() (ast.Decl, error) {
	start := p.advance().Span.Start // import

	path, err := p.expect(token.String)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.ImportDecl{Span: p.spanFrom(start), Path: path.StrVal}, nil
}

// parseNamespace parses `namespace name { class* }`. Only class
// declarations are permitted inside; anything else is reported and skipped
// without aborting the namespace body.
func (p *Parser) parseNamespace() (ast.Decl, error) {
	start := p.advance().Span.Start // namespace

	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected namespace name", p.cur().Span)
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var classes []*ast.ClassDecl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.at(token.KwClass) {
			p.diags.AddError(diagnostics.ExpectedDeclaration,
				fmt.Sprintf("only class declarations are permitted inside a namespace, got %s", p.cur().Kind),
				p.cur().Span)
			p.advance()
			p.skipMember()
			continue
		}
		decl, err := p.parseClass()
		if err != nil {
			p.report(err)
			p.skipMember()
			continue
		}
		classes = append(classes, decl.(*ast.ClassDecl))
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed namespace body", p.cur().Span)
	}

	return &ast.NamespaceDecl{Span: p.spanFrom(start), Name: name.Lexeme, Classes: classes}, nil
}

// parseClass parses `class name { (object|struct)* }`.
func (p *Parser) parseClass() (ast.Decl, error) {
	start := p.advance().Span.Start // class

	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected class name", p.cur().Span)
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var members []ast.Decl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		var member ast.Decl
		var memberErr error
		switch p.cur().Kind {
		case token.KwObject:
			member, memberErr = p.parseObject()
		case token.KwStruct:
			member, memberErr = p.parseStruct()
		default:
			memberErr = p.errHere(diagnostics.ExpectedDeclaration,
				fmt.Sprintf("only object and struct declarations are permitted inside a class, got %s", p.cur().Kind))
			p.advance()
		}
		if memberErr != nil {
			p.report(memberErr)
			p.skipMember()
			continue
		}
		members = append(members, member)
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed class body", p.cur().Span)
	}

	return &ast.ClassDecl{Span: p.spanFrom(start), Name: name.Lexeme, Members: members}, nil
}

// parseStruct parses `struct [name] { (type name [= expr];)* }` with the
// anonymous-struct-plus-binding form `struct { ... } ident;`.
func (p *Parser) parseStruct() (ast.Decl, error) {
	start := p.advance().Span.Start // struct

	name := ""
	if p.at(token.Identifier) {
		name = p.advance().Lexeme
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var fields []*ast.FieldDecl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed struct body", p.cur().Span)
	}

	decl := &ast.StructDecl{Name: name, Fields: fields}
	if name == "" {
		// Anonymous structs bind an identifier in place.
		bind, err := p.expect(token.Identifier)
		if err != nil {
			return nil, p.errAt(diagnostics.ExpectedIdentifier,
				"anonymous struct must be followed by a binding identifier", p.cur().Span)
		}
		decl.Binding = p.newIdent(bind)
	}
	p.accept(token.Semicolon)
	decl.Span = p.spanFrom(start)
	return decl, nil
}

// parseField parses one `type name [= expr];` member.
func (p *Parser) parseField() (*ast.FieldDecl, error) {
	start := p.cur().Span.Start

	fieldType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected field name", p.cur().Span)
	}

	var def ast.Expr
	if p.accept(token.Assign) {
		def, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.FieldDecl{Span: p.spanFrom(start), Name: name.Lexeme, Type: fieldType, Default: def}, nil
}

// parseObject parses `object name { member* }`; members are typed fields
// or nested struct/object declarations.
func (p *Parser) parseObject() (ast.Decl, error) {
	start := p.advance().Span.Start // object

	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected object name", p.cur().Span)
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var members []ast.Decl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		var member ast.Decl
		var memberErr error
		switch {
		case p.at(token.KwStruct):
			member, memberErr = p.parseStruct()
		case p.at(token.KwObject):
			member, memberErr = p.parseObject()
		case p.cur().Kind.IsTypeStart():
			member, memberErr = p.parseField()
		default:
			memberErr = p.errHere(diagnostics.ExpectedDeclaration,
				fmt.Sprintf("unexpected token %s in object body", p.cur().Kind))
			p.advance()
		}
		if memberErr != nil {
			p.report(memberErr)
			p.skipMember()
			continue
		}
		members = append(members, member)
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed object body", p.cur().Span)
	}
	p.accept(token.Semicolon)

	return &ast.ObjectDecl{Span: p.spanFrom(start), Name: name.Lexeme, Members: members}, nil
}

// parseDefFunction parses `def name(params) [-> type] (block|;)`. An
// omitted return type defaults to int for main and void otherwise.
func (p *Parser) parseDefFunction() (ast.Decl, error) {
	start := p.advance().Span.Start // def

	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected function name", p.cur().Span)
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	var ret *types.Type
	if p.accept(token.Arrow) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	} else if name.Lexeme == "main" {
		ret = types.Int
	} else {
		ret = types.Void
	}

	body, err := p.parseFunctionBody()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		Span:   p.spanFrom(start),
		Name:   name.Lexeme,
		Return: ret,
		Params: params,
		Body:   body,
	}, nil
}

// parseTypedFunction parses the type-first form `Type name(params) (block|;)`.
func (p *Parser) parseTypedFunction() (ast.Decl, error) {
	start := p.cur().Span.Start

	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected function name", p.cur().Span)
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseFunctionBody()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		Span:   p.spanFrom(start),
		Name:   name.Lexeme,
		Return: ret,
		Params: params,
		Body:   body,
	}, nil
}

// parseFunctionBody parses a block body or the `;` of a bare prototype.
func (p *Parser) parseFunctionBody() (*ast.BlockStmt, error) {
	if p.accept(token.Semicolon) {
		return nil, nil
	}
	if !p.at(token.LBrace) {
		return nil, p.errHere(diagnostics.UnexpectedToken,
			fmt.Sprintf("expected function body or ';', got %s", p.cur().Kind))
	}
	return p.parseBlock()
}

// parseParamList parses `( [Type name {, Type name}] )`.
func (p *Parser) parseParamList() ([]*ast.Param, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var params []*ast.Param
	if p.accept(token.RParen) {
		return params, nil
	}

	for {
		start := p.cur().Span.Start
		paramType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(token.Identifier)
		if err != nil {
			return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected parameter name", p.cur().Span)
		}
		params = append(params, &ast.Param{
			Span: p.spanFrom(start),
			Name: name.Lexeme,
			Type: paramType,
		})
		if !p.accept(token.Comma) {
			break
		}
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, p.errAt(diagnostics.UnmatchedDelimiter, "unclosed parameter list", p.cur().Span)
	}
	return params, nil
}

// parseOperator parses `operator (params) symbol [-> type] { body }`. The
// declared return type defaults to the first parameter's type.
func (p *Parser) parseOperator() (ast.Decl, error) {
	start := p.advance().Span.Start // operator

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	if !isOperatorSymbol(p.cur().Kind) {
		return nil, p.errHere(diagnostics.UnexpectedToken,
			fmt.Sprintf("expected operator symbol, got %s", p.cur().Kind))
	}
	symbol := p.advance().Lexeme

	var ret *types.Type
	if p.accept(token.Arrow) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	} else if len(params) > 0 {
		ret = params[0].Type
	} else {
		ret = types.Void
	}

	if !p.at(token.LBrace) {
		return nil, p.errHere(diagnostics.UnexpectedToken, "expected operator body")
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.OperatorDecl{
		Span:   p.spanFrom(start),
		Symbol: symbol,
		Params: params,
		Return: ret,
		Body:   body,
	}, nil
}

// isOperatorSymbol reports whether the token kind may name a user operator.
func isOperatorSymbol(kind token.Kind) bool {
	switch kind {
	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Power,
		token.Eq, token.Ne, token.Lt, token.Le, token.Gt, token.Ge,
		token.Amp, token.Pipe, token.Caret, token.Tilde, token.Bang,
		token.Inc, token.Dec:
		return true
	}
	return false
}

// parseVarDecl parses `Type name [= expr];`.
func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	start := p.cur().Span.Start

	varType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Identifier)
	if err != nil {
		return nil, p.errAt(diagnostics.ExpectedIdentifier, "expected variable name", p.cur().Span)
	}

	var init ast.Expr
	if p.accept(token.Assign) {
		init, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.VarDecl{
		Span: p.spanFrom(start),
		Name: name.Lexeme,
		Type: varType,
		Init: init,
	}, nil
}
