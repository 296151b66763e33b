// Package ast defines the Flux syntax tree produced by the parser. The node
// set is closed: expressions, statements and declarations are marker-method
// interfaces over a fixed list of structs, so consumers dispatch with
// exhaustive type switches instead of downcast chains. Nodes are built once
// during parsing and never mutated afterwards.
package ast

import (
	"fmt"
	"strings"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/source"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/types"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// GetSpan returns the source span for this node.
	GetSpan() source.Span
	// String returns a short string representation of the node.
	String() string
}

// Expr represents all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents all declaration nodes.
type Decl interface {
	Node
	declNode()
}

// ====== Program ======

// Program is the root of the AST: the ordered list of top-level
// declarations that parsed cleanly.
type Program struct {
	Span         source.Span
	Declarations []Decl
}

func (p *Program) GetSpan() source.Span { return p.Span }
func (p *Program) String() string       { return "Program" }

// ====== Expressions ======

// LiteralKind discriminates the payload of a Literal.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralChar
	LiteralBool
)

// Literal is a literal value with its decoded payload.
type Literal struct {
	Span  source.Span
	Kind  LiteralKind
	Value interface{}
}

func (l *Literal) GetSpan() source.Span { return l.Span }
func (l *Literal) String() string       { return fmt.Sprintf("%v", l.Value) }
func (l *Literal) exprNode()            {}

// Identifier is a bare name reference.
type Identifier struct {
	Span source.Span
	Name string
}

func (i *Identifier) GetSpan() source.Span { return i.Span }
func (i *Identifier) String() string       { return i.Name }
func (i *Identifier) exprNode()            {}

// BinaryExpr is a binary operation, including the word operators
// is/not/and/or.
type BinaryExpr struct {
	Span  source.Span
	Op    string
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) GetSpan() source.Span { return b.Span }
func (b *BinaryExpr) String() string       { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }
func (b *BinaryExpr) exprNode()            {}

// AssignExpr is an assignment or compound assignment; right associative.
type AssignExpr struct {
	Span  source.Span
	Op    string
	Left  Expr
	Right Expr
}

func (a *AssignExpr) GetSpan() source.Span { return a.Span }
func (a *AssignExpr) String() string       { return fmt.Sprintf("(%s %s %s)", a.Left, a.Op, a.Right) }
func (a *AssignExpr) exprNode()            {}

// UnaryExpr is a prefix or postfix unary operation.
type UnaryExpr struct {
	Span    source.Span
	Op      string
	Operand Expr
	Postfix bool // true for x++ / x--
}

func (u *UnaryExpr) GetSpan() source.Span { return u.Span }
func (u *UnaryExpr) String() string {
	if u.Postfix {
		return fmt.Sprintf("(%s%s)", u.Operand, u.Op)
	}
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand)
}
func (u *UnaryExpr) exprNode() {}

// CallExpr is a call applied to any callee expression.
type CallExpr struct {
	Span   source.Span
	Callee Expr
	Args   []Expr
}

func (c *CallExpr) GetSpan() source.Span { return c.Span }
func (c *CallExpr) String() string       { return fmt.Sprintf("%s(...)", c.Callee) }
func (c *CallExpr) exprNode()            {}

// MemberExpr is obj.field or ptr->field.
type MemberExpr struct {
	Span    source.Span
	Object  Expr
	Member  string
	IsArrow bool
}

func (m *MemberExpr) GetSpan() source.Span { return m.Span }
func (m *MemberExpr) String() string {
	op := "."
	if m.IsArrow {
		op = "->"
	}
	return fmt.Sprintf("%s%s%s", m.Object, op, m.Member)
}
func (m *MemberExpr) exprNode() {}

// IndexExpr is a[i] or the slice form a[start:end]; a nil Start or End
// marks an omitted bound.
type IndexExpr struct {
	Span    source.Span
	Array   Expr
	IsSlice bool
	Index   Expr // plain index form
	Start   Expr // slice form, nil when omitted
	End     Expr // slice form, nil when omitted
}

func (i *IndexExpr) GetSpan() source.Span { return i.Span }
func (i *IndexExpr) String() string {
	if i.IsSlice {
		return fmt.Sprintf("%s[%s:%s]", i.Array, optStr(i.Start), optStr(i.End))
	}
	return fmt.Sprintf("%s[%s]", i.Array, i.Index)
}
func (i *IndexExpr) exprNode() {}

// ScopeExpr is a namespace-qualified reference: Scope::Name.
type ScopeExpr struct {
	Span  source.Span
	Scope Expr
	Name  string
}

func (s *ScopeExpr) GetSpan() source.Span { return s.Span }
func (s *ScopeExpr) String() string       { return fmt.Sprintf("%s::%s", s.Scope, s.Name) }
func (s *ScopeExpr) exprNode()            {}

// CastExpr converts Expr to Target: (Type) expr.
type CastExpr struct {
	Span   source.Span
	Target *types.Type
	Expr   Expr
}

func (c *CastExpr) GetSpan() source.Span { return c.Span }
func (c *CastExpr) String() string       { return fmt.Sprintf("(%s)%s", c.Target, c.Expr) }
func (c *CastExpr) exprNode()            {}

// ArrayLit is [a, b, c].
type ArrayLit struct {
	Span  source.Span
	Elems []Expr
}

func (a *ArrayLit) GetSpan() source.Span { return a.Span }
func (a *ArrayLit) String() string       { return fmt.Sprintf("[%d elems]", len(a.Elems)) }
func (a *ArrayLit) exprNode()            {}

// InjectableString is a format string with {} placeholders plus the trailing
// argument list interpolated at evaluation time.
type InjectableString struct {
	Span   source.Span
	Format string
	Args   []Expr
}

func (s *InjectableString) GetSpan() source.Span { return s.Span }
func (s *InjectableString) String() string       { return fmt.Sprintf("%q(...)", s.Format) }
func (s *InjectableString) exprNode()            {}

// ====== Statements ======

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	Span source.Span
	Expr Expr
}

func (e *ExprStmt) GetSpan() source.Span { return e.Span }
func (e *ExprStmt) String() string       { return "ExprStmt" }
func (e *ExprStmt) stmtNode()            {}

// BlockStmt is a brace-delimited statement list.
type BlockStmt struct {
	Span       source.Span
	Statements []Stmt
}

func (b *BlockStmt) GetSpan() source.Span { return b.Span }
func (b *BlockStmt) String() string       { return "Block" }
func (b *BlockStmt) stmtNode()            {}

// IfStmt with greedy dangling-else attachment.
type IfStmt struct {
	Span source.Span
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

func (i *IfStmt) GetSpan() source.Span { return i.Span }
func (i *IfStmt) String() string       { return "if" }
func (i *IfStmt) stmtNode()            {}

// WhileStmt is a condition-guarded loop.
type WhileStmt struct {
	Span source.Span
	Cond Expr
	Body Stmt
}

func (w *WhileStmt) GetSpan() source.Span { return w.Span }
func (w *WhileStmt) String() string       { return "while" }
func (w *WhileStmt) stmtNode()            {}

// ForStmt has three individually optional clauses.
type ForStmt struct {
	Span   source.Span
	Init   Stmt // nil when omitted
	Cond   Expr // nil when omitted
	Update Expr // nil when omitted
	Body   Stmt
}

func (f *ForStmt) GetSpan() source.Span { return f.Span }
func (f *ForStmt) String() string       { return "for" }
func (f *ForStmt) stmtNode()            {}

// ReturnStmt with optional value.
type ReturnStmt struct {
	Span  source.Span
	Value Expr // nil for bare return
}

func (r *ReturnStmt) GetSpan() source.Span { return r.Span }
func (r *ReturnStmt) String() string       { return "return" }
func (r *ReturnStmt) stmtNode()            {}

// BreakStmt leaves the innermost loop.
type BreakStmt struct {
	Span source.Span
}

func (b *BreakStmt) GetSpan() source.Span { return b.Span }
func (b *BreakStmt) String() string       { return "break" }
func (b *BreakStmt) stmtNode()            {}

// ContinueStmt resumes the innermost loop.
type ContinueStmt struct {
	Span source.Span
}

func (c *ContinueStmt) GetSpan() source.Span { return c.Span }
func (c *ContinueStmt) String() string       { return "continue" }
func (c *ContinueStmt) stmtNode()            {}

// CatchClause handles a thrown value of a matching type.
type CatchClause struct {
	Span source.Span
	Type *types.Type
	Name string
	Body *BlockStmt
}

func (c *CatchClause) GetSpan() source.Span { return c.Span }
func (c *CatchClause) String() string       { return fmt.Sprintf("catch(%s %s)", c.Type, c.Name) }

// ThrowStmt raises an exception value, optionally handled inline.
type ThrowStmt struct {
	Span    source.Span
	Value   Expr
	Handler *CatchClause // nil when no inline handler
}

func (t *ThrowStmt) GetSpan() source.Span { return t.Span }
func (t *ThrowStmt) String() string       { return "throw" }
func (t *ThrowStmt) stmtNode()            {}

// TryStmt guards a block with one or more ordered catch clauses; the first
// clause whose type matches wins, matching policy belongs to the checker.
type TryStmt struct {
	Span    source.Span
	Body    *BlockStmt
	Catches []*CatchClause
}

func (t *TryStmt) GetSpan() source.Span { return t.Span }
func (t *TryStmt) String() string       { return "try" }
func (t *TryStmt) stmtNode()            {}

// AsmStmt captures an assembly block verbatim; its semantics are opaque to
// the front end.
type AsmStmt struct {
	Span source.Span
	Code string
}

func (a *AsmStmt) GetSpan() source.Span { return a.Span }
func (a *AsmStmt) String() string       { return "asm" }
func (a *AsmStmt) stmtNode()            {}

// ====== Declarations ======

// ImportDecl is `import "path";`.
type ImportDecl struct {
	Span source.Span
	Path string
}

func (d *ImportDecl) GetSpan() source.Span { return d.Span }
func (d *ImportDecl) String() string       { return fmt.Sprintf("import %q", d.Path) }
func (d *ImportDecl) declNode()            {}

// VarDecl is `Type name [= init];`. It is valid both at top level and in
// statement position.
type VarDecl struct {
	Span source.Span
	Name string
	Type *types.Type
	Init Expr // nil when absent
}

func (d *VarDecl) GetSpan() source.Span { return d.Span }
func (d *VarDecl) String() string       { return fmt.Sprintf("var %s: %s", d.Name, d.Type) }
func (d *VarDecl) declNode()            {}
func (d *VarDecl) stmtNode()            {}

// Param is a single function or operator parameter.
type Param struct {
	Span source.Span
	Name string
	Type *types.Type
}

func (p *Param) GetSpan() source.Span { return p.Span }
func (p *Param) String() string       { return fmt.Sprintf("%s %s", p.Type, p.Name) }

// FuncDecl is a function declaration; Body is nil for a bare prototype
// terminated by `;`.
type FuncDecl struct {
	Span   source.Span
	Name   string
	Return *types.Type
	Params []*Param
	Body   *BlockStmt
}

func (d *FuncDecl) GetSpan() source.Span { return d.Span }
func (d *FuncDecl) String() string       { return fmt.Sprintf("func %s", d.Name) }
func (d *FuncDecl) declNode()            {}

// FieldDecl is one struct or object field with an optional default.
type FieldDecl struct {
	Span    source.Span
	Name    string
	Type    *types.Type
	Default Expr // nil when absent
}

func (d *FieldDecl) GetSpan() source.Span { return d.Span }
func (d *FieldDecl) String() string       { return fmt.Sprintf("field %s: %s", d.Name, d.Type) }
func (d *FieldDecl) declNode()            {}

// StructDecl is a named or anonymous struct; an anonymous struct may carry a
// Binding identifier that declares a variable of the struct type in place.
type StructDecl struct {
	Span    source.Span
	Name    string // empty for anonymous structs
	Fields  []*FieldDecl
	Binding *Identifier // nil unless anonymous-with-binding form
}

func (d *StructDecl) GetSpan() source.Span { return d.Span }
func (d *StructDecl) String() string {
	if d.Name == "" {
		return "struct <anonymous>"
	}
	return fmt.Sprintf("struct %s", d.Name)
}
func (d *StructDecl) declNode() {}

// ObjectDecl groups typed fields and nested struct/object declarations.
type ObjectDecl struct {
	Span    source.Span
	Name    string
	Members []Decl
}

func (d *ObjectDecl) GetSpan() source.Span { return d.Span }
func (d *ObjectDecl) String() string       { return fmt.Sprintf("object %s", d.Name) }
func (d *ObjectDecl) declNode()            {}

// ClassDecl holds object and struct members.
type ClassDecl struct {
	Span    source.Span
	Name    string
	Members []Decl
}

func (d *ClassDecl) GetSpan() source.Span { return d.Span }
func (d *ClassDecl) String() string       { return fmt.Sprintf("class %s", d.Name) }
func (d *ClassDecl) declNode()            {}

// OperatorDecl declares a user operator. Return defaults to the first
// parameter's type unless declared explicitly.
type OperatorDecl struct {
	Span   source.Span
	Symbol string
	Params []*Param
	Return *types.Type
	Body   *BlockStmt
}

func (d *OperatorDecl) GetSpan() source.Span { return d.Span }
func (d *OperatorDecl) String() string       { return fmt.Sprintf("operator %s", d.Symbol) }
func (d *OperatorDecl) declNode()            {}

// NamespaceDecl contains class declarations only.
type NamespaceDecl struct {
	Span    source.Span
	Name    string
	Classes []*ClassDecl
}

func (d *NamespaceDecl) GetSpan() source.Span { return d.Span }
func (d *NamespaceDecl) String() string       { return fmt.Sprintf("namespace %s", d.Name) }
func (d *NamespaceDecl) declNode()            {}

func optStr(e Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}

// ====== Pretty printing ======

// Dump returns an indented tree rendering of a node, used by the CLI's
// parse command and by tests.
func Dump(node Node) string {
	p := &printer{}
	p.print(node)
	return strings.TrimRight(p.sb.String(), "\n")
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(s string) {
	p.sb.WriteString(strings.Repeat("  ", p.indent))
	p.sb.WriteString(s)
	p.sb.WriteString("\n")
}

func (p *printer) nested(children ...Node) {
	p.indent++
	for _, child := range children {
		p.print(child)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.line("Program")
		p.indent++
		for _, decl := range n.Declarations {
			p.print(decl)
		}
		p.indent--
	case *FuncDecl:
		p.line(fmt.Sprintf("FuncDecl %s -> %s", n.Name, n.Return))
		p.indent++
		for _, param := range n.Params {
			p.line(param.String())
		}
		if n.Body != nil {
			p.print(n.Body)
		}
		p.indent--
	case *OperatorDecl:
		p.line(fmt.Sprintf("OperatorDecl %s -> %s", n.Symbol, n.Return))
		p.nested(n.Body)
	case *StructDecl:
		p.line(n.String())
		p.indent++
		for _, field := range n.Fields {
			p.print(field)
		}
		p.indent--
	case *ObjectDecl:
		p.line(n.String())
		p.indent++
		for _, member := range n.Members {
			p.print(member)
		}
		p.indent--
	case *ClassDecl:
		p.line(n.String())
		p.indent++
		for _, member := range n.Members {
			p.print(member)
		}
		p.indent--
	case *NamespaceDecl:
		p.line(n.String())
		p.indent++
		for _, class := range n.Classes {
			p.print(class)
		}
		p.indent--
	case *VarDecl:
		p.line(n.String())
		p.nested(n.Init)
	case *FieldDecl:
		p.line(n.String())
		p.nested(n.Default)
	case *BlockStmt:
		p.line("Block")
		p.indent++
		for _, stmt := range n.Statements {
			p.print(stmt)
		}
		p.indent--
	case *IfStmt:
		p.line("If")
		p.nested(n.Cond, n.Then, n.Else)
	case *WhileStmt:
		p.line("While")
		p.nested(n.Cond, n.Body)
	case *ForStmt:
		p.line("For")
		p.nested(n.Init, n.Cond, n.Update, n.Body)
	case *TryStmt:
		p.line("Try")
		p.indent++
		p.print(n.Body)
		for _, clause := range n.Catches {
			p.line(clause.String())
			p.nested(clause.Body)
		}
		p.indent--
	case *ThrowStmt:
		p.line("Throw")
		p.indent++
		p.print(n.Value)
		if n.Handler != nil {
			p.line(n.Handler.String())
			p.nested(n.Handler.Body)
		}
		p.indent--
	case *ReturnStmt:
		p.line("Return")
		p.nested(n.Value)
	case *ExprStmt:
		p.line("ExprStmt")
		p.nested(n.Expr)
	case *BinaryExpr:
		p.line("Binary " + n.Op)
		p.nested(n.Left, n.Right)
	case *AssignExpr:
		p.line("Assign " + n.Op)
		p.nested(n.Left, n.Right)
	case *UnaryExpr:
		p.line("Unary " + n.Op)
		p.nested(n.Operand)
	case *CallExpr:
		p.line("Call")
		p.indent++
		p.print(n.Callee)
		for _, arg := range n.Args {
			p.print(arg)
		}
		p.indent--
	case *IndexExpr:
		if n.IsSlice {
			p.line("Slice")
			p.nested(n.Array, n.Start, n.End)
		} else {
			p.line("Index")
			p.nested(n.Array, n.Index)
		}
	case *CastExpr:
		p.line(fmt.Sprintf("Cast %s", n.Target))
		p.nested(n.Expr)
	case *InjectableString:
		p.line(fmt.Sprintf("InjectableString %q", n.Format))
		p.indent++
		for _, arg := range n.Args {
			p.print(arg)
		}
		p.indent--
	case *ArrayLit:
		p.line("ArrayLit")
		p.indent++
		for _, elem := range n.Elems {
			p.print(elem)
		}
		p.indent--
	default:
		p.line(node.String())
	}
}
