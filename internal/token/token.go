// Package token defines the lexical vocabulary of Flux: the token kinds
// produced by the lexer and the Token value carried through the parser.
package token

import (
	"fmt"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/source"
)

// Kind identifies a token class.
type Kind int

const (
	EOF Kind = iota
	Illegal

	// Literals and names.
	Identifier
	Int
	Float
	String
	Char
	Bool

	// Keywords.
	KwNamespace
	KwClass
	KwStruct
	KwObject
	KwDef
	KwOperator
	KwImport
	KwIf
	KwElse
	KwWhile
	KwFor
	KwReturn
	KwBreak
	KwContinue
	KwThrow
	KwCatch
	KwTry
	KwAsm
	KwIs
	KwNot
	KwAnd
	KwOr

	// Type keywords.
	KwInt
	KwUint
	KwFloat
	KwChar
	KwBool
	KwVoid
	KwString

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent
	Power
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	AndAnd
	OrOr
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Inc
	Dec

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Colon
	ColonColon
	Arrow
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Illegal:    "Illegal",
	Identifier: "Identifier",
	Int:        "Int",
	Float:      "Float",
	String:     "String",
	Char:       "Char",
	Bool:       "Bool",

	KwNamespace: "namespace",
	KwClass:     "class",
	KwStruct:    "struct",
	KwObject:    "object",
	KwDef:       "def",
	KwOperator:  "operator",
	KwImport:    "import",
	KwIf:        "if",
	KwElse:      "else",
	KwWhile:     "while",
	KwFor:       "for",
	KwReturn:    "return",
	KwBreak:     "break",
	KwContinue:  "continue",
	KwThrow:     "throw",
	KwCatch:     "catch",
	KwTry:       "try",
	KwAsm:       "asm",
	KwIs:        "is",
	KwNot:       "not",
	KwAnd:       "and",
	KwOr:        "or",

	KwInt:    "int",
	KwUint:   "uint",
	KwFloat:  "float",
	KwChar:   "char",
	KwBool:   "bool",
	KwVoid:   "void",
	KwString: "string",

	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Power:         "**",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	Eq:            "==",
	Ne:            "!=",
	Lt:            "<",
	Le:            "<=",
	Gt:            ">",
	Ge:            ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	Bang:          "!",
	Inc:           "++",
	Dec:           "--",

	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Semicolon:  ";",
	Comma:      ",",
	Dot:        ".",
	Colon:      ":",
	ColonColon: "::",
	Arrow:      "->",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"namespace": KwNamespace,
	"class":     KwClass,
	"struct":    KwStruct,
	"object":    KwObject,
	"def":       KwDef,
	"operator":  KwOperator,
	"import":    KwImport,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"for":       KwFor,
	"return":    KwReturn,
	"break":     KwBreak,
	"continue":  KwContinue,
	"throw":     KwThrow,
	"catch":     KwCatch,
	"try":       KwTry,
	"asm":       KwAsm,
	"is":        KwIs,
	"not":       KwNot,
	"and":       KwAnd,
	"or":        KwOr,

	"int":    KwInt,
	"uint":   KwUint,
	"float":  KwFloat,
	"char":   KwChar,
	"bool":   KwBool,
	"void":   KwVoid,
	"string": KwString,

	"true":  Bool,
	"false": Bool,
}

// LookupKeyword maps an identifier lexeme to its keyword kind, or to
// Identifier when the lexeme is not reserved.
func LookupKeyword(lexeme string) Kind {
	if kind, ok := keywords[lexeme]; ok {
		return kind
	}
	return Identifier
}

// IsTypeStart reports whether a token of this kind can begin a type
// expression. Identifiers start named types.
func (k Kind) IsTypeStart() bool {
	switch k {
	case KwInt, KwUint, KwFloat, KwChar, KwBool, KwVoid, KwString, Identifier:
		return true
	}
	return false
}

// IsDeclStart reports whether this kind begins a keyword-introduced
// declaration.
func (k Kind) IsDeclStart() bool {
	switch k {
	case KwImport, KwNamespace, KwClass, KwStruct, KwObject, KwDef, KwOperator:
		return true
	}
	return false
}

// IsStmtStart reports whether this kind begins a keyword-introduced
// statement.
func (k Kind) IsStmtStart() bool {
	switch k {
	case KwIf, KwWhile, KwFor, KwReturn, KwBreak, KwContinue, KwThrow, KwTry, KwAsm:
		return true
	}
	return false
}

// Token is one lexed token. Literal tokens carry their decoded payload in
// the matching *Val field; Lexeme is always the raw source text.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   source.Span

	IntVal   int64
	FloatVal float64
	StrVal   string
	BoolVal  bool
}

func (t Token) String() string {
	if t.Lexeme == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
}
